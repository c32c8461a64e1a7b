package main

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/gethiox/paralexui/internal/pkg/display"
	"github.com/gethiox/paralexui/internal/pkg/led"
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/panel"
	"github.com/go-ini/ini"
)

type Paralex struct {
	Panel         string
	LogViewRate   time.Duration
	LogBufferSize int
	DiscoveryRate time.Duration
}

type ParalexConfig struct {
	Paralex Paralex
	Gesture panel.Options
	Screen  display.Config
	OpenRGB led.Config
}

func rate(key *ini.Key) time.Duration {
	i, err := key.Int()
	if err != nil {
		panic(err)
	}
	if i <= 0 {
		panic(fmt.Errorf("%s: rate must be positive, got %d", key.Name(), i))
	}
	return time.Second / time.Duration(i)
}

func mustInt(key *ini.Key) int {
	i, err := key.Int()
	if err != nil {
		panic(err)
	}
	return i
}

func mustFloat(key *ini.Key) float64 {
	f, err := key.Float64()
	if err != nil {
		panic(err)
	}
	return f
}

func mustBool(key *ini.Key) bool {
	b, err := key.Bool()
	if err != nil {
		panic(err)
	}
	return b
}

func LoadParalexConfig(path string) ParalexConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	return parseParalexConfig(data)
}

func parseParalexConfig(data []byte) ParalexConfig {
	cfg, err := ini.Load(data)
	if err != nil {
		panic(err)
	}

	var c ParalexConfig

	// [paralex]
	paralex := cfg.Section("paralex")
	c.Paralex.Panel = paralex.Key("panel").MustString("default")
	c.Paralex.LogViewRate = rate(paralex.Key("log_view_rate"))
	c.Paralex.LogBufferSize = mustInt(paralex.Key("log_buffer_size"))
	c.Paralex.DiscoveryRate = rate(paralex.Key("discovery_rate"))

	// [gesture]
	gesture := cfg.Section("gesture")
	c.Gesture = panel.DefaultOptions()
	c.Gesture.PixelToValueRatio = mustFloat(gesture.Key("pixel_to_value_ratio"))
	c.Gesture.Sensitivity = mustFloat(gesture.Key("sensitivity"))
	c.Gesture.TapThreshold = mustFloat(gesture.Key("tap_threshold"))

	// [screen]
	screen := cfg.Section("screen")
	c.Screen.Enabled = mustBool(screen.Key("enabled"))

	size, err := display.ParseSize(screen.Key("type").Value())
	if err != nil {
		panic(err)
	}
	c.Screen.Size = size

	c.Screen.Bus = mustInt(screen.Key("bus"))
	c.Screen.Address = uint8(mustInt(screen.Key("address")))
	c.Screen.Interval = rate(screen.Key("update_rate"))
	for i := range c.Screen.ExitMessage {
		c.Screen.ExitMessage[i] = screen.Key(fmt.Sprintf("exit_message%d", i+1)).String()
	}

	// [openrgb]
	openrgb := cfg.Section("openrgb")
	c.OpenRGB.Enabled = mustBool(openrgb.Key("enabled"))
	c.OpenRGB.Host = openrgb.Key("host").MustString("localhost")
	c.OpenRGB.Port = mustInt(openrgb.Key("port"))
	c.OpenRGB.Controller = mustInt(openrgb.Key("controller"))
	c.OpenRGB.Offset = mustInt(openrgb.Key("offset"))
	c.OpenRGB.Brightness = mustFloat(openrgb.Key("brightness"))
	c.OpenRGB.ConnectTimeout = time.Second * time.Duration(mustInt(openrgb.Key("connect_timeout")))

	return c
}

//go:embed paralex-config/paralex.config
//go:embed paralex-config/panels/factory/*
var templateConfig embed.FS

const (
	configDir  = "paralex-config"
	configFile = configDir + "/paralex.config"
)

// createConfigDirectoryIfNeeded creates config directory if necessary.
// It also updates factory panels, paralex.config and user panels stay intact.
func createConfigDirectoryIfNeeded() error {
	return syncConfigTree(templateConfig, ".")
}

func syncConfigTree(template fs.FS, root string) error {
	dir := root + "/" + configDir
	cdir, err := os.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot open config directory: %v", err)
		}
		log.Info("config not exist, generating tree...", logger.Info)

		err = fs.WalkDir(template, configDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			target := root + "/" + path
			if d.IsDir() {
				err := os.Mkdir(target, 0o777)
				if err != nil {
					return fmt.Errorf("cannot create \"%s\" directory: %w", target, err)
				}
				return nil
			}
			return writeTemplate(template, path, target)
		})
		if err != nil {
			return fmt.Errorf("config generation failed: %w", err)
		}

		err = os.MkdirAll(root+"/"+configDir+"/panels/user", 0o777)
		if err != nil {
			return fmt.Errorf("cannot create user panels directory: %w", err)
		}
		log.Info("config generation done", logger.Info)
		return nil
	}
	cdir.Close()

	// update factory panels
	err = fs.WalkDir(template, configDir+"/panels/factory", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := root + "/" + path
		if entry.IsDir() {
			err := os.MkdirAll(target, 0o777)
			if err != nil {
				return fmt.Errorf("cannot create \"%s\" directory: %w", target, err)
			}
			return nil
		}

		src, err := os.OpenFile(target, os.O_RDONLY, 0)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("cannot open \"%s\" file: %v", target, err)
			}
			log.Info(fmt.Sprintf("Creating new factory panel: \"%s\"", target), logger.Debug)
			return writeTemplate(template, path, target)
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("cannot read \"%s\" file: %w", target, err)
		}

		newData, err := fs.ReadFile(template, path)
		if err != nil {
			return fmt.Errorf("cannot open \"%s\" file template: %w", path, err)
		}

		if bytes.Equal(data, newData) {
			log.Info(fmt.Sprintf("File \"%s\" not changed", target), logger.Debug)
			return nil
		}
		log.Info(fmt.Sprintf("File \"%s\" changed, replacing data...", target), logger.Debug)
		return writeTemplate(template, path, target)
	})

	if err != nil {
		return fmt.Errorf("update factory panels failed: %w", err)
	}
	return nil
}

func writeTemplate(template fs.FS, path, target string) error {
	data, err := fs.ReadFile(template, path)
	if err != nil {
		return fmt.Errorf("cannot read \"%s\" template file: %w", path, err)
	}

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return fmt.Errorf("cannot open \"%s\" file: %w", target, err)
	}
	defer dst.Close()

	_, err = dst.Write(data)
	if err != nil {
		return fmt.Errorf("cannot write data into \"%s\" file: %w", target, err)
	}

	log.Info(fmt.Sprintf("Created \"%s\" file", target), logger.Debug)
	return nil
}
