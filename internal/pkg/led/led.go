// Package led mirrors knob fills onto an OpenRGB controller.
package led

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/realbucksavage/openrgb-go"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

type Config struct {
	Enabled bool
	Host    string
	Port    int
	// Controller is the OpenRGB device index, a negative value picks the
	// first controller with enough LEDs.
	Controller int
	// Offset is the LED index of the first knob.
	Offset         int
	ConnectTimeout time.Duration
	// Brightness scales every color, 0..1.
	Brightness float64
}

func (c Config) address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ToLEDs maps knob fills onto a controller with n LEDs, starting at offset.
// LEDs not covered by a knob stay dark.
func ToLEDs(fills []colorful.Color, n, offset int, brightness float64) []openrgb.Color {
	var ledArray = make([]openrgb.Color, n)

	for i, c := range fills {
		idx := offset + i
		if idx < 0 || idx >= n {
			continue
		}
		r, g, b := colorful.Color{R: c.R * brightness, G: c.G * brightness, B: c.B * brightness}.Clamped().RGB255()
		ledArray[idx] = openrgb.Color{Red: r, Green: g, Blue: b}
	}
	return ledArray
}

func findController(c *openrgb.Client, want, leds int) (openrgb.Device, int, error) {
	count, err := c.GetControllerCount()
	if err != nil {
		return openrgb.Device{}, 0, fmt.Errorf("failed to get controller count: %s", err)
	}

	if count == 0 {
		return openrgb.Device{}, 0, fmt.Errorf("no supported controllers available")
	}

	if want >= 0 {
		if want >= count {
			return openrgb.Device{}, 0, fmt.Errorf("controller %d not available (%d controllers)", want, count)
		}
		dev, err := c.GetDeviceController(want)
		if err != nil {
			return openrgb.Device{}, 0, fmt.Errorf("getting controller information failed (%d/%d): %s", want, count, err)
		}
		return dev, want, nil
	}

	for i := 0; i < count; i++ {
		dev, err := c.GetDeviceController(i)
		if err != nil {
			return openrgb.Device{}, 0, fmt.Errorf("getting controller information failed (%d/%d): %s", i, count, err)
		}
		if len(dev.LEDs) >= leds {
			return dev, i, nil
		}
	}

	return openrgb.Device{}, 0, fmt.Errorf("controller not found")
}

func connect(ctx context.Context, cfg Config) (*openrgb.Client, error) {
	timeout := time.Now().Add(cfg.ConnectTimeout)

	var lastErr error
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Millisecond * 250):
		}

		c, err := openrgb.Connect(cfg.Host, cfg.Port)
		if err == nil {
			return c, nil
		}
		lastErr = err

		if time.Now().After(timeout) {
			return nil, fmt.Errorf("giving up: %w", lastErr)
		}
	}
}

// HandleLEDs pushes every fill set received on fills to the configured
// controller until the channel is closed. Connection failures disable LED
// output without affecting the caller.
func HandleLEDs(ctx context.Context, wg *sync.WaitGroup, cfg Config, fills <-chan []colorful.Color) {
	defer wg.Done()

	addr := zap.String("openrgb", cfg.address())
	log.Info("[OpenRGB] Connecting...", addr, logger.Debug)

	c, err := connect(ctx, cfg)
	if err != nil {
		log.Info(fmt.Sprintf("[OpenRGB] Cannot connect to server: %s", err), addr, logger.Warning)
		for range fills {
		}
		return
	}

	var dev openrgb.Device
	var index int
	var ready bool

	var updateFails int
	var nextFailReport time.Time

	for f := range fills {
		if !ready {
			dev, index, err = findController(c, cfg.Controller, cfg.Offset+len(f))
			if err != nil {
				log.Info(fmt.Sprintf("[OpenRGB] Cannot find controller: %s", err), addr, logger.Warning)
				continue
			}
			ready = true
			log.Info(fmt.Sprintf("[OpenRGB] Controller found: %s, index: %d", dev.Name, index), addr, logger.Info)
		}

		err = c.UpdateLEDs(index, ToLEDs(f, len(dev.LEDs), cfg.Offset, cfg.Brightness))
		if err != nil {
			updateFails++
			now := time.Now()
			if now.After(nextFailReport) {
				log.Info(fmt.Sprintf("[OpenRGB] Led update fails %d times, last err: %s", updateFails, err), addr, logger.Debug)
				updateFails = 0
				nextFailReport = now.Add(time.Second * 2)
			}
		}
	}

	if ready {
		_ = c.UpdateLEDs(index, make([]openrgb.Color, len(dev.LEDs)))
	}
	log.Info("[OpenRGB] Done", addr, logger.Debug)
}
