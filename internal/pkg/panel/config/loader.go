package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gethiox/paralexui/internal/pkg/logger"
)

var log = logger.GetLogger()

const (
	factoryPanels = "panels/factory"
	userPanels    = "panels/user"
)

var ErrPanelNotFound = errors.New("panel not found")

type PanelMap map[string]PanelFile

type PanelConfigs struct {
	Factory PanelMap
	User    PanelMap
}

// FindPanel prefers a user panel over the factory one of the same name.
func (c *PanelConfigs) FindPanel(name string) (PanelFile, error) {
	cfg, ok := c.User[name]
	if ok {
		return cfg, nil
	}
	cfg, ok = c.Factory[name]
	if ok {
		return cfg, nil
	}
	return PanelFile{}, fmt.Errorf("%w: %s", ErrPanelNotFound, name)
}

// Names lists every available panel name, sorted.
func (c *PanelConfigs) Names() []string {
	var seen = make(map[string]bool)
	var names []string
	for _, m := range []PanelMap{c.User, c.Factory} {
		for name := range m {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// PanelDirs returns the directories LoadPanelConfigs reads under root.
func PanelDirs(root string) []string {
	return []string{
		filepath.Join(root, factoryPanels),
		filepath.Join(root, userPanels),
	}
}

type dirInfo struct {
	root       string
	configMap  PanelMap
	identifier string
}

// LoadPanelConfigs reads factory and user panels under root. Broken files
// are logged and skipped.
func LoadPanelConfigs(root string) (PanelConfigs, error) {
	cfg := PanelConfigs{
		Factory: make(PanelMap),
		User:    make(PanelMap),
	}

	for _, pair := range []dirInfo{
		{filepath.Join(root, factoryPanels), cfg.Factory, "factory"},
		{filepath.Join(root, userPanels), cfg.User, "user"},
	} {
		err := loadDirectory(pair.root, pair.identifier, pair.configMap)
		if err != nil {
			return cfg, fmt.Errorf("loading \"%s\" directory failed: %w", pair.root, err)
		}
	}
	return cfg, nil
}

// LoadPanel reads a single panel file.
func LoadPanel(path string) (PanelFile, error) {
	return readPanelConfig(path, "file")
}

func isPanelFile(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func loadDirectory(root, configType string, configMap PanelMap) error {
	_, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	err = filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isPanelFile(info.Name()) {
			return nil
		}

		panelCfg, err := readPanelConfig(path, configType)
		if err != nil {
			log.Info(fmt.Sprintf("panel config %s (%s) load failed: %s", info.Name(), configType, err), logger.Warning)
			return nil
		}
		configMap[panelCfg.Panel.Name] = panelCfg
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk failed: %w", err)
	}
	return nil
}
