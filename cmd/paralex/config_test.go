package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/d2r2/go-hd44780"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateConfig(t *testing.T) {
	data, err := fs.ReadFile(templateConfig, configFile)
	require.NoError(t, err)

	c := parseParalexConfig(data)

	assert.Equal(t, "default", c.Paralex.Panel)
	assert.Equal(t, time.Second/30, c.Paralex.LogViewRate)
	assert.Equal(t, 256, c.Paralex.LogBufferSize)
	assert.Equal(t, time.Second, c.Paralex.DiscoveryRate)

	assert.Equal(t, 0.01, c.Gesture.PixelToValueRatio)
	assert.Equal(t, 0.25, c.Gesture.Sensitivity)
	assert.Equal(t, 2.0, c.Gesture.TapThreshold)

	assert.False(t, c.Screen.Enabled)
	assert.Equal(t, hd44780.LCD_20x4, c.Screen.Size.Type)
	assert.Equal(t, 20, c.Screen.Width())
	assert.Equal(t, uint8(39), c.Screen.Address)
	assert.Equal(t, time.Second/10, c.Screen.Interval)
	assert.False(t, c.Screen.CustomExitMessage())

	assert.False(t, c.OpenRGB.Enabled)
	assert.Equal(t, 6742, c.OpenRGB.Port)
	assert.Equal(t, -1, c.OpenRGB.Controller)
	assert.Equal(t, time.Second*5, c.OpenRGB.ConnectTimeout)
}

func TestParseConfigPanics(t *testing.T) {
	assert.Panics(t, func() { parseParalexConfig([]byte("[paralex]\nlog_view_rate = fast")) })
	assert.Panics(t, func() { parseParalexConfig([]byte("[paralex]\nlog_view_rate = 0")) })
}

func TestSyncConfigTree(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, syncConfigTree(templateConfig, root))

	factory := filepath.Join(root, configDir, "panels", "factory", "default.yaml")
	assert.FileExists(t, filepath.Join(root, configFile))
	assert.FileExists(t, factory)
	assert.DirExists(t, filepath.Join(root, configDir, "panels", "user"))

	// factory panels are restored, the host config is left alone
	require.NoError(t, os.WriteFile(factory, []byte("name: broken"), 0o666))
	require.NoError(t, os.WriteFile(filepath.Join(root, configFile), []byte("[paralex]"), 0o666))

	require.NoError(t, syncConfigTree(templateConfig, root))

	expected, err := fs.ReadFile(templateConfig, configDir+"/panels/factory/default.yaml")
	require.NoError(t, err)
	restored, err := os.ReadFile(factory)
	require.NoError(t, err)
	assert.Equal(t, expected, restored)

	kept, err := os.ReadFile(filepath.Join(root, configFile))
	require.NoError(t, err)
	assert.Equal(t, "[paralex]", string(kept))
}
