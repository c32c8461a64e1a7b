package display

import (
	"testing"
	"time"

	"github.com/d2r2/go-hd44780"
	"github.com/gethiox/paralexui/internal/pkg/knob"
	"github.com/gethiox/paralexui/internal/pkg/panel"
	"github.com/stretchr/testify/assert"
)

func TestBar(t *testing.T) {
	tests := []struct {
		level    float64
		expected string
	}{
		{0, "▁▁▁▁"},
		{0.5, "██▁▁"},
		{0.6, "██▁▁"},
		{1, "████"},
		{2, "████"},
		{-1, "▁▁▁▁"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Bar(tt.level, 4), tt.level)
	}
}

func TestScreen(t *testing.T) {
	state := knob.NewState()
	v := panel.View{
		Title:        "Cutoff",
		Subtitle:     "Filter",
		Value:        "64",
		Level:        0.5,
		ShowSubtitle: true,
		State:        state,
	}

	lines := Screen("default", 4, 11, v, 20)
	assert.Equal(t, [4]string{
		"default         5/11",
		"Cutoff Filter       ",
		"64                  ",
		"██████████▁▁▁▁▁▁▁▁▁▁",
	}, lines)

	v.ShowSubtitle = false
	v.State.Selected = true
	v.State.IsOn = true
	lines = Screen("a very long panel name", 0, 2, v, 20)
	assert.Equal(t, "a very long pane 1/2", lines[0])
	assert.Equal(t, "*Cutoff             ", lines[1])
	assert.Equal(t, "64 *                ", lines[2])

	v.State.Enabled = false
	assert.Equal(t, "*Cutoff (off)       ", Screen("x", 0, 1, v, 20)[1])
}

func TestReplaceChars(t *testing.T) {
	assert.Equal(t, "\x00\x07a?", replaceCharsForDisplay("▁█aé", barMap))
	assert.Equal(t, "\x00\x01", replaceCharsForDisplay("❤░", exitMap))
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize("16X2")
	assert.Equal(t, nil, err)
	assert.Equal(t, hd44780.LCD_16x2, size.Type)
	assert.Equal(t, 16, size.Columns)
	assert.Equal(t, 2, size.Rows)

	_, err = ParseSize("40x4")
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, 20, cfg.Width())
	assert.Equal(t, time.Second, cfg.FrameInterval())
	assert.False(t, cfg.CustomExitMessage())

	cfg.ExitMessage[2] = "bye"
	assert.True(t, cfg.CustomExitMessage())
}
