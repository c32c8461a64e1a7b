package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gethiox/paralexui/internal/pkg/display"
	"github.com/gethiox/paralexui/internal/pkg/knob"
	"github.com/gethiox/paralexui/internal/pkg/panel"
	"github.com/logrusorgru/aurora"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestLogBuffer(t *testing.T) {
	b := newLogBuffer(3)
	assert.Empty(t, b.ReadLastMessages(5))

	for i := 0; i < 5; i++ {
		b.WriteMessage([]byte(fmt.Sprintf("%d", i)))
	}

	var got []string
	for _, m := range b.ReadLastMessages(5) {
		got = append(got, string(m))
	}
	assert.Equal(t, []string{"2", "3", "4"}, got)

	got = nil
	for _, m := range b.ReadLastMessages(2) {
		got = append(got, string(m))
	}
	assert.Equal(t, []string{"3", "4"}, got)
	assert.Empty(t, b.ReadLastMessages(0))
}

func TestColorIndex(t *testing.T) {
	tests := []struct {
		hex      string
		expected uint8
	}{
		{"#000000", 16},
		{"#ffffff", 231},
		{"#ff0000", 196},
		{"#00ff00", 46},
		{"#0000ff", 21},
	}

	for _, tt := range tests {
		c, err := colorful.Hex(tt.hex)
		assert.Equal(t, nil, err)
		assert.Equal(t, tt.expected, colorIndex(c), tt.hex)
	}
}

func TestKnobLine(t *testing.T) {
	au := aurora.NewAurora(false)
	v := panel.View{
		Title:        "BYP",
		Subtitle:     "Bypass",
		Value:        "On",
		Level:        1,
		ShowSubtitle: true,
		State:        knob.State{Enabled: true, IsOn: true},
		Fill:         knob.DefaultColor,
	}

	line := knobLine(au, v, true, 0)
	assert.Equal(t, "> "+" BYP        "+" On         "+"██████████"+" Bypass on", line)

	v.Title = ""
	v.ShowSubtitle = false
	v.State = knob.NewState()
	v.Popover = "sequencer"
	line = knobLine(au, v, false, 60)
	assert.True(t, strings.HasPrefix(line, "   (unbound)   On"), line)
	assert.True(t, strings.Contains(line, "[sequencer]"), line)
	assert.Equal(t, 60, rawStringLen(line))

	v.Key = "seq-reset"
	line = knobLine(au, v, false, 0)
	assert.True(t, strings.HasSuffix(line, "[sequencer] #seq-reset"), line)
}

func TestScreenLines(t *testing.T) {
	s := Snapshot{Panel: "default", Focus: 0, Views: []panel.View{{Title: "Level", Value: "80%", Level: 0.8, State: knob.NewState()}}}
	lines := screenLines(s, 20)
	assert.Equal(t, display.Screen("default", 0, 1, s.Views[0], 20), lines)

	empty := screenLines(Snapshot{Panel: "void"}, 10)
	assert.Equal(t, "void      ", empty[0])
	assert.Equal(t, "no knobs  ", empty[1])
}

func TestExitMessage(t *testing.T) {
	var cfg display.Config
	lines := exitMessage(cfg, 20)
	for _, l := range lines {
		assert.Equal(t, 20, len([]rune(l)), l)
	}
	assert.Contains(t, lines[2], "paralex")

	cfg.ExitMessage = [4]string{"bye", "", "", "a line that is much too long"}
	lines = exitMessage(cfg, 20)
	assert.Equal(t, "bye                 ", lines[0])
	assert.Equal(t, "a line that is much ", lines[3])
}
