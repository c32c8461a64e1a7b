package knob

import (
	"testing"

	"github.com/gethiox/paralexui/internal/pkg/param"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestFill(t *testing.T) {
	red := Palette["red"]
	style := NewStyle().WithColor(red)

	tests := []struct {
		name     string
		state    State
		expected colorful.Color
	}{
		{"disabled", State{Pressed: true}, DisabledColor},
		{"pressed", State{Enabled: true, Pressed: true, IsOn: true}, Background.BlendRgb(red, 0.8)},
		{"highlighted", State{Enabled: true, Highlighted: true}, Background.BlendRgb(red, 0.7)},
		{"on", State{Enabled: true, IsOn: true}, Background.BlendRgb(red, 0.7)},
		{"idle", NewState(), Background.BlendRgb(red, 0.2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected.Hex(), style.Fill(tt.state).Hex())
		})
	}
}

func TestResolvedColor(t *testing.T) {
	assert.Equal(t, "#436afe", NewStyle().ResolvedColor().Hex())
	assert.Equal(t, "#fd3f40", NewStyle().WithColor(Palette["red"]).ResolvedColor().Hex())

	b := NewButton(nil, WithStyle(NewStyle().WithColor(Palette["green"])), Quiet())
	assert.Equal(t, "#2bcb34", Color(b).Hex())
	assert.Equal(t, Background.BlendRgb(Palette["green"], 0.2).Hex(), Fill(b).Hex())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Yellow")
	assert.Equal(t, nil, err)
	assert.Equal(t, "#fce44f", c.Hex())

	c, err = ParseColor("#102030")
	assert.Equal(t, nil, err)
	assert.Equal(t, "#102030", c.Hex())

	_, err = ParseColor("mauve")
	assert.Error(t, err)
}

func TestTitleAndSubtitle(t *testing.T) {
	full := param.New("osc1.level", param.WithName("Level"), param.WithSymbol("LV", "speaker.wave"))
	named := param.New("osc1.level", param.WithName("Level"))
	bare := param.New("osc1.level")

	tests := []struct {
		name     string
		style    Style
		p        param.Handle
		title    string
		subtitle string
	}{
		{"overrides", NewStyle().WithTitle("T").WithSubtitle("S"), full, "T", "S"},
		{"symbol", NewStyle(), full, "LV", "Level"},
		{"name", NewStyle(), named, "Level", "Level"},
		{"identifier", NewStyle(), bare, "level", "level"},
		{"unbound", NewStyle(), nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, Title(tt.style, tt.p))
			assert.Equal(t, tt.subtitle, Subtitle(tt.style, tt.p))
		})
	}
}
