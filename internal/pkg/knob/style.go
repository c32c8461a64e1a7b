package knob

import (
	"fmt"
	"strings"

	"github.com/gethiox/paralexui/internal/pkg/adapter"
	"github.com/lucasb-eyer/go-colorful"
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	DefaultColor = mustHex("#436afe")
	// Background is the panel colour knob fills are blended over.
	Background = mustHex("#010000")
	// DisabledColor fills disabled knobs regardless of their colour.
	DisabledColor = mustHex("#111110")

	Palette = map[string]colorful.Color{
		"white":     mustHex("#fffffe"),
		"black":     Background,
		"blue":      DefaultColor,
		"red":       mustHex("#fd3f40"),
		"green":     mustHex("#2bcb34"),
		"orange":    mustHex("#fdaf40"),
		"yellow":    mustHex("#fce44f"),
		"darkgray":  DisabledColor,
		"lightgray": mustHex("#eeeeed"),
	}
)

const (
	pressedOpacity     = 0.8
	highlightedOpacity = 0.7
	idleOpacity        = 0.2
)

// ParseColor accepts a palette name or a "#rrggbb" hex string.
func ParseColor(s string) (colorful.Color, error) {
	if c, ok := Palette[strings.ToLower(s)]; ok {
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("unknown color %q, expected palette name or #rrggbb", s)
	}
	return c, nil
}

// Style is the presentation configuration of a knob. Nil fields fall back
// to defaults.
type Style struct {
	Color   *colorful.Color
	Adapter *adapter.Adapter

	TitleOverride    *string
	SubtitleOverride *string

	ShowSubtitle bool
	ShowIcon     bool
	PopoverID    string
}

func NewStyle() Style {
	return Style{
		ShowSubtitle: true,
		ShowIcon:     true,
	}
}

func (s Style) WithColor(c colorful.Color) Style {
	s.Color = &c
	return s
}

func (s Style) WithAdapter(a *adapter.Adapter) Style {
	s.Adapter = a
	return s
}

func (s Style) WithTitle(title string) Style {
	s.TitleOverride = &title
	return s
}

func (s Style) WithSubtitle(subtitle string) Style {
	s.SubtitleOverride = &subtitle
	return s
}

func (s Style) ResolvedColor() colorful.Color {
	if s.Color != nil {
		return *s.Color
	}
	return DefaultColor
}

// Fill is the background colour for a knob in the given state.
func (s Style) Fill(state State) colorful.Color {
	if !state.Enabled {
		return DisabledColor
	}

	opacity := idleOpacity
	switch {
	case state.Pressed:
		opacity = pressedOpacity
	case state.Highlighted, state.IsOn:
		opacity = highlightedOpacity
	}
	return Background.BlendRgb(s.ResolvedColor(), opacity).Clamped()
}
