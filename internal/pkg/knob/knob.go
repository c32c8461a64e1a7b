package knob

import (
	"github.com/gethiox/paralexui/internal/pkg/param"
	"github.com/lucasb-eyer/go-colorful"
)

// Placeholder is displayed by knobs without a parameter.
const Placeholder = "-"

type Knob interface {
	State() State
	SetState(s State)
	Style() Style
	SetStyle(s Style)
}

type ParameterKnob interface {
	Knob
	// Parameter returns nil for unbound knobs.
	Parameter() param.Handle
}

// Controller is a ParameterKnob driven by pointer samples.
type Controller interface {
	ParameterKnob
	Attach()
	Detach()
	HandleSample(s Sample)
	HandleEvent(e Event)
	Display() string
	Reducer() *Reducer
}

// Title resolves the knob title: override, parameter symbol, parameter
// name, identifier name.
func Title(style Style, p param.Handle) string {
	if style.TitleOverride != nil {
		return *style.TitleOverride
	}
	if p == nil {
		return ""
	}
	if s := p.Symbol(); s != "" {
		return s
	}
	if s := p.Name(); s != "" {
		return s
	}
	return p.Identifier().Name()
}

// Subtitle resolves the knob subtitle: override, parameter name,
// identifier name.
func Subtitle(style Style, p param.Handle) string {
	if style.SubtitleOverride != nil {
		return *style.SubtitleOverride
	}
	if p == nil {
		return ""
	}
	if s := p.Name(); s != "" {
		return s
	}
	return p.Identifier().Name()
}

func Color(k Knob) colorful.Color {
	return k.Style().ResolvedColor()
}

// Fill is the rendered background of k in its current state.
func Fill(k Knob) colorful.Color {
	return k.Style().Fill(k.State())
}
