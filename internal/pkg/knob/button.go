package knob

import "github.com/gethiox/paralexui/internal/pkg/param"

// Button toggles boolean parameters and triggers command parameters. Its
// isOn flag follows, by precedence, a binding, a bool source or the state
// source condition.
type Button struct {
	base
}

// NewButton builds a button bound to p, p may be nil.
func NewButton(p param.Handle, opts ...Option) *Button {
	b := &Button{base: newBase("button", p, opts)}
	b.render = b.displayedValue
	return b
}

// displayedValue prefers the title override, then the adapter rendering,
// then the title.
func (b *Button) displayedValue() string {
	if b.style.TitleOverride != nil {
		return *b.style.TitleOverride
	}
	if b.style.Adapter != nil {
		return b.style.Adapter.StringValue(b.param.Value())
	}
	return Title(b.style, b.param)
}

func (b *Button) Title() string {
	return Title(b.style, b.param)
}

func (b *Button) Subtitle() string {
	return Subtitle(b.style, b.param)
}
