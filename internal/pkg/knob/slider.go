package knob

import (
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/param"
	"go.uber.org/zap"
)

// Slider changes its parameter by relative drag offsets, never by absolute
// writes, so concurrent writers are not overwritten with a stale target.
type Slider struct {
	base
}

// NewSlider builds a slider bound to p, p may be nil.
func NewSlider(p param.Handle, opts ...Option) *Slider {
	s := &Slider{base: newBase("slider", p, opts)}
	s.render = s.displayedValue
	s.drag = s.offset
	return s
}

func (s *Slider) offset(e Event) {
	s.param.OffsetValue(e.Value)
	s.log.Debug("offset", logger.Value,
		zap.String("parameter", s.id()),
		zap.Float64("delta", e.Value),
		zap.Float64("value", s.param.Value()),
	)
}

func (s *Slider) displayedValue() string {
	if s.style.Adapter != nil {
		return s.style.Adapter.StringValue(s.param.Value())
	}
	return s.param.FormattedValue()
}

func (s *Slider) Title() string {
	return Title(s.style, s.param)
}

func (s *Slider) Subtitle() string {
	return Subtitle(s.style, s.param)
}
