package param

import (
	"errors"
	"testing"

	"github.com/gethiox/paralexui/internal/pkg/adapter"
	"github.com/stretchr/testify/assert"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		id   Identifier
		name string
		slug string
	}{
		{"osc1.level", "level", "osc1-level"},
		{"Cutoff", "Cutoff", "cutoff"},
		{"fx.Delay Time", "Delay Time", "fx-delay-time"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.name, tt.id.Name())
			assert.Equal(t, tt.slug, tt.id.Slug())
		})
	}
}

func TestSetValueClamps(t *testing.T) {
	p := New("amp.gain", WithDefault(0.5))
	assert.Equal(t, 0.5, p.Value())

	p.SetValue(1.7)
	assert.Equal(t, 1.0, p.Value())
	p.SetValue(-0.3)
	assert.Equal(t, 0.0, p.Value())

	b := New("pan", Bipolar())
	b.SetValue(-0.3)
	assert.Equal(t, -0.3, b.Value())
	b.OffsetValue(-5)
	assert.Equal(t, -1.0, b.Value())
}

func TestNotifiesEveryWrite(t *testing.T) {
	p := New("osc.level")

	var received []float64
	sub := p.Subscribe(func(v float64) { received = append(received, v) })

	p.SetValue(0.25)
	p.SetValue(0.25)
	p.OffsetValue(0.25)
	assert.Equal(t, []float64{0.25, 0.25, 0.5}, received)

	sub.Cancel()
	p.SetValue(1)
	assert.Equal(t, 3, len(received))
	assert.Equal(t, 0, p.Subscribers())
}

func TestToggle(t *testing.T) {
	p := New("fx.bypass", Boolean())
	assert.True(t, p.Boolean())
	assert.Equal(t, "Off", p.FormattedValue())

	p.Toggle()
	assert.Equal(t, 1.0, p.Value())
	assert.Equal(t, "On", p.FormattedValue())

	p.SetValue(0.3)
	assert.Equal(t, 0.0, p.Value())
}

func TestInvoke(t *testing.T) {
	var calls int
	var pulses int
	p := New("seq.reset", WithRole(RoleCommand), WithAction(func() { calls++ }))
	p.Subscribe(func(float64) { pulses++ })

	p.Invoke()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, pulses)
	assert.Equal(t, "command", p.Role().String())
}

func TestFormattedValue(t *testing.T) {
	p := New("osc.level", WithAdapter(adapter.Percent(true)), WithDefault(0.42))
	assert.Equal(t, "42%", p.FormattedValue())
	assert.Equal(t, "osc.level=42%", p.String())

	plain := New("raw", WithDefault(0.126))
	assert.Equal(t, "0.13", plain.FormattedValue())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := New("a")
	b := New("b")

	assert.Equal(t, nil, r.Add(b, a))
	err := r.Add(New("a"))
	assert.True(t, errors.Is(err, ErrDuplicate))

	assert.Equal(t, []*Parameter{b, a}, r.All())
	assert.Equal(t, 2, r.Len())

	got, ok := r.Get("a")
	assert.True(t, ok)
	assert.Same(t, a, got)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}
