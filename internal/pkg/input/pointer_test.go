package input

import (
	"testing"

	"github.com/gethiox/paralexui/internal/pkg/knob"
	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
)

func key(code evdev.EvCode, value int32) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

func rel(code evdev.EvCode, value int32) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_REL, Code: code, Value: value}
}

func syn() evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}
}

func decodeAll(d *PointerDecoder, events ...evdev.InputEvent) []knob.Sample {
	var samples []knob.Sample
	for _, ev := range events {
		if s, ok := d.Decode(ev); ok {
			samples = append(samples, s)
		}
	}
	return samples
}

func TestPointerDrag(t *testing.T) {
	d := NewPointerDecoder(knob.Point{X: 10, Y: 10})

	samples := decodeAll(d,
		key(evdev.BTN_LEFT, 1), syn(),
		rel(evdev.REL_Y, 3), rel(evdev.REL_X, -1), syn(),
		rel(evdev.REL_Y, 2), syn(),
		key(evdev.BTN_LEFT, 0), syn(),
	)

	assert.Equal(t, []knob.Sample{
		{Phase: knob.PhaseStarted, Location: knob.Point{X: 10, Y: 10}},
		{Phase: knob.PhaseChanged, Location: knob.Point{X: 9, Y: 13}, Translation: knob.Point{X: -1, Y: 3}},
		{Phase: knob.PhaseChanged, Location: knob.Point{X: 9, Y: 15}, Translation: knob.Point{X: -1, Y: 5}},
		{Phase: knob.PhaseEnded, Location: knob.Point{X: 9, Y: 15}, Translation: knob.Point{X: -1, Y: 5}},
	}, samples)
	assert.False(t, d.Pressed())
}

func TestPointerIgnoresIdleMotion(t *testing.T) {
	d := NewPointerDecoder(knob.Point{})

	samples := decodeAll(d,
		rel(evdev.REL_Y, 7), syn(),
		key(evdev.BTN_LEFT, 0),
		key(evdev.BTN_RIGHT, 1),
	)
	assert.Empty(t, samples)

	// translation restarts with every press
	samples = decodeAll(d, key(evdev.BTN_LEFT, 1), rel(evdev.REL_Y, 1), syn())
	assert.Equal(t, 1.0, samples[1].Translation.Y)
}

func TestPointerModifiers(t *testing.T) {
	d := NewPointerDecoder(knob.Point{})

	samples := decodeAll(d,
		key(evdev.KEY_LEFTMETA, 1),
		key(evdev.KEY_LEFTMETA, 2),
		key(evdev.BTN_LEFT, 1),
		key(evdev.KEY_RIGHTCTRL, 1),
		key(evdev.KEY_LEFTMETA, 0),
		key(evdev.BTN_LEFT, 0),
	)

	assert.Equal(t, 2, len(samples))
	assert.Equal(t, knob.ModCommand, samples[0].Modifiers)
	assert.Equal(t, knob.ModControl, samples[1].Modifiers)
}

func TestPointerTapReachesKnob(t *testing.T) {
	d := NewPointerDecoder(knob.Point{X: 5, Y: 5})
	r := knob.NewReducer()
	r.Region = knob.Rect{Width: 10, Height: 10}
	state := knob.NewState()

	var events []knob.Event
	for _, s := range decodeAll(d, key(evdev.BTN_LEFT, 1), rel(evdev.REL_X, 1), syn(), key(evdev.BTN_LEFT, 0)) {
		if e, ok := r.Reduce(s, &state); ok {
			events = append(events, e)
		}
	}

	assert.Equal(t, 1, len(events))
	assert.Equal(t, knob.EventTap, events[0].Type)
}
