package knob

import (
	"math"

	"github.com/gethiox/paralexui/internal/pkg/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const (
	DefaultPixelToValueRatio = 0.01
	DefaultSensitivity       = 0.25
	// DefaultTapThreshold is the largest displacement, in pixels, still
	// recognized as a tap.
	DefaultTapThreshold = 2
)

type Point struct {
	X, Y float64
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Region is the hit area of a knob, in the same space as Sample.Location.
type Region interface {
	Contains(p Point) bool
}

// Rect is a Region spanning [X, X+Width) x [Y, Y+Height).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Sample is a single pointer report of a press-to-release gesture.
// Translation is measured from the press location.
type Sample struct {
	Phase       Phase
	Location    Point
	Translation Point
	Modifiers   Modifiers
}

// Reducer folds the samples of one gesture into knob events and state.
// Drag values are per-sample deltas, not cumulative since the press.
type Reducer struct {
	PixelToValueRatio float64
	Sensitivity       float64
	TapThreshold      float64
	// Region is the hit area, nil accepts every location.
	Region Region

	active bool
	anchor float64
	origin Point
	// travel is the largest distance from origin seen in this gesture
	travel float64
}

func NewReducer() *Reducer {
	return &Reducer{
		PixelToValueRatio: DefaultPixelToValueRatio,
		Sensitivity:       DefaultSensitivity,
		TapThreshold:      DefaultTapThreshold,
	}
}

// Active reports whether a gesture is in flight.
func (r *Reducer) Active() bool {
	return r.active
}

func (r *Reducer) inside(p Point) bool {
	return r.Region == nil || r.Region.Contains(p)
}

// offset converts a pixel delta to a value delta, dragging down decreases.
func (r *Reducer) offset(pixels float64) float64 {
	return -pixels * r.PixelToValueRatio * r.Sensitivity
}

func (r *Reducer) start(s Sample, state *State) {
	r.active = true
	r.anchor = s.Translation.Y
	r.origin = s.Translation
	r.travel = 0
	state.Highlighted = r.inside(s.Location)
}

func (r *Reducer) track(translation Point) {
	if d := translation.Sub(r.origin).Len(); d > r.travel {
		r.travel = d
	}
}

// Reduce applies one sample to state and returns at most one event.
func (r *Reducer) Reduce(s Sample, state *State) (Event, bool) {
	if !state.Enabled {
		r.Cancel(state)
		return Event{}, false
	}

	var (
		event Event
		ok    bool
	)

	switch s.Phase {
	case PhaseStarted:
		r.start(s, state)
	case PhaseChanged:
		if !r.active {
			r.start(s, state)
			break
		}
		state.Highlighted = r.inside(s.Location)
		r.track(s.Translation)

		delta := s.Translation.Y - r.anchor
		r.anchor = s.Translation.Y
		if delta == 0 {
			break
		}
		state.Pressed = true
		event = Event{Type: EventDrag, Phase: PhaseChanged, Modifiers: s.Modifiers, Value: r.offset(delta)}
		ok = true
	case PhaseEnded:
		// release of a cancelled or never started gesture
		if !r.active {
			state.Pressed = false
			state.Highlighted = false
			break
		}
		delta := s.Translation.Y - r.anchor
		r.track(s.Translation)
		inside := r.inside(s.Location)

		r.active = false
		state.Pressed = false
		state.Highlighted = false

		if r.travel <= r.TapThreshold && inside {
			event = Event{Type: EventTap, Phase: PhaseEnded, Modifiers: s.Modifiers}
		} else {
			event = Event{Type: EventDrag, Phase: PhaseEnded, Modifiers: s.Modifiers, Value: r.offset(delta)}
		}
		ok = true
	}

	if ok {
		log.Debug("gesture", logger.Gesture, zap.Stringer("event", event))
	}
	return event, ok
}

// Cancel drops an in-flight gesture without emitting anything.
func (r *Reducer) Cancel(state *State) {
	r.active = false
	r.anchor = 0
	r.origin = Point{}
	r.travel = 0
	state.Pressed = false
	state.Highlighted = false
}
