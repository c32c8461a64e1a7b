package knob

import (
	"fmt"
	"strings"
)

type EventType uint8

const (
	EventTap EventType = iota
	EventDrag
)

func (t EventType) String() string {
	switch t {
	case EventTap:
		return "tap"
	case EventDrag:
		return "drag"
	default:
		return fmt.Sprintf("EventType(%d)", t)
	}
}

type Phase uint8

const (
	PhaseStarted Phase = iota
	PhaseChanged
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}

// Modifiers is a bit set of keyboard modifiers held during a gesture.
type Modifiers uint8

const (
	ModCommand Modifiers = 1 << iota
	ModControl
)

func (m Modifiers) String() string {
	var names []string
	if m&ModCommand != 0 {
		names = append(names, "command")
	}
	if m&ModControl != 0 {
		names = append(names, "control")
	}
	return "[" + strings.Join(names, ",") + "]"
}

// Event is one disambiguated gesture notification. Value is the drag delta,
// zero for taps.
type Event struct {
	Type      EventType
	Phase     Phase
	Modifiers Modifiers
	Value     float64
}

func (e Event) CommandDown() bool {
	return e.Modifiers&ModCommand != 0
}

func (e Event) ControlDown() bool {
	return e.Modifiers&ModControl != 0
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s %s %g", e.Type, e.Phase, e.Modifiers, e.Value)
}
