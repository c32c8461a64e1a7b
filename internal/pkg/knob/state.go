// Package knob implements gesture controlled widgets bound to parameters.
package knob

import "strings"

// State flags are independent, any combination is valid.
type State struct {
	Enabled     bool
	Pressed     bool
	Selected    bool
	Highlighted bool
	IsOn        bool
}

func NewState() State {
	return State{Enabled: true}
}

func (s State) String() string {
	var flags []string
	if !s.Enabled {
		flags = append(flags, "disabled")
	}
	if s.Pressed {
		flags = append(flags, "pressed")
	}
	if s.Selected {
		flags = append(flags, "selected")
	}
	if s.Highlighted {
		flags = append(flags, "highlighted")
	}
	if s.IsOn {
		flags = append(flags, "on")
	}
	if len(flags) == 0 {
		return "idle"
	}
	return strings.Join(flags, "|")
}
