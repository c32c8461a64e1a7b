package config

import (
	"github.com/gethiox/paralexui/internal/pkg/adapter"
	"github.com/gethiox/paralexui/internal/pkg/param"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	KindPercent     Kind = "percent"
	KindMIDI        Kind = "midi"
	KindTranspose   Kind = "transpose"
	KindInt         Kind = "int"
	KindReal        Kind = "real"
	KindFactor      Kind = "factor"
	KindEnumeration Kind = "enumeration"
	KindBool        Kind = "bool"
	KindIdentity    Kind = "identity"

	KnobButton KnobType = "button"
	KnobSlider KnobType = "slider"
)

var SupportedKinds = map[Kind]bool{
	KindPercent:     true,
	KindMIDI:        true,
	KindTranspose:   true,
	KindInt:         true,
	KindReal:        true,
	KindFactor:      true,
	KindEnumeration: true,
	KindBool:        true,
	KindIdentity:    true,
}

var SupportedKnobTypes = map[KnobType]bool{
	KnobButton: true,
	KnobSlider: true,
}

var SupportedRoles = map[string]param.Role{
	"":        param.RoleNormal,
	"normal":  param.RoleNormal,
	"command": param.RoleCommand,
}

type Kind string
type KnobType string

type Parameter struct {
	ID         param.Identifier
	Name       string
	Symbol     string
	SymbolName string
	Kind       Kind
	Role       param.Role
	// Bipolar parameters use the -1..1 normalized domain.
	Bipolar bool
	Adapter *adapter.Adapter
	// Default is normalized.
	Default float64
}

type Knob struct {
	// Parameter is empty for unbound knobs.
	Parameter    param.Identifier
	Type         KnobType
	Color        *colorful.Color
	Title        *string
	Subtitle     *string
	ShowSubtitle bool
	ShowIcon     bool
	StateSource  param.Identifier
	// OnThreshold replaces the default "value > 0" isOn condition.
	OnThreshold *float64
	Popover     string
	Enabled     bool
}

type Panel struct {
	Name       string
	Parameters []Parameter
	Knobs      []Knob
}

// PanelFile is a parsed panel with its origin.
type PanelFile struct {
	ConfigFile string
	ConfigType string // factory or user
	Panel      Panel
}
