// Package param holds the parameter handles knobs are bound to.
package param

import (
	"fmt"
	"math"
	"strings"

	"github.com/gethiox/paralexui/internal/pkg/adapter"
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/utils"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Identifier is a dotted parameter path, "osc1.level".
type Identifier string

// Name is the last path component.
func (i Identifier) Name() string {
	s := string(i)
	if idx := strings.LastIndexByte(s, '.'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

func (i Identifier) Slug() string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ' ', '_':
			return '-'
		}
		return r
	}, strings.ToLower(string(i)))
}

type Role int

const (
	RoleNormal Role = iota
	// RoleCommand parameters are triggered, not set.
	RoleCommand
)

func (r Role) String() string {
	switch r {
	case RoleNormal:
		return "normal"
	case RoleCommand:
		return "command"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Handle is what a knob binds to. Values are normalized, 0..1 or -1..1.
type Handle interface {
	Identifier() Identifier
	Role() Role
	Value() float64
	SetValue(v float64)
	OffsetValue(delta float64)
	// Subscribe calls fn synchronously after every write.
	Subscribe(fn func(float64)) utils.Subscription
	FormattedValue() string
	Name() string
	Symbol() string
	SymbolName() string
}

// Toggler is implemented by parameters that can hold a boolean value.
type Toggler interface {
	Boolean() bool
	Toggle()
}

// Invoker is implemented by parameters that can trigger an action.
type Invoker interface {
	Invoke()
}

// Parameter is an in-memory Handle.
type Parameter struct {
	id         Identifier
	name       string
	symbol     string
	symbolName string
	role       Role
	bipolar    bool
	boolean    bool
	def        float64
	value      float64
	adapter    *adapter.Adapter
	action     func()

	publisher *utils.Publisher[float64]
}

type Option func(p *Parameter)

func WithName(name string) Option {
	return func(p *Parameter) { p.name = name }
}

func WithSymbol(symbol, symbolName string) Option {
	return func(p *Parameter) {
		p.symbol = symbol
		p.symbolName = symbolName
	}
}

func WithRole(role Role) Option {
	return func(p *Parameter) { p.role = role }
}

// Bipolar widens the domain to -1..1.
func Bipolar() Option {
	return func(p *Parameter) { p.bipolar = true }
}

func Boolean() Option {
	return func(p *Parameter) { p.boolean = true }
}

func WithDefault(v float64) Option {
	return func(p *Parameter) { p.def = v }
}

// WithAdapter sets the adapter used by FormattedValue.
func WithAdapter(a *adapter.Adapter) Option {
	return func(p *Parameter) { p.adapter = a }
}

// WithAction sets the function run by Invoke.
func WithAction(action func()) Option {
	return func(p *Parameter) { p.action = action }
}

func New(id Identifier, opts ...Option) *Parameter {
	p := &Parameter{
		id:        id,
		publisher: utils.NewPublisher[float64](),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.value = p.clamp(p.def)
	return p
}

func (p *Parameter) Identifier() Identifier { return p.id }
func (p *Parameter) Role() Role             { return p.role }
func (p *Parameter) Name() string           { return p.name }
func (p *Parameter) Symbol() string         { return p.symbol }
func (p *Parameter) SymbolName() string     { return p.symbolName }
func (p *Parameter) Boolean() bool          { return p.boolean }
func (p *Parameter) Bipolar() bool          { return p.bipolar }
func (p *Parameter) Default() float64       { return p.def }
func (p *Parameter) Value() float64         { return p.value }

func (p *Parameter) Adapter() *adapter.Adapter {
	return p.adapter
}

func (p *Parameter) lower() float64 {
	if p.bipolar {
		return -1
	}
	return 0
}

func (p *Parameter) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.lower()
	}
	if p.boolean {
		if v >= 0.5 {
			return 1
		}
		return 0
	}
	return math.Max(p.lower(), math.Min(1, v))
}

// SetValue stores the clamped value and notifies subscribers before
// returning, whether the value changed or not.
func (p *Parameter) SetValue(v float64) {
	p.value = p.clamp(v)
	log.Debug("value set", logger.Value,
		zap.String("parameter", string(p.id)),
		zap.Float64("value", p.value),
	)
	p.publisher.Publish(p.value)
}

func (p *Parameter) OffsetValue(delta float64) {
	p.SetValue(p.value + delta)
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.def)
}

func (p *Parameter) Subscribe(fn func(float64)) utils.Subscription {
	return p.publisher.Subscribe(fn)
}

// Subscribers returns the number of live subscriptions.
func (p *Parameter) Subscribers() int {
	return p.publisher.Len()
}

func (p *Parameter) FormattedValue() string {
	if p.adapter != nil {
		return p.adapter.StringValue(p.value)
	}
	if p.boolean {
		if p.value > 0 {
			return adapter.OnSymbol
		}
		return adapter.OffSymbol
	}
	return fmt.Sprintf("%.2f", p.value)
}

func (p *Parameter) Toggle() {
	if p.value > 0 {
		p.SetValue(0)
	} else {
		p.SetValue(1)
	}
}

// Invoke runs the parameter action, command parameters also publish a
// pulse so observers see the trigger.
func (p *Parameter) Invoke() {
	log.Info("invoked", logger.Action, zap.String("parameter", string(p.id)))
	if p.action != nil {
		p.action()
	}
	if p.role == RoleCommand {
		p.publisher.Publish(p.value)
	}
}

func (p *Parameter) String() string {
	return fmt.Sprintf("%s=%s", p.id, p.FormattedValue())
}
