// Package adapter maps values between the normalized control domain
// (0..1 or -1..1) and engineering units, and renders them for display.
package adapter

import (
	"errors"
	"fmt"
	"math"
)

// AbsentValue is rendered for a missing input value.
const AbsentValue = "<nil>"

var (
	ErrInvalidRange       = errors.New("max must be greater than min")
	ErrInvalidGranularity = errors.New("granularity must be greater than zero")
	ErrInvalidDecimals    = errors.New("decimals must not be negative")
	ErrNoConverter        = errors.New("both conversion functions are required")
	ErrNoItems            = errors.New("enumeration needs at least one item")
)

// ConvertFunc converts a value using the adapter's range.
type ConvertFunc func(v float64, a *Adapter) float64

// Adapter adapts a normalized value to another range. It also controls the
// number of displayed decimals and the minimal value delta (granularity).
type Adapter struct {
	Kind     string
	Min      float64
	Max      float64
	Positive bool
	// NotSetIfZero marks zero as "no value" for the owner of the adapter.
	NotSetIfZero bool
	Granularity  float64

	decimals        int
	hideZeroDecimal bool
	formatter       Formatter

	toEngineering ConvertFunc
	toNormalized  ConvertFunc
}

type Option func(a *Adapter)

func WithDecimals(decimals int) Option {
	return func(a *Adapter) { a.decimals = decimals }
}

func WithHideZeroDecimal(hide bool) Option {
	return func(a *Adapter) { a.hideZeroDecimal = hide }
}

func WithGranularity(granularity float64) Option {
	return func(a *Adapter) { a.Granularity = granularity }
}

func WithPositive(positive bool) Option {
	return func(a *Adapter) { a.Positive = positive }
}

func WithNotSetIfZero(notSet bool) Option {
	return func(a *Adapter) { a.NotSetIfZero = notSet }
}

func WithKind(kind string) Option {
	return func(a *Adapter) { a.Kind = kind }
}

// New builds an adapter. Construction fails when max <= min, since every
// inverse map divides by the range.
func New(formatter Formatter, min, max float64, get, set ConvertFunc, opts ...Option) (*Adapter, error) {
	if get == nil || set == nil {
		return nil, ErrNoConverter
	}
	if math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return nil, fmt.Errorf("%w: [%v..%v]", ErrInvalidRange, min, max)
	}

	a := &Adapter{
		Kind:            "custom",
		Min:             min,
		Max:             max,
		Positive:        true,
		Granularity:     1,
		hideZeroDecimal: true,
		formatter:       formatter,
		toEngineering:   get,
		toNormalized:    set,
	}
	for _, opt := range opts {
		opt(a)
	}

	if !(a.Granularity > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGranularity, a.Granularity)
	}
	if a.decimals < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDecimals, a.decimals)
	}
	return a, nil
}

func (a *Adapter) Range() float64 {
	return a.Max - a.Min
}

func (a *Adapter) Decimals() int {
	return a.decimals
}

// SetDecimals changes the displayed precision, the next rendered value
// already uses it.
func (a *Adapter) SetDecimals(decimals int) error {
	if decimals < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDecimals, decimals)
	}
	a.decimals = decimals
	return nil
}

func (a *Adapter) HideZeroDecimal() bool {
	return a.hideZeroDecimal
}

func (a *Adapter) SetHideZeroDecimal(hide bool) {
	a.hideZeroDecimal = hide
}

func (a *Adapter) Precision() Precision {
	p := Precision{MaxDigits: a.decimals, MinDigits: a.decimals}
	if a.hideZeroDecimal {
		p.MinDigits = 0
	}
	return p
}

func (a *Adapter) Formatter() Formatter {
	return a.formatter
}

// Step is one granularity unit expressed in the normalized domain.
func (a *Adapter) Step() float64 {
	return math.Abs(a.SetValue(a.Min+a.Granularity) - a.SetValue(a.Min))
}

// Value converts a normalized value to engineering units.
func (a *Adapter) Value(normalized float64) float64 {
	return a.toEngineering(normalized, a)
}

// ValueOf is Value for an optional input.
func (a *Adapter) ValueOf(normalized *float64) (float64, bool) {
	if normalized == nil {
		return 0, false
	}
	return a.Value(*normalized), true
}

// SetValue converts an engineering value to the normalized domain.
func (a *Adapter) SetValue(engineering float64) float64 {
	return a.toNormalized(engineering, a)
}

// StringValue renders a normalized value.
func (a *Adapter) StringValue(normalized float64) string {
	return a.render(a.Value(normalized))
}

func (a *Adapter) StringValueOf(normalized *float64) string {
	if normalized == nil {
		return AbsentValue
	}
	return a.StringValue(*normalized)
}

// AdaptedString renders a value that is already in engineering units.
func (a *Adapter) AdaptedString(adapted *float64) string {
	if adapted == nil {
		return AbsentValue
	}
	return a.render(*adapted)
}

func (a *Adapter) render(v float64) string {
	if a.formatter != nil {
		if s, ok := a.formatter.Format(v, a.Precision()); ok {
			return s
		}
	}
	return plain(v)
}

func (a *Adapter) String() string {
	return fmt.Sprintf("[%v..%v]", a.Min, a.Max)
}

func (a *Adapter) GoString() string {
	return fmt.Sprintf(
		"adapter %s [%v..%v] positive: %t decimals: %d hideZeroDecimal: %t granularity: %v",
		a.Kind, a.Min, a.Max, a.Positive, a.decimals, a.hideZeroDecimal, a.Granularity,
	)
}
