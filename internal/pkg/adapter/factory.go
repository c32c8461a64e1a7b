package adapter

import (
	"fmt"
	"math"
)

const (
	semitoneSpan = 96
	octaveSpan   = 8
)

func must(a *Adapter, err error) *Adapter {
	if err != nil {
		panic(err)
	}
	return a
}

// Percent displays a normalized value as a percentage. Bipolar adapters map
// -1..1 to -100%..100%.
func Percent(positive bool) *Adapter {
	min := -1.0
	if positive {
		min = 0
	}
	get := func(v float64, a *Adapter) float64 {
		if a.Positive {
			return v*a.Range() + a.Min
		}
		return (v+1)*0.5*a.Range() + a.Min
	}
	set := func(v float64, a *Adapter) float64 {
		if a.Positive {
			return (v - a.Min) / a.Range()
		}
		return (v-a.Min)/(a.Range()*0.5) - 1
	}
	return must(New(PercentFormatter, min, 1, get, set,
		WithKind("percent"), WithPositive(positive), WithGranularity(0.01)))
}

// MIDI maps 0..1 to integer MIDI values, 0..127 by default.
func MIDI(min, max int) (*Adapter, error) {
	return New(IntFormatter, float64(min), float64(max), roundedLinear, linearInverse,
		WithKind("midi"))
}

// DefaultMIDI is MIDI(0, 127).
func DefaultMIDI() *Adapter {
	return must(MIDI(0, 127))
}

// Transpose maps -1..1 to a signed transposition, four octaves either way
// in semitones or in octaves.
func Transpose(inSemitones bool) *Adapter {
	span := float64(octaveSpan)
	if inSemitones {
		span = semitoneSpan
	}
	get := func(v float64, _ *Adapter) float64 {
		return math.Round(v * span)
	}
	set := func(v float64, _ *Adapter) float64 {
		return v / span
	}
	return must(New(OffsetFormatter, -1, 1, get, set,
		WithKind("transpose"), WithPositive(false)))
}

// Int maps 0..1 to integers in [min, max]. Optional adapters render zero as "-".
func Int(min, max int, positive, optional bool) (*Adapter, error) {
	formatter := IntFormatter
	if optional {
		formatter = OptionalIntFormatter
	}
	return New(formatter, float64(min), float64(max), roundedLinear, linearInverse,
		WithKind("int"), WithPositive(positive), WithNotSetIfZero(optional))
}

func Real(min, max float64, positive bool) (*Adapter, error) {
	return New(RealFormatter, min, max, linear, linearInverse,
		WithKind("real"), WithPositive(positive), WithDecimals(2), WithGranularity(0.01))
}

func Factor(min, max float64, positive bool) (*Adapter, error) {
	return New(FactorFormatter, min, max, linear, linearInverse,
		WithKind("factor"), WithPositive(positive), WithDecimals(2), WithGranularity(0.01))
}

// Enumeration picks one of the items, round(v*N) clamped to the last index.
func Enumeration(items []Item) (*Adapter, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	n := float64(len(items))
	get := func(v float64, _ *Adapter) float64 {
		return float64(clampIndex(v*n, len(items)))
	}
	set := func(v float64, _ *Adapter) float64 {
		return v / n
	}
	a, err := New(EnumerationFormatter(items), 0, n, get, set, WithKind("enumeration"))
	if err != nil {
		return nil, fmt.Errorf("enumeration: %w", err)
	}
	return a, nil
}

func Bool() *Adapter {
	return must(New(OnOffFormatter, 0, 1, identity, identity, WithKind("bool")))
}

// Identity passes values through and renders them as integers.
func Identity() *Adapter {
	return must(New(IntFormatter, 0, 1, identity, identity, WithKind("identity")))
}

func identity(v float64, _ *Adapter) float64 {
	return v
}

func linear(v float64, a *Adapter) float64 {
	return a.Min + v*a.Range()
}

func roundedLinear(v float64, a *Adapter) float64 {
	return math.Round(a.Min + v*a.Range())
}

func linearInverse(v float64, a *Adapter) float64 {
	return (v - a.Min) / a.Range()
}
