package adapter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestFactories(t *testing.T) {
	midi := DefaultMIDI()
	semitones := Transpose(true)
	octaves := Transpose(false)
	optional, err := Int(0, 10, true, true)
	require.NoError(t, err)
	reals, err := Real(0, 10, true)
	require.NoError(t, err)
	factor, err := Factor(0.5, 2, true)
	require.NoError(t, err)
	enum, err := Enumeration([]Item{{Label: "Saw"}, {Label: "Square", Symbol: "Sq"}, {Label: "Sine"}})
	require.NoError(t, err)

	tests := []struct {
		name       string
		adapter    *Adapter
		normalized float64
		value      float64
		str        string
	}{
		{"percent bipolar zero", Percent(false), 0, 0, "0%"},
		{"percent bipolar half", Percent(false), 0.5, 0.5, "50%"},
		{"percent bipolar min", Percent(false), -1, -1, "-100%"},
		{"percent bipolar max", Percent(false), 1, 1, "100%"},
		{"percent positive", Percent(true), 0.25, 0.25, "25%"},
		{"midi zero", midi, 0, 0, "0"},
		{"midi half", midi, 0.5, 64, "64"},
		{"midi max", midi, 1, 127, "127"},
		{"transpose up", semitones, 0.5, 48, "+48"},
		{"transpose down", semitones, -0.125, -12, "-12"},
		{"transpose negative zero", semitones, -0.001, 0, "0"},
		{"transpose octaves", octaves, 0.25, 2, "+2"},
		{"optional int zero", optional, 0, 0, "-"},
		{"optional int", optional, 0.55, 6, "6"},
		{"real", reals, 0.25, 2.5, "2.5"},
		{"real whole", reals, 0.5, 5, "5"},
		{"factor", factor, 0.5, 1.25, "x1.25"},
		{"enumeration first", enum, 0, 0, "Saw"},
		{"enumeration symbol", enum, 0.4, 1, "Sq"},
		{"enumeration clamped", enum, 1, 2, "Sine"},
		{"bool on", Bool(), 1, 1, "On"},
		{"bool off", Bool(), 0, 0, "Off"},
		{"identity", Identity(), 1, 1, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.value, tt.adapter.Value(tt.normalized), 1e-9)
			assert.Equal(t, tt.str, tt.adapter.StringValue(tt.normalized))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	integer, err := Int(0, 10, true, false)
	require.NoError(t, err)
	reals, err := Real(-5, 5, false)
	require.NoError(t, err)

	for i := 0; i <= 20; i++ {
		x := float64(i) / 20
		assert.LessOrEqual(t, math.Abs(integer.SetValue(integer.Value(x))-x), 0.5/integer.Range()+1e-9)
		assert.InDelta(t, x, reals.SetValue(reals.Value(x)), 1e-9)
	}

	percent := Percent(false)
	for _, x := range []float64{-1, -0.3, 0, 0.7, 1} {
		assert.InDelta(t, x, percent.SetValue(percent.Value(x)), 1e-9)
	}
}

func TestMIDIIsInteger(t *testing.T) {
	midi := DefaultMIDI()
	for i := 0; i <= 1000; i++ {
		v := midi.Value(float64(i) / 1000)
		assert.Equal(t, math.Round(v), v, "normalized %d/1000", i)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 127.0)
	}
}

func TestPrecisionChanges(t *testing.T) {
	reals, err := Real(0, 10, true)
	require.NoError(t, err)

	assert.Equal(t, "5", reals.StringValue(0.5))

	reals.SetHideZeroDecimal(false)
	assert.Equal(t, "5.00", reals.StringValue(0.5))

	assert.Equal(t, nil, reals.SetDecimals(1))
	assert.Equal(t, "5.0", reals.StringValue(0.5))
	assert.Equal(t, "3.3", reals.StringValue(0.333))

	assert.True(t, errors.Is(reals.SetDecimals(-1), ErrInvalidDecimals))
	assert.Equal(t, 1, reals.Decimals())
}

func TestConstructionErrors(t *testing.T) {
	_, err := Real(1, 1, true)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = Int(10, 0, true, false)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = New(RealFormatter, 0, 1, identity, identity, WithGranularity(0))
	assert.True(t, errors.Is(err, ErrInvalidGranularity))

	_, err = New(RealFormatter, 0, 1, identity, identity, WithDecimals(-2))
	assert.True(t, errors.Is(err, ErrInvalidDecimals))

	_, err = New(RealFormatter, 0, 1, nil, identity)
	assert.True(t, errors.Is(err, ErrNoConverter))

	_, err = Enumeration(nil)
	assert.True(t, errors.Is(err, ErrNoItems))
}

func TestAbsentValues(t *testing.T) {
	a := DefaultMIDI()

	_, ok := a.ValueOf(nil)
	assert.False(t, ok)
	v, ok := a.ValueOf(ptr(1))
	assert.True(t, ok)
	assert.Equal(t, 127.0, v)

	assert.Equal(t, AbsentValue, a.StringValueOf(nil))
	assert.Equal(t, AbsentValue, a.AdaptedString(nil))
	assert.Equal(t, "64", a.StringValueOf(ptr(0.5)))
	assert.Equal(t, "12", a.AdaptedString(ptr(12)))
}

func TestFormatterFallback(t *testing.T) {
	reals, err := Real(0, 1, true)
	require.NoError(t, err)
	assert.Equal(t, "NaN", reals.AdaptedString(ptr(math.NaN())))

	bare, err := New(nil, 0, 1, identity, identity)
	require.NoError(t, err)
	assert.Equal(t, "0.25", bare.StringValue(0.25))
}

func TestStep(t *testing.T) {
	assert.InDelta(t, 1.0/127, DefaultMIDI().Step(), 1e-12)
	assert.InDelta(t, 0.01, Percent(true).Step(), 1e-12)
	assert.InDelta(t, 0.01, Percent(false).Step(), 1e-12)
	assert.InDelta(t, 1.0/96, Transpose(true).Step(), 1e-12)
}

func TestDescriptions(t *testing.T) {
	a := DefaultMIDI()
	assert.Equal(t, "[0..127]", a.String())
	assert.Contains(t, a.GoString(), "adapter midi [0..127]")
}
