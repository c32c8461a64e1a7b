package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawStringLen(t *testing.T) {
	for i, tc := range []struct {
		input    string
		expected int
	}{
		{input: "", expected: 0},
		{input: "a", expected: 1},
		{input: "a\033", expected: 2},
		{input: "a\033[", expected: 3},
		{input: "a\033[2", expected: 4},
		{input: "a\033[2A", expected: 1},
		{input: "a\033[2Aa", expected: 2},
		{input: "█\033[0m", expected: 1},
	} {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			l := rawStringLen(tc.input)
			assert.Equal(t, tc.expected, l)
		})
	}
}

func TestUnpack(t *testing.T) {
	data := []byte(`{"ts":1650000000000000000,"caller":"knob/controller.go:336","msg":"toggled","level":3,"parameter":"fx.bypass","value":"On"}`)

	e, err := unpack(data)
	require.NoError(t, err)
	assert.Equal(t, "toggled", e.Msg)
	assert.Equal(t, logger.ActionLvl, e.Level)
	assert.Equal(t, "fx.bypass", e.Parameter)
	assert.Equal(t, int64(1650000000000000000), time.Time(e.Ts).UnixNano())
}

func TestPrepareString(t *testing.T) {
	au := aurora.NewAurora(false)
	e := Entry{
		Ts:        TimeNanosecond(time.Date(2022, 4, 15, 10, 20, 30, 0, time.Local)),
		Caller:    "knob/controller.go:336",
		Msg:       "toggled",
		Level:     logger.ActionLvl,
		Parameter: "fx.bypass",
	}

	assert.Equal(t, "[10:20:30.000] toggled [param=fx.bypass]", prepareString(e, au, -1, logger.ActionLvl))
	assert.Equal(t, "", prepareString(e, au, -1, logger.InfoLvl))

	s := prepareString(e, au, 60, logger.ActionLvl)
	assert.Equal(t, 60, rawStringLen(s))
	assert.Equal(t, "[10:20:30.000] toggled                     [param=fx.bypass]", s)

	debug := prepareString(e, au, -1, logger.DebugLvl)
	assert.Equal(t, "[10:20:30.000] toggled [param=fx.bypass] (knob/controller.go:336)", debug)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, logger.InfoLvl, threshold(-3))
	assert.Equal(t, logger.ActionLvl, threshold(1))
	assert.Equal(t, logger.DebugLvl, threshold(4))
	assert.Equal(t, logger.DebugLvl, threshold(99))
}

func TestColorForStringIsStable(t *testing.T) {
	au := aurora.NewAurora(true)
	assert.Equal(t, colorForString(au, "osc1.level").String(), colorForString(au, "osc1.level").String())
	assert.Equal(t, "osc1.level", colorForString(aurora.NewAurora(false), "osc1.level").String())
}
