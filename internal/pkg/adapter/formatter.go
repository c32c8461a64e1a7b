package adapter

import (
	"math"
	"strconv"
	"strings"
)

// Precision is the fraction digit policy applied when rendering a number.
type Precision struct {
	MaxDigits int
	MinDigits int
}

// Formatter renders an engineering value. The bool is false when the value
// cannot be represented, callers then fall back to a plain rendering.
type Formatter interface {
	Format(v float64, p Precision) (string, bool)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc func(v float64, p Precision) (string, bool)

func (f FormatterFunc) Format(v float64, p Precision) (string, bool) {
	return f(v, p)
}

// Item is a single enumeration entry.
type Item struct {
	Label  string
	Symbol string
}

func (i Item) String() string {
	if i.Symbol != "" {
		return i.Symbol
	}
	return i.Label
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// formatNumber renders v with at most p.MaxDigits fraction digits, dropping
// trailing zeros down to p.MinDigits.
func formatNumber(v float64, p Precision) string {
	max := p.MaxDigits
	if max < 0 {
		max = 0
	}
	min := p.MinDigits
	if min > max {
		min = max
	}

	s := strconv.FormatFloat(v, 'f', max, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		end := len(s)
		for end > dot+1+min && s[end-1] == '0' {
			end--
		}
		if end == dot+1 {
			end = dot
		}
		s = s[:end]
	}

	// "-0" and "-0.0" look silly on a knob
	if strings.Trim(s, "-0.") == "" {
		s = strings.TrimPrefix(s, "-")
	}
	return s
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	// PercentFormatter renders 0.5 as "50%".
	PercentFormatter Formatter = FormatterFunc(func(v float64, p Precision) (string, bool) {
		if !finite(v) {
			return "", false
		}
		return formatNumber(v*100, p) + "%", true
	})

	IntFormatter Formatter = FormatterFunc(func(v float64, p Precision) (string, bool) {
		if !finite(v) {
			return "", false
		}
		return formatNumber(v, p), true
	})

	// OptionalIntFormatter renders zero as "-".
	OptionalIntFormatter Formatter = FormatterFunc(func(v float64, p Precision) (string, bool) {
		if !finite(v) {
			return "", false
		}
		if math.Round(v) == 0 {
			return "-", true
		}
		return formatNumber(v, p), true
	})

	// OffsetFormatter always shows the sign of non-zero values, "+3", "-12", "0".
	OffsetFormatter Formatter = FormatterFunc(func(v float64, p Precision) (string, bool) {
		if !finite(v) {
			return "", false
		}
		s := formatNumber(v, p)
		if v > 0 && s != "0" {
			return "+" + s, true
		}
		return s, true
	})

	RealFormatter Formatter = FormatterFunc(func(v float64, p Precision) (string, bool) {
		if !finite(v) {
			return "", false
		}
		return formatNumber(v, p), true
	})

	// FactorFormatter renders multipliers, "x1.5".
	FactorFormatter Formatter = FormatterFunc(func(v float64, p Precision) (string, bool) {
		if !finite(v) {
			return "", false
		}
		return "x" + formatNumber(v, p), true
	})

	OnOffFormatter Formatter = FormatterFunc(func(v float64, p Precision) (string, bool) {
		if math.IsNaN(v) {
			return "", false
		}
		if v >= 0.5 {
			return OnSymbol, true
		}
		return OffSymbol, true
	})
)

const (
	OnSymbol  = "On"
	OffSymbol = "Off"
)

// EnumerationFormatter renders the label of the item at index round(v),
// indexes outside of the item list are clamped to its bounds.
func EnumerationFormatter(items []Item) Formatter {
	labels := make([]Item, len(items))
	copy(labels, items)

	return FormatterFunc(func(v float64, p Precision) (string, bool) {
		if len(labels) == 0 || math.IsNaN(v) {
			return "", false
		}
		return labels[clampIndex(v, len(labels))].String(), true
	})
}

func clampIndex(v float64, n int) int {
	if math.IsInf(v, -1) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) || v > float64(n-1) {
		return n - 1
	}
	return int(math.Round(v))
}
