package display

import (
	"fmt"
	"math"
	"strings"

	"github.com/gethiox/paralexui/internal/pkg/panel"
)

const (
	barFull  = '█'
	barEmpty = '▁'
)

func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// Bar renders level, 0..1, as a meter of width cells.
func Bar(level float64, width int) string {
	if math.IsNaN(level) {
		level = 0
	}
	level = math.Max(0, math.Min(1, level))
	filled := int(math.Round(level * float64(width)))
	return strings.Repeat(string(barFull), filled) + strings.Repeat(string(barEmpty), width-filled)
}

// Screen lays out the focused knob of a panel on a four line display.
func Screen(name string, focus, count int, v panel.View, width int) [4]string {
	var lines [4]string

	position := fmt.Sprintf("%d/%d", focus+1, count)
	head := fit(name, width-len(position)-1)
	lines[0] = head + " " + position

	title := v.Title
	if v.State.Selected {
		title = "*" + title
	}
	if !v.State.Enabled {
		title += " (off)"
	}
	if v.ShowSubtitle && v.Subtitle != "" && v.Subtitle != v.Title {
		title += " " + v.Subtitle
	}
	lines[1] = fit(title, width)

	value := v.Value
	if v.State.IsOn {
		value += " *"
	}
	lines[2] = fit(value, width)
	lines[3] = Bar(v.Level, width)

	return lines
}
