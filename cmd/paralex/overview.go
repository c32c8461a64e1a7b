package main

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/gethiox/paralexui/internal/pkg/display"
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/panel"
	"github.com/logrusorgru/aurora"
	"github.com/lucasb-eyer/go-colorful"
)

// colorIndex maps c onto the 6x6x6 cube of the 256 color palette.
func colorIndex(c colorful.Color) uint8 {
	c = c.Clamped()
	scale := func(v float64) uint8 { return uint8(math.Round(v * 5)) }
	return 16 + 36*scale(c.R) + 6*scale(c.G) + scale(c.B)
}

func knobLine(au aurora.Aurora, v panel.View, focused bool, width int) string {
	marker := "  "
	if focused {
		marker = "> "
	}

	title := v.Title
	if title == "" {
		title = "(unbound)"
	}
	badge := au.BgIndex(colorIndex(v.Fill), fmt.Sprintf(" %-10.10s ", title)).Index(231)
	if !v.State.Enabled {
		badge = au.BgIndex(colorIndex(v.Fill), fmt.Sprintf(" %-10.10s ", title)).Gray(10)
	}

	line := fmt.Sprintf("%s%s %-10s %s", marker, badge.String(), v.Value, display.Bar(v.Level, 10))
	if v.ShowSubtitle && v.Subtitle != "" {
		line += " " + colorForString(au, v.Subtitle).String()
	}
	if v.State.String() != "idle" {
		line += " " + au.Gray(12, v.State.String()).String()
	}
	if v.Popover != "" {
		line += " " + au.Gray(12, "["+v.Popover+"]").String()
	}
	if v.Key != "" {
		line += " " + au.Gray(8, "#"+v.Key).String()
	}

	if pad := width - rawStringLen(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

func panelLines(au aurora.Aurora, s Snapshot, width int) []string {
	lines := make([]string, 0, len(s.Views))
	for i, v := range s.Views {
		lines = append(lines, knobLine(au, v, i == s.Focus, width))
	}
	return lines
}

func panelView(g *gocui.Gui, colors bool, snapshots <-chan Snapshot) {
	au := aurora.NewAurora(colors)

	for s := range snapshots {
		s := s
		g.Update(func(g *gocui.Gui) error {
			view, err := g.View(ViewPanel)
			if err != nil {
				return nil
			}
			view.Title = fmt.Sprintf("[Panel: %s]", s.Panel)

			x, y := view.Size()
			lines := panelLines(au, s, x)

			// keep the focused knob visible
			start := 0
			if s.Focus >= y {
				start = s.Focus - y + 1
			}

			view.Clear()
			for i := start; i < len(lines) && i-start < y; i++ {
				view.Write([]byte(lines[i]))
				view.Write([]byte{'\n'})
			}
			return nil
		})
	}
}

type logBuffer struct {
	mutex    sync.Mutex
	messages [][]byte
	next     int
	full     bool
}

func newLogBuffer(size int) *logBuffer {
	if size < 1 {
		size = 1
	}
	return &logBuffer{messages: make([][]byte, size)}
}

func (b *logBuffer) WriteMessage(msg []byte) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.messages[b.next] = msg
	b.next = (b.next + 1) % len(b.messages)
	if b.next == 0 {
		b.full = true
	}
}

// ReadLastMessages returns up to n newest messages, oldest first.
func (b *logBuffer) ReadLastMessages(n int) [][]byte {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	count := b.next
	if b.full {
		count = len(b.messages)
	}
	if n > count {
		n = count
	}
	if n <= 0 {
		return nil
	}

	out := make([][]byte, 0, n)
	for i := n; i > 0; i-- {
		idx := (b.next - i + len(b.messages)) % len(b.messages)
		out = append(out, b.messages[idx])
	}
	return out
}

func logView(g *gocui.Gui, color bool, logLevel, bufSize int, rate time.Duration) {
	feeder, err := NewFeeder(g, ViewLogs, logLevel, aurora.NewAurora(color))
	if err != nil {
		panic(err)
	}

	buf := newLogBuffer(bufSize)

	var mutex sync.Mutex
	var changed = true

	go func() {
		for msg := range logger.Messages {
			buf.WriteMessage(msg)
			mutex.Lock()
			changed = true
			mutex.Unlock()
		}
	}()

	var lastX, lastY int
	for {
		time.Sleep(rate)

		x, y := feeder.view.Size()
		mutex.Lock()
		dirty := changed || x != lastX || y != lastY
		changed = false
		mutex.Unlock()
		lastX, lastY = x, y

		if !dirty {
			continue
		}

		g.Update(func(g *gocui.Gui) error {
			feeder.view.Clear()
			for _, msg := range buf.ReadLastMessages(y) {
				feeder.Write(msg)
			}
			return nil
		})
	}
}

func lcdView(g *gocui.Gui, dd <-chan display.DisplayData) {
	for data := range dd {
		data := data
		g.Update(func(g *gocui.Gui) error {
			view, err := g.View(ViewLCD)
			if err != nil {
				return nil
			}
			view.Clear()
			for _, s := range data.Lines {
				view.Write([]byte(s))
				view.Write([]byte{'\n'})
			}
			return nil
		})
	}
}
