package main

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/gethiox/paralexui/internal/pkg/knob"
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/panel"
	"github.com/logrusorgru/aurora"
)

const (
	ViewLogs  = "logs"
	ViewPanel = "panel"
	ViewLCD   = "lcd"
)

// post hands cmd to the host unless the host is already gone.
func post(ctx context.Context, commands chan<- command, cmd command) {
	select {
	case commands <- cmd:
	case <-ctx.Done():
	}
}

type binding struct {
	key  interface{}
	desc string
	cmd  command
}

var bindings = []binding{
	{gocui.KeyArrowLeft, "focus previous knob", func(p *panel.Panel) { p.Prev() }},
	{gocui.KeyArrowRight, "focus next knob", func(p *panel.Panel) { p.Next() }},
	{gocui.KeyTab, "focus next knob", func(p *panel.Panel) { p.Next() }},
	{gocui.KeyArrowUp, "increase value", func(p *panel.Panel) { p.Nudge(1) }},
	{gocui.KeyArrowDown, "decrease value", func(p *panel.Panel) { p.Nudge(-1) }},
	{gocui.KeyPgup, "increase value by 10 steps", func(p *panel.Panel) { p.Nudge(10) }},
	{gocui.KeyPgdn, "decrease value by 10 steps", func(p *panel.Panel) { p.Nudge(-10) }},
	{gocui.KeyEnter, "tap", func(p *panel.Panel) { p.Tap(0) }},
	{gocui.KeySpace, "tap", func(p *panel.Panel) { p.Tap(0) }},
	{'s', "select (command tap)", func(p *panel.Panel) { p.Tap(knob.ModCommand) }},
	{'c', "control tap", func(p *panel.Panel) { p.Tap(knob.ModControl) }},
	{'r', "reset to default", func(p *panel.Panel) { p.Reset() }},
}

func GetCli(ctx context.Context, commands chan<- command) (*gocui.Gui, error) {
	g, err := gocui.NewGui(gocui.Output256, true)
	if err != nil {
		return nil, err
	}

	g.SetManagerFunc(Layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return nil, err
	}
	if err := g.SetKeybinding("", 'q', gocui.ModNone, quit); err != nil {
		return nil, err
	}

	for _, b := range bindings {
		cmd := b.cmd
		err := g.SetKeybinding("", b.key, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
			post(ctx, commands, cmd)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("binding %q failed: %w", b.desc, err)
		}
	}

	return g, nil
}

func Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	panelHeight := maxY / 2
	if panelHeight < 6 {
		panelHeight = 6
	}

	if v, err := g.SetView(ViewPanel, 0, 0, maxX-23, panelHeight, 0); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[Panel]"
		v.Autoscroll = false
		v.Wrap = false
		v.Frame = true
	}

	if v, err := g.SetView(ViewLogs, 0, panelHeight, maxX-1, maxY-1, gocui.TOP); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[Logs]"
		v.Autoscroll = false
		v.Wrap = false
		v.Frame = true
	}

	if v, err := g.SetView(ViewLCD, maxX-22, 0, maxX-1, 5, 0); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[lcd 20x4]"
		v.Autoscroll = false
		v.Wrap = true
		v.Frame = true
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

type TimeNanosecond time.Time

func (j *TimeNanosecond) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*j = TimeNanosecond(time.Unix(0, v))
	return nil
}

func (j TimeNanosecond) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(j))
}

type Entry struct {
	Ts     TimeNanosecond `json:"ts"`
	Caller string         `json:"caller"`
	Msg    string         `json:"msg"`
	Level  int            `json:"level"`

	Panel       string `json:"panel"`
	Config      string `json:"config"`
	Knob        string `json:"knob"`
	Parameter   string `json:"parameter"`
	HandlerName string `json:"handler_name"`
	HandlerPath string `json:"handler_path"`
	OpenRGB     string `json:"openrgb"`
}

func unpack(data []byte) (Entry, error) {
	var v Entry
	err := json.Unmarshal(data, &v)
	return v, err
}

type Feeder struct {
	view     *gocui.View
	au       aurora.Aurora
	logLevel int
}

func NewFeeder(gui *gocui.Gui, viewName string, logLevel int, au aurora.Aurora) (Feeder, error) {
	v, err := gui.View(viewName)
	if err != nil {
		return Feeder{}, err
	}

	return Feeder{view: v, logLevel: logLevel, au: au}, nil
}

func gray(v uint8) aurora.Color {
	if v > 23 {
		v = 23
	}
	return aurora.Color(232+v) << 16
}

func color(r, g, b uint8) aurora.Color {
	return aurora.Color(16+36*r+6*g+b) << 16
}

func terminator(r rune) bool {
	return r >= 0x40 && r <= 0x7e
}

// returns random color for string, will return the same color for the same string
func colorForString(au aurora.Aurora, s string) aurora.Value {
	h := fnv.New32a()
	h.Write([]byte(s))
	sum := h.Sum32()

	r, g, b := uint8(sum)&0b00000111, uint8(sum>>8)&0b00000111, uint8(sum>>16)&0b00000111
	if r > 5 {
		r = 5
	}
	if g > 5 {
		g = 5
	}
	if b > 5 {
		b = 5
	}

	// avoid dark colors
	if r+g+b < 3 {
		r += 1
		g += 1
		b += 1
	}

	return au.Index(16+36*r+6*g+b, s)
}

// rawStringLen returns a len of string ignoring included escape sequences
func rawStringLen(s string) int {
	var sequence bool
	var escLens []int
	var escLen int

	for i, r := range s {
		if !sequence {
			if r == '\033' {
				if i >= len(s)-1 { // esc seems to be last character
					continue
				}
				if s[i+1] == '[' {
					sequence = true
					escLen += 1
					continue
				}
			}
		} else {
			if r == '[' && s[i-1] == '\033' {
				escLen += 1
				continue
			}
			if terminator(r) {
				sequence = false
				escLen += 1
				escLens = append(escLens, escLen)
				escLen = 0
			} else {
				escLen += 1
			}
		}
	}
	var sum int
	for _, x := range escLens {
		sum += x
	}
	return len([]rune(s)) - sum
}

func levelColor(level int) aurora.Color {
	switch level {
	case logger.ErrorLvl:
		return color(5, 1, 1)
	case logger.WarningLvl:
		return color(5, 5, 1)
	case logger.InfoLvl, logger.ActionLvl:
		return gray(18)
	case logger.ValueLvl:
		return gray(15)
	case logger.GestureLvl:
		return gray(13)
	default:
		return gray(9)
	}
}

func prepareString(msg Entry, au aurora.Aurora, width, logLevel int) string {
	if msg.Level > logLevel {
		return ""
	}

	msgColor := levelColor(msg.Level)

	tf := time.Time(msg.Ts).Format("15:04:05.000")

	timestamp := fmt.Sprintf(
		"[%s]",
		au.Reset(tf).Colorize(color(1, 1, 5)).String(),
	)

	var fields []string
	for _, f := range []struct{ name, value string }{
		{"panel", msg.Panel},
		{"config", msg.Config},
		{"knob", msg.Knob},
		{"param", msg.Parameter},
		{"handler", msg.HandlerName},
		{"path", msg.HandlerPath},
		{"openrgb", msg.OpenRGB},
	} {
		if f.value != "" {
			fields = append(fields, fmt.Sprintf("[%s=%s]", f.name, colorForString(au, f.value).String()))
		}
	}
	if logLevel >= logger.DebugLvl && msg.Caller != "" {
		file, line, _ := strings.Cut(msg.Caller, ":")
		fields = append(fields, fmt.Sprintf("(%s:%s)", colorForString(au, file).String(), line))
	}
	joined := strings.Join(fields, " ")

	if width < 0 {
		m := au.Reset(msg.Msg).Colorize(msgColor).String()
		return fmt.Sprintf("%s %s %s", timestamp, m, joined)
	}

	fieldsLen := rawStringLen(joined)
	timeLen := rawStringLen(timestamp)
	msgLen := len([]rune(msg.Msg))

	var m string
	freeSpace := width - (timeLen + 1 + msgLen + 1 + fieldsLen)
	if freeSpace < 0 {
		limit := (width - (fieldsLen + 1 + timeLen + 1)) - 3
		if limit < 20 {
			m = au.Reset(msg.Msg).Colorize(msgColor).String()
			joined = au.Gray(12, "(fields hidden)").String()
			freeSpace = width - (timeLen + 1 + msgLen + 1 + rawStringLen(joined))
			if freeSpace < 0 {
				freeSpace = 0
			}
		} else {
			m = au.Reset(string([]rune(msg.Msg)[:limit]) + "(…)").Colorize(msgColor).String()
			freeSpace = 0
		}
	} else {
		m = au.Reset(msg.Msg).Colorize(msgColor).String()
	}

	return fmt.Sprintf("%s %s%s %s", timestamp, m, strings.Repeat(" ", freeSpace), joined)
}

func (f *Feeder) Write(data []byte) {
	msg, err := unpack(data)
	if err != nil {
		f.view.Write(data)
		f.view.Write([]byte{'\n'})
		return
	}

	x, _ := f.view.Size()

	s := prepareString(msg, f.au, x, f.logLevel)
	if s != "" {
		f.view.Write([]byte(s))
		f.view.Write([]byte{'\n'})
	}
}
