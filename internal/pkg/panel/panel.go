// Package panel composes knobs bound to a set of parameters and keeps the
// focus and selection of the host.
package panel

import (
	"fmt"

	"github.com/gethiox/paralexui/internal/pkg/knob"
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/panel/config"
	"github.com/gethiox/paralexui/internal/pkg/param"
	"github.com/gethiox/paralexui/internal/pkg/utils"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Options tune every knob of a panel.
type Options struct {
	PixelToValueRatio float64
	Sensitivity       float64
	TapThreshold      float64
	Quiet             bool
}

func DefaultOptions() Options {
	return Options{
		PixelToValueRatio: knob.DefaultPixelToValueRatio,
		Sensitivity:       knob.DefaultSensitivity,
		TapThreshold:      knob.DefaultTapThreshold,
	}
}

// View is a render snapshot of one knob.
type View struct {
	Title        string
	Subtitle     string
	Value        string
	// Key is the parameter slug, empty for unbound knobs.
	Key          string
	// Level is the parameter value mapped to 0..1, 0 for unbound knobs.
	Level        float64
	ShowSubtitle bool
	Popover      string
	State        knob.State
	Color        colorful.Color
	Fill         colorful.Color
}

type Panel struct {
	name     string
	registry *param.Registry
	knobs    []knob.Controller
	focus    int
	changes  *utils.Publisher[int]
	log      *zap.Logger
}

// New builds a panel from its definition. Knobs are not attached yet.
func New(cfg config.Panel, opts Options) (*Panel, error) {
	p := &Panel{
		name:     cfg.Name,
		registry: param.NewRegistry(),
		changes:  utils.NewPublisher[int](),
		log:      log,
	}
	if opts.Quiet {
		p.log = logger.Nop()
	}

	for _, pc := range cfg.Parameters {
		popts := []param.Option{
			param.WithName(pc.Name),
			param.WithSymbol(pc.Symbol, pc.SymbolName),
			param.WithRole(pc.Role),
			param.WithAdapter(pc.Adapter),
			param.WithDefault(pc.Default),
		}
		if pc.Bipolar {
			popts = append(popts, param.Bipolar())
		}
		if pc.Kind == config.KindBool {
			popts = append(popts, param.Boolean())
		}
		if pc.Role == param.RoleCommand {
			id := pc.ID
			popts = append(popts, param.WithAction(func() {
				p.log.Info(fmt.Sprintf("command %s triggered", id), logger.Action)
			}))
		}

		err := p.registry.Add(param.New(pc.ID, popts...))
		if err != nil {
			return nil, fmt.Errorf("[%s] %w", cfg.Name, err)
		}
	}

	for i, kc := range cfg.Knobs {
		k, err := p.buildKnob(i, kc, opts)
		if err != nil {
			return nil, fmt.Errorf("[%s] knob %d: %w", cfg.Name, i, err)
		}
		p.knobs = append(p.knobs, k)
	}

	return p, nil
}

func (p *Panel) lookup(id param.Identifier) (param.Handle, error) {
	if id == "" {
		return nil, nil
	}
	prm, ok := p.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown parameter: %s", id)
	}
	return prm, nil
}

func (p *Panel) buildKnob(index int, kc config.Knob, opts Options) (knob.Controller, error) {
	prm, err := p.lookup(kc.Parameter)
	if err != nil {
		return nil, err
	}

	style := knob.NewStyle()
	style.Color = kc.Color
	style.TitleOverride = kc.Title
	style.SubtitleOverride = kc.Subtitle
	style.ShowSubtitle = kc.ShowSubtitle
	style.ShowIcon = kc.ShowIcon
	style.PopoverID = kc.Popover
	if pp, ok := prm.(*param.Parameter); ok {
		style.Adapter = pp.Adapter()
	}

	kopts := []knob.Option{
		knob.WithStyle(style),
		knob.WithTuning(opts.PixelToValueRatio, opts.Sensitivity, opts.TapThreshold),
		knob.WithChangeHandler(func() { p.changes.Publish(index) }),
		knob.WithSelection(func(knob.Event) { p.Select(index) }),
	}
	if opts.Quiet {
		kopts = append(kopts, knob.Quiet())
	}
	if kc.StateSource != "" {
		source, err := p.lookup(kc.StateSource)
		if err != nil {
			return nil, err
		}
		kopts = append(kopts, knob.WithStateSource(source))
	}
	if kc.OnThreshold != nil {
		threshold := *kc.OnThreshold
		kopts = append(kopts, knob.WithStateOnCondition(func(v float64) bool { return v > threshold }))
	}

	var k knob.Controller
	switch kc.Type {
	case config.KnobButton:
		k = knob.NewButton(prm, kopts...)
	default:
		k = knob.NewSlider(prm, kopts...)
	}

	if !kc.Enabled {
		state := k.State()
		state.Enabled = false
		k.SetState(state)
	}
	return k, nil
}

func (p *Panel) Name() string {
	return p.name
}

func (p *Panel) Parameters() *param.Registry {
	return p.registry
}

func (p *Panel) Knobs() []knob.Controller {
	return p.knobs
}

func (p *Panel) Len() int {
	return len(p.knobs)
}

// OnChange registers fn, called with the index of a knob whose display or
// state changed.
func (p *Panel) OnChange(fn func(index int)) utils.Subscription {
	return p.changes.Subscribe(fn)
}

func (p *Panel) Attach() {
	for _, k := range p.knobs {
		k.Attach()
	}
	p.log.Info(fmt.Sprintf("panel %s attached (%d knobs)", p.name, len(p.knobs)), logger.Info)
}

func (p *Panel) Detach() {
	for _, k := range p.knobs {
		k.Detach()
	}
	p.log.Info(fmt.Sprintf("panel %s detached", p.name), logger.Info)
}

func (p *Panel) Focused() int {
	return p.focus
}

// FocusedKnob returns nil for an empty panel.
func (p *Panel) FocusedKnob() knob.Controller {
	if len(p.knobs) == 0 {
		return nil
	}
	return p.knobs[p.focus]
}

// Focus moves the focus to index i, cancelling a gesture in flight on the
// previously focused knob.
func (p *Panel) Focus(i int) {
	if len(p.knobs) == 0 || i < 0 || i >= len(p.knobs) || i == p.focus {
		return
	}
	prev := p.knobs[p.focus]
	state := prev.State()
	prev.Reducer().Cancel(&state)
	prev.SetState(state)

	p.focus = i
	p.changes.Publish(i)
}

func (p *Panel) Next() {
	if len(p.knobs) == 0 {
		return
	}
	p.Focus((p.focus + 1) % len(p.knobs))
}

func (p *Panel) Prev() {
	if len(p.knobs) == 0 {
		return
	}
	p.Focus((p.focus - 1 + len(p.knobs)) % len(p.knobs))
}

// Select makes knob i the only selected knob, selecting it again clears
// the selection.
func (p *Panel) Select(i int) {
	for j, k := range p.knobs {
		state := k.State()
		selected := j == i && !state.Selected
		if state.Selected != selected {
			state.Selected = selected
			k.SetState(state)
		}
	}
	p.log.Info(fmt.Sprintf("knob %d selection toggled", i), logger.Action)
}

// Selected returns the index of the selected knob, -1 if none.
func (p *Panel) Selected() int {
	for i, k := range p.knobs {
		if k.State().Selected {
			return i
		}
	}
	return -1
}

// HandleSample routes a pointer sample to the focused knob.
func (p *Panel) HandleSample(s knob.Sample) {
	if k := p.FocusedKnob(); k != nil {
		k.HandleSample(s)
	}
}

// Nudge changes the focused knob by the given number of adapter steps.
func (p *Panel) Nudge(steps int) {
	k := p.FocusedKnob()
	if k == nil || steps == 0 {
		return
	}
	step := 0.01
	if a := k.Style().Adapter; a != nil {
		step = a.Step()
	}
	k.HandleEvent(knob.Event{Type: knob.EventDrag, Phase: knob.PhaseChanged, Value: float64(steps) * step})
}

// Tap sends a synthesized tap to the focused knob.
func (p *Panel) Tap(mods knob.Modifiers) {
	if k := p.FocusedKnob(); k != nil {
		k.HandleEvent(knob.Event{Type: knob.EventTap, Phase: knob.PhaseEnded, Modifiers: mods})
	}
}

// Reset restores the default value of the focused knob parameter.
func (p *Panel) Reset() {
	k := p.FocusedKnob()
	if k == nil || !k.State().Enabled {
		return
	}
	prm, ok := k.Parameter().(*param.Parameter)
	if !ok {
		return
	}
	prm.Reset()
	p.log.Info("parameter reset", logger.Action, zap.String("parameter", string(prm.Identifier())))
}

// Views snapshots every knob in panel order.
func (p *Panel) Views() []View {
	views := make([]View, len(p.knobs))
	for i, k := range p.knobs {
		style := k.Style()
		views[i] = View{
			Title:        knob.Title(style, k.Parameter()),
			Subtitle:     knob.Subtitle(style, k.Parameter()),
			Value:        k.Display(),
			Key:          keyOf(k.Parameter()),
			Level:        levelOf(k.Parameter()),
			ShowSubtitle: style.ShowSubtitle,
			Popover:      style.PopoverID,
			State:        k.State(),
			Color:        knob.Color(k),
			Fill:         knob.Fill(k),
		}
	}
	return views
}

func keyOf(h param.Handle) string {
	if h == nil {
		return ""
	}
	return h.Identifier().Slug()
}

func levelOf(h param.Handle) float64 {
	if h == nil {
		return 0
	}
	v := h.Value()
	if b, ok := h.(interface{ Bipolar() bool }); ok && b.Bipolar() {
		return (v + 1) / 2
	}
	return v
}
