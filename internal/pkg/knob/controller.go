package knob

import (
	"github.com/gethiox/paralexui/internal/pkg/logger"
	"github.com/gethiox/paralexui/internal/pkg/param"
	"github.com/gethiox/paralexui/internal/pkg/utils"
	"go.uber.org/zap"
)

type options struct {
	style Style

	onAction func(Event)
	onSelect func(Event)
	onChange func()

	ratio     float64
	sense     float64
	threshold float64
	region    Region

	binding     Binding
	boolSource  BoolSource
	stateSource param.Handle
	stateOn     func(float64) bool

	quiet bool
}

type Option func(o *options)

func WithStyle(s Style) Option {
	return func(o *options) { o.style = s }
}

// WithAction is called with every event the knob handled.
func WithAction(fn func(Event)) Option {
	return func(o *options) { o.onAction = fn }
}

// WithSelection is called for command taps, which never mutate the parameter.
func WithSelection(fn func(Event)) Option {
	return func(o *options) { o.onSelect = fn }
}

// WithChangeHandler is called after the display string or the state changed.
func WithChangeHandler(fn func()) Option {
	return func(o *options) { o.onChange = fn }
}

func WithTuning(pixelToValueRatio, sensitivity, tapThreshold float64) Option {
	return func(o *options) {
		o.ratio = pixelToValueRatio
		o.sense = sensitivity
		o.threshold = tapThreshold
	}
}

func WithRegion(r Region) Option {
	return func(o *options) { o.region = r }
}

// WithBinding makes isOn follow b, taps flip it. Takes precedence over
// every other isOn source.
func WithBinding(b Binding) Option {
	return func(o *options) { o.binding = b }
}

func WithBoolSource(s BoolSource) Option {
	return func(o *options) { o.boolSource = s }
}

// WithStateSource evaluates the isOn condition against p instead of the
// knob's own parameter.
func WithStateSource(p param.Handle) Option {
	return func(o *options) { o.stateSource = p }
}

func WithStateOnCondition(fn func(float64) bool) Option {
	return func(o *options) { o.stateOn = fn }
}

// Quiet disables logging.
func Quiet() Option {
	return func(o *options) { o.quiet = true }
}

func defaultStateOn(v float64) bool {
	return v > 0
}

// base holds what Button and Slider share: state, isOn resolution, tap
// handling and the attach lifecycle.
type base struct {
	options
	kind    string
	param   param.Handle
	state   State
	reducer *Reducer
	display string
	subs    []utils.Subscription
	bound   bool
	log     *zap.Logger

	// render computes the display string of a bound knob
	render func() string
	// drag applies a drag event to the parameter
	drag func(e Event)
}

func newBase(kind string, p param.Handle, opts []Option) base {
	o := options{
		style:     NewStyle(),
		ratio:     DefaultPixelToValueRatio,
		sense:     DefaultSensitivity,
		threshold: DefaultTapThreshold,
		stateOn:   defaultStateOn,
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := NewReducer()
	r.PixelToValueRatio = o.ratio
	r.Sensitivity = o.sense
	r.TapThreshold = o.threshold
	r.Region = o.region

	l := log
	if o.quiet {
		l = logger.Nop()
	}

	b := base{
		options: o,
		kind:    kind,
		param:   p,
		state:   NewState(),
		reducer: r,
		display: Placeholder,
		log:     l,
	}
	return b
}

func (b *base) State() State {
	return b.state
}

func (b *base) SetState(s State) {
	b.state = s
	b.changed()
}

func (b *base) Style() Style {
	return b.style
}

func (b *base) SetStyle(s Style) {
	b.style = s
	if b.attached() {
		b.refreshDisplay()
	}
}

func (b *base) Parameter() param.Handle {
	return b.param
}

func (b *base) Reducer() *Reducer {
	return b.reducer
}

func (b *base) Display() string {
	return b.display
}

func (b *base) attached() bool {
	return b.bound
}

func (b *base) id() string {
	if b.param == nil {
		return ""
	}
	return string(b.param.Identifier())
}

func (b *base) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}

func (b *base) refreshDisplay() {
	if b.param == nil {
		b.display = Placeholder
	} else {
		b.display = b.render()
	}
	b.changed()
}

// resolveOn evaluates isOn using binding, bool source, state source, in
// that order.
func (b *base) resolveOn() bool {
	switch {
	case b.binding != nil:
		return b.binding.Value()
	case b.boolSource != nil:
		return b.boolSource.Value()
	}
	source := b.stateSourceHandle()
	if source == nil {
		return false
	}
	return b.stateOn(source.Value())
}

func (b *base) stateSourceHandle() param.Handle {
	if b.stateSource != nil {
		return b.stateSource
	}
	return b.param
}

func (b *base) refreshOn() {
	on := b.resolveOn()
	if on != b.state.IsOn {
		b.state.IsOn = on
		b.changed()
	}
}

// Attach subscribes to the parameter and to exactly one isOn source, then
// refreshes the display and the state.
func (b *base) Attach() {
	if b.attached() {
		return
	}

	onFollowsParam := b.binding == nil && b.boolSource == nil && b.stateSource == nil

	b.bound = true
	if b.param != nil {
		b.subs = append(b.subs, b.param.Subscribe(func(float64) {
			b.refreshDisplay()
			if onFollowsParam {
				b.refreshOn()
			}
		}))
	}

	switch {
	case b.binding != nil:
		b.subs = append(b.subs, b.binding.Subscribe(func(bool) { b.refreshOn() }))
	case b.boolSource != nil:
		b.subs = append(b.subs, b.boolSource.Subscribe(func(bool) { b.refreshOn() }))
	case b.stateSource != nil:
		b.subs = append(b.subs, b.stateSource.Subscribe(func(float64) { b.refreshOn() }))
	}

	b.state.IsOn = b.resolveOn()
	b.refreshDisplay()
	b.log.Debug("attached", logger.Debug, zap.String("knob", b.kind), zap.String("parameter", b.id()))
}

// Detach cancels every subscription and the gesture in flight.
func (b *base) Detach() {
	for _, s := range b.subs {
		s.Cancel()
	}
	b.subs = nil
	b.bound = false

	before := b.state
	b.reducer.Cancel(&b.state)
	if b.state != before {
		b.changed()
	}
	b.log.Debug("detached", logger.Debug, zap.String("knob", b.kind), zap.String("parameter", b.id()))
}

// HandleSample feeds s to the reducer. Detached knobs ignore samples.
func (b *base) HandleSample(s Sample) {
	if !b.attached() {
		return
	}
	before := b.state
	event, ok := b.reducer.Reduce(s, &b.state)
	if b.state != before {
		b.changed()
	}
	if ok {
		b.handle(event)
	}
}

// HandleEvent applies an event produced outside of the reducer, keyboard
// nudges for example.
func (b *base) HandleEvent(e Event) {
	if !b.attached() || !b.state.Enabled {
		return
	}
	b.handle(e)
}

func (b *base) handle(e Event) {
	switch e.Type {
	case EventTap:
		b.tap(e)
	case EventDrag:
		if b.param != nil && b.drag != nil && e.Value != 0 {
			b.drag(e)
		}
	}
	if b.onAction != nil {
		b.onAction(e)
	}
}

func (b *base) tap(e Event) {
	if e.CommandDown() {
		b.log.Info("selection requested", logger.Action, zap.String("parameter", b.id()))
		if b.onSelect != nil {
			b.onSelect(e)
		}
		return
	}
	if e.ControlDown() {
		// context taps are left to the action callback
		return
	}
	if b.param == nil {
		return
	}

	inv, invoker := b.param.(param.Invoker)
	t, toggler := b.param.(param.Toggler)
	switch {
	case invoker && b.param.Role() == param.RoleCommand:
		inv.Invoke()
	case toggler && t.Boolean():
		t.Toggle()
		b.log.Info("toggled", logger.Action, zap.String("parameter", b.id()), zap.String("value", b.param.FormattedValue()))
	}

	if b.binding != nil {
		b.binding.Set(!b.binding.Value())
	}
}
