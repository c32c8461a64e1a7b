package knob

import "github.com/gethiox/paralexui/internal/pkg/utils"

// BoolSource is an observable boolean.
type BoolSource interface {
	Value() bool
	Subscribe(fn func(bool)) utils.Subscription
}

// Binding is a BoolSource the knob may also write.
type Binding interface {
	BoolSource
	Set(v bool)
}

// Flag is an in-memory Binding, subscribers run synchronously on Set.
type Flag struct {
	value     bool
	publisher *utils.Publisher[bool]
}

func NewFlag(v bool) *Flag {
	return &Flag{value: v, publisher: utils.NewPublisher[bool]()}
}

func (f *Flag) Value() bool {
	return f.value
}

func (f *Flag) Set(v bool) {
	f.value = v
	f.publisher.Publish(v)
}

func (f *Flag) Toggle() {
	f.Set(!f.value)
}

func (f *Flag) Subscribe(fn func(bool)) utils.Subscription {
	return f.publisher.Subscribe(fn)
}
