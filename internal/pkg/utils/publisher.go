package utils

import (
	"sort"
	"sync"
)

// Publisher delivers values synchronously to every registered callback, in
// subscription order. Publish returns only after all callbacks ran.
type Publisher[T any] struct {
	mutex   sync.Mutex
	nextID  int64
	outputs map[int64]func(T)
}

func NewPublisher[T any]() *Publisher[T] {
	return &Publisher[T]{
		outputs: make(map[int64]func(T)),
	}
}

// Subscribe registers fn and returns a handle for later cancellation.
func (p *Publisher[T]) Subscribe(fn func(T)) Subscription {
	p.mutex.Lock()
	id := p.nextID
	p.nextID++
	p.outputs[id] = fn
	p.mutex.Unlock()

	return Subscription{cancel: func() { p.unsubscribe(id) }}
}

func (p *Publisher[T]) unsubscribe(id int64) {
	p.mutex.Lock()
	delete(p.outputs, id)
	p.mutex.Unlock()
}

// Publish runs callbacks outside the lock, so a callback may cancel itself
// or subscribe others without deadlocking.
func (p *Publisher[T]) Publish(v T) {
	p.mutex.Lock()
	ids := make([]int64, 0, len(p.outputs))
	for id := range p.outputs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, p.outputs[id])
	}
	p.mutex.Unlock()

	for i, fn := range fns {
		// skip callbacks cancelled by an earlier callback of this round
		p.mutex.Lock()
		_, alive := p.outputs[ids[i]]
		p.mutex.Unlock()
		if alive {
			fn(v)
		}
	}
}

// Len returns the number of live subscriptions.
func (p *Publisher[T]) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.outputs)
}

// Subscription is a cancellation handle, the zero value is a no-op.
// Cancel may be called any number of times.
type Subscription struct {
	cancel func()
}

func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}
