package utils

import (
	"fmt"
	"sync"
)

// DynamicFanOut copies every input value to a changing set of outputs.
// Outputs that fall behind lose their oldest pending value, so a slow
// consumer always ends up with the latest one.
type DynamicFanOut[T any] struct {
	input    <-chan T
	inputCap int

	mutex   sync.Mutex
	closed  bool
	nextID  int64
	outputs map[int64]chan T
	done    chan struct{}
}

func NewDynamicFanOut[T any](input <-chan T) *DynamicFanOut[T] {
	f := DynamicFanOut[T]{
		input:    input,
		inputCap: cap(input),
		outputs:  make(map[int64]chan T),
		done:     make(chan struct{}),
	}
	go f.run()
	return &f
}

func (f *DynamicFanOut[T]) run() {
	for e := range f.input {
		f.mutex.Lock()
		for _, o := range f.outputs {
			send(o, e)
		}
		f.mutex.Unlock()
	}

	f.mutex.Lock()
	f.closed = true
	for id, o := range f.outputs {
		close(o)
		delete(f.outputs, id)
	}
	f.mutex.Unlock()
	close(f.done)
}

func send[T any](o chan T, e T) {
	for {
		select {
		case o <- e:
			return
		default:
		}
		select {
		case <-o:
		default:
		}
	}
}

// Done is closed once the input is drained and every output closed.
func (f *DynamicFanOut[T]) Done() <-chan struct{} {
	return f.done
}

// SpawnOutput creates new output channel and its ID for later despawning.
// Output channel has size of input channel, it will always be buffered with at least size 1.
func (f *DynamicFanOut[T]) SpawnOutput() (int64, <-chan T, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.closed {
		return 0, nil, fmt.Errorf("input channel is closed")
	}

	ocap := f.inputCap
	if ocap == 0 {
		ocap = 1
	}
	id := f.nextID
	f.nextID++
	f.outputs[id] = make(chan T, ocap)
	return id, f.outputs[id], nil
}

// DespawnOutput closes and removes output channel with given ID
func (f *DynamicFanOut[T]) DespawnOutput(id int64) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	c, ok := f.outputs[id]
	if !ok {
		return fmt.Errorf("output id %d not found", id)
	}
	close(c)
	delete(f.outputs, id)

	return nil
}
