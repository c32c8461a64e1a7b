package param

import (
	"errors"
	"fmt"
	"sync"
)

var ErrDuplicate = errors.New("duplicated parameter identifier")

// Registry keeps parameters in registration order.
type Registry struct {
	params map[Identifier]*Parameter
	order  []Identifier
	mu     sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		params: make(map[Identifier]*Parameter),
	}
}

func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicate, p.id)
		}
		r.params[p.id] = p
		r.order = append(r.order, p.id)
	}
	return nil
}

func (r *Registry) Get(id Identifier) (*Parameter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.params[id]
	return p, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// All returns the parameters in registration order.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}
	return result
}
