package param

import (
	"sync"
)

// Registry manages plugin parameters
type Registry struct {
	params map[uint32]*Parameter
	byName map[string]*Parameter
	order  []uint32 // Maintain order for indexed access
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		byName: make(map[string]*Parameter),
		order:  make([]uint32, 0),
	}
}

// Add registers new parameters. Parameters whose ID or name is already
// registered are skipped.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		r.addLocked(p)
	}

	return nil
}

func (r *Registry) addLocked(p *Parameter) bool {
	if _, exists := r.params[p.ID]; exists {
		return false
	}
	if _, exists := r.byName[p.Name]; exists {
		return false
	}
	r.params[p.ID] = p
	r.byName[p.Name] = p
	r.order = append(r.order, p.ID)
	return true
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// GetByName retrieves a parameter by its host name
func (r *Registry) GetByName(name string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byName[name]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= int32(len(r.order)) {
		return nil
	}

	id := r.order[index]
	return r.params[id]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int32(len(r.order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}

	return result
}

// ResetAll restores every parameter to its default
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.Reset()
	}
}
