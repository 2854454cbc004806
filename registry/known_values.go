package registry

import "sync"

// KnownValueRegistry maps between known-value ids and their assigned
// names, mirroring TagRegistry's shape for the parallel namespace.
type KnownValueRegistry struct {
	mu     sync.RWMutex
	byName map[string]uint64
	byID   map[uint64]string
}

// NewKnownValueRegistry returns an empty known-value registry.
func NewKnownValueRegistry() *KnownValueRegistry {
	return &KnownValueRegistry{
		byName: make(map[string]uint64),
		byID:   make(map[uint64]string),
	}
}

// Register assigns name to id, overwriting any prior assignment for
// either key.
func (r *KnownValueRegistry) Register(name string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byName[name]; ok {
		delete(r.byID, old)
	}
	if old, ok := r.byID[id]; ok {
		delete(r.byName, old)
	}
	r.byName[name] = id
	r.byID[id] = name
}

// KnownValueForName returns the id assigned to name, if any.
func (r *KnownValueRegistry) KnownValueForName(name string) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	return id, ok
}

// NameForKnownValue returns the name assigned to id, if any.
func (r *KnownValueRegistry) NameForKnownValue(id uint64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byID[id]
	return n, ok
}

// DefaultKnownValues returns a registry preloaded with a handful of
// commonly-used known values, enough for fixtures and tests to name
// predicates without spelling out raw ids.
func DefaultKnownValues() *KnownValueRegistry {
	r := NewKnownValueRegistry()
	r.Register("isA", 1)
	r.Register("id", 2)
	r.Register("verifiedBy", 3)
	r.Register("note", 4)
	r.Register("signed", 5)
	r.Register("hasRecipient", 6)
	r.Register("sskrShare", 7)
	r.Register("controller", 8)
	return r
}
