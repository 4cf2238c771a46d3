package gtest

import (
	"fmt"
	"sync"
)

// Registry is an append-only collection of descriptors. It is populated while the program
// initializes and frozen when it is handed to a host framework.
type Registry struct {
	mu          sync.RWMutex
	descriptors []*Descriptor
	keys        map[string]int
	frozen      bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by Register and In.
func Default() *Registry {
	return defaultRegistry
}

// Add appends a descriptor. If another descriptor already has the same key, for instance because
// the same declaration ran twice, the new one gets an ordinal suffix so both are kept.
//
// Add returns the descriptor as stored. It panics if the registry is frozen: that means tests
// were declared after the host framework started, which is an initialization-order bug and not
// a test failure.
func (r *Registry) Add(d *Descriptor) *Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("gtest: test %s declared at %s after the registry was frozen", d, d.Location()))
	}
	if r.keys == nil {
		r.keys = make(map[string]int)
	}
	if n := r.keys[d.Key()]; n > 0 {
		r.keys[d.Key()] = n + 1
		d = d.withKey(fmt.Sprintf("%s#%d", d.Key(), n+1))
	} else {
		r.keys[d.Key()] = 1
	}
	r.descriptors = append(r.descriptors, d)
	return d
}

// Freeze makes the registry read-only. Calling it more than once has no further effect.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Enumerate returns the registered descriptors in registration order.
func (r *Registry) Enumerate() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]*Descriptor, len(r.descriptors))
	copy(ret, r.descriptors)
	return ret
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}
