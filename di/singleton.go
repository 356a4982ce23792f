package di

import (
	"sync"

	"github.com/kbukum/scopedi/errors"
	"github.com/kbukum/scopedi/logger"
)

// SingletonRegistry collects class bindings merged into every root injector
// created with it. Drain may be called any number of times and returns the
// same current set each time.
type SingletonRegistry struct {
	mu      sync.Mutex
	entries []Item
}

// NewSingletonRegistry creates an empty registry.
func NewSingletonRegistry() *SingletonRegistry {
	return &SingletonRegistry{}
}

var defaultSingletons = NewSingletonRegistry()

// DefaultSingletons returns the process-wide registry used by root injectors
// unless WithSingletons overrides it.
func DefaultSingletons() *SingletonRegistry { return defaultSingletons }

// Register binds key to class, constructed lazily when lazy is set.
func (r *SingletonRegistry) Register(key Key, class *Class, lazy bool) {
	r.RegisterBinding(key, ClassBinding{Class: class, Lazy: lazy})
}

// RegisterBinding upserts key. An entry for the same key, or for an
// identifier of the same name, is replaced in place with a warning. A nil
// key is rejected with a warning.
func (r *SingletonRegistry) RegisterBinding(key Key, binding ClassBinding) {
	if key == nil {
		logger.Get("di").Warn("singleton rejected", logger.ErrorFields("register",
			errors.InvalidBinding("<nil>", "nil key")))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item := Item{key: key, binding: binding}
	for i, e := range r.entries {
		if sameSingletonKey(e.key, key) {
			logger.Get("di").Warn("singleton registered more than once, replacing",
				logger.Fields(logger.FieldKey, key.KeyName()))
			r.entries[i] = item
			return
		}
	}
	r.entries = append(r.entries, item)
}

// sameSingletonKey compares keys by identity. Identifiers also match by
// name; classes never do, since unrelated classes may share a display name.
func sameSingletonKey(a, b Key) bool {
	if a == b {
		return true
	}
	ia, okA := a.(*Identifier)
	ib, okB := b.(*Identifier)
	return okA && okB && ia.KeyName() == ib.KeyName()
}

// Drain returns a copy of the registered pairs in registration order.
func (r *SingletonRegistry) Drain() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Item, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered pairs.
func (r *SingletonRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// RegisterSingleton registers key in the default registry.
func RegisterSingleton(key Key, class *Class, lazy bool) {
	defaultSingletons.Register(key, class, lazy)
}

// RegisterSingletonBinding registers key with a full class binding in the
// default registry.
func RegisterSingletonBinding(key Key, binding ClassBinding) {
	defaultSingletons.RegisterBinding(key, binding)
}

// DrainSingletons returns the pairs of the default registry.
func DrainSingletons() []Item {
	return defaultSingletons.Drain()
}
