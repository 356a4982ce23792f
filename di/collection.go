package di

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/kbukum/scopedi/errors"
	"github.com/kbukum/scopedi/logger"
)

// Collection is an insertion-ordered mapping from Key to Binding owned by
// one injector. After Dispose every operation fails with
// ErrCollectionDisposed.
type Collection struct {
	mu       sync.RWMutex
	keys     []Key
	entries  map[Key]Binding
	handles  map[Key]*Lazy
	disposed bool
}

// NewCollection creates a collection from items. Later items for the same key
// overwrite earlier ones in place. Items that cannot be stored are logged
// and skipped.
func NewCollection(items ...Item) *Collection {
	c := &Collection{
		entries: make(map[Key]Binding, len(items)),
		handles: make(map[Key]*Lazy),
	}
	for _, it := range items {
		if err := c.Add(it.key, it.binding); err != nil {
			logger.Get("di").Warn("skipping dependency item", logger.ErrorFields("collection", err))
		}
	}
	return c
}

// Add inserts or replaces the binding for key. Replacing keeps the key's
// insertion position. A nil binding under a *Class key means
// PendingConstruction.
func (c *Collection) Add(key Key, binding Binding) error {
	if key == nil {
		return errors.InvalidBinding("<nil>", "nil key")
	}
	if binding == nil {
		class, ok := key.(*Class)
		if !ok {
			return errors.InvalidBinding(key.KeyName(), "nil binding")
		}
		binding = PendingConstruction{Class: class}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return errors.CollectionDisposed()
	}
	c.put(key, binding)
	delete(c.handles, key)
	return nil
}

// addLazy stores value, a lazy handle or its proxy, under key and remembers
// the handle so Dispose reaches the instance behind a proxy.
func (c *Collection) addLazy(key Key, value any, handle *Lazy) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return errors.CollectionDisposed()
	}
	c.put(key, ValueBinding{Value: value})
	c.handles[key] = handle
	return nil
}

func (c *Collection) put(key Key, binding Binding) {
	if _, exists := c.entries[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = binding
}

// Has reports whether key is bound in this collection.
func (c *Collection) Has(key Key) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.disposed {
		return false, errors.CollectionDisposed()
	}
	_, ok := c.entries[key]
	return ok, nil
}

// Get returns the binding for key.
func (c *Collection) Get(key Key) (Binding, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.disposed {
		return nil, false, errors.CollectionDisposed()
	}
	b, ok := c.entries[key]
	return b, ok, nil
}

// Keys returns the bound keys in insertion order.
func (c *Collection) Keys() ([]Key, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.disposed {
		return nil, errors.CollectionDisposed()
	}
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out, nil
}

// Disposed reports whether Dispose has been called.
func (c *Collection) Disposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disposed
}

// Dispose marks the collection disposed, then disposes every held value that
// has a disposal capability, in insertion order. For a lazy binding the
// handle is disposed instead of the stored handle or proxy, so the instance
// is released once and only if it was constructed. Failures are joined and
// returned after all values were visited. Calling Dispose again is a no-op.
func (c *Collection) Dispose() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.disposed = true
	type owned struct {
		key   Key
		value any
	}
	values := make([]owned, 0, len(c.keys))
	for _, k := range c.keys {
		if h, ok := c.handles[k]; ok {
			values = append(values, owned{key: k, value: h})
			continue
		}
		if vb, ok := c.entries[k].(ValueBinding); ok && vb.Value != nil {
			values = append(values, owned{key: k, value: vb.Value})
		}
	}
	c.mu.Unlock()

	var errs []error
	for _, o := range values {
		if err := disposeValue(o.value); err != nil {
			errs = append(errs, fmt.Errorf("dispose %s: %w", o.key.KeyName(), err))
		}
	}
	return stderrors.Join(errs...)
}

// disposeValue invokes the disposal capability of v, if any.
func disposeValue(v any) error {
	switch d := v.(type) {
	case interface{ Dispose() error }:
		return d.Dispose()
	case interface{ Dispose() }:
		d.Dispose()
		return nil
	case interface{ Close() error }:
		return d.Close()
	}
	return nil
}
