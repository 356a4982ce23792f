package di

import (
	"fmt"
	"sync"

	"github.com/kbukum/scopedi/errors"
)

type lazyState int

const (
	lazyIdle lazyState = iota
	lazyBuilding
	lazyDone
)

// Lazy is a handle to an instance constructed on first use. The outcome of
// the first construction, error included, is memoized.
//
// Proxies built by ClassBinding.Proxy forward to the instance returned by
// Value or MustValue.
type Lazy struct {
	key   Key
	limit int
	build func() (any, error)

	mu    sync.Mutex
	state lazyState
	value any
	err   error
}

func newLazy(key Key, limit int, build func() (any, error)) *Lazy {
	return &Lazy{key: key, limit: limit, build: build}
}

// Key returns the key the handle was resolved for.
func (l *Lazy) Key() Key { return l.key }

// Constructed reports whether construction has finished, successfully or not.
func (l *Lazy) Constructed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == lazyDone
}

// Value constructs the instance on the first call and returns the memoized
// result afterwards. Forcing the handle from inside its own construction
// fails with ErrCircularDependency.
func (l *Lazy) Value() (any, error) {
	l.mu.Lock()
	switch l.state {
	case lazyDone:
		v, err := l.value, l.err
		l.mu.Unlock()
		return v, err
	case lazyBuilding:
		l.mu.Unlock()
		return nil, errors.CircularDependency(l.key.KeyName(), l.limit)
	}
	l.state = lazyBuilding
	l.mu.Unlock()

	v, err := l.build()

	l.mu.Lock()
	l.value, l.err, l.state = v, err, lazyDone
	l.mu.Unlock()
	return v, err
}

// MustValue is like Value but panics on error.
func (l *Lazy) MustValue() any {
	v, err := l.Value()
	if err != nil {
		panic(fmt.Sprintf("di: lazy %s: %v", l.key.KeyName(), err))
	}
	return v
}

// Dispose disposes the instance if it was constructed. An unconstructed
// handle stays unconstructed.
func (l *Lazy) Dispose() error {
	l.mu.Lock()
	done, v, err := l.state == lazyDone, l.value, l.err
	l.mu.Unlock()
	if !done || err != nil || v == nil {
		return nil
	}
	return disposeValue(v)
}
