package component

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/scopedi/logger"
)

type entry struct {
	c       Component
	started bool
}

// Registry owns a set of components, typically a root injector followed by
// its scopes. Start runs in registration order and stop in reverse, so a
// scope registered after its parent is always disposed first.
type Registry struct {
	mu          sync.RWMutex
	order       []*entry
	byName      map[string]*entry
	log         *logger.Logger
	stopTimeout time.Duration
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *logger.Logger) RegistryOption {
	return func(r *Registry) { r.log = l }
}

// WithStopTimeout bounds each component's Stop call.
func WithStopTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.stopTimeout = d }
}

// NewRegistry returns an empty registry with a 10s stop timeout.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byName:      make(map[string]*entry),
		log:         logger.Get("component"),
		stopTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends c. Names must be unique.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	e := &entry{c: c}
	r.order = append(r.order, e)
	r.byName[name] = e

	r.log.Debug("component registered", logger.Fields("name", name, "position", len(r.order)-1))
	return nil
}

// StartAll starts every component not started yet, in registration order.
// It stops at the first failure; components started before it stay started.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := 0
	for _, e := range r.order {
		if e.started {
			continue
		}
		pending++
		if err := e.c.Start(ctx); err != nil {
			r.log.Error("component start failed", logger.Fields("name", e.c.Name(), logger.FieldError, err.Error()))
			return fmt.Errorf("failed to start %s: %w", e.c.Name(), err)
		}
		e.started = true
		r.log.Debug("component started", logger.Fields("name", e.c.Name()))
	}

	if pending > 0 {
		r.log.Info("components started", logger.Fields("count", pending))
	}
	return nil
}

// StopAll stops started components in reverse registration order. Every
// component gets its Stop call even when an earlier one fails.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, e := range slices.Backward(r.order) {
		if err := r.stop(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", stderrors.Join(errs...))
	}

	r.log.Info("components stopped")
	return nil
}

// Remove stops the named component if it is running and drops it from the
// registry. Removing an unknown name is a no-op.
func (r *Registry) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byName[name]
	if !ok {
		return nil
	}
	delete(r.byName, name)
	r.order = slices.DeleteFunc(r.order, func(x *entry) bool { return x == e })
	return r.stop(ctx, e)
}

func (r *Registry) stop(ctx context.Context, e *entry) error {
	if !e.started {
		return nil
	}
	e.started = false

	stopCtx, cancel := context.WithTimeout(ctx, r.stopTimeout)
	defer cancel()

	name := e.c.Name()
	if err := e.c.Stop(stopCtx); err != nil {
		r.log.Error("component stop failed", logger.Fields("name", name, logger.FieldError, err.Error()))
		return fmt.Errorf("failed to stop %s: %w", name, err)
	}
	r.log.Debug("component stopped", logger.Fields("name", name))
	return nil
}

// HealthAll reports every component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, 0, len(r.order))
	for _, e := range r.order {
		out = append(out, e.c.Health(ctx))
	}
	return out
}

// Get returns the named component, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.byName[name]; ok {
		return e.c
	}
	return nil
}

// Names lists registered component names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, e := range r.order {
		names = append(names, e.c.Name())
	}
	return names
}
