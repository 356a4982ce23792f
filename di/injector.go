package di

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/scopedi/component"
	"github.com/kbukum/scopedi/errors"
	"github.com/kbukum/scopedi/logger"
)

// Injector resolves keys against its own collection and, failing that, its
// parent chain. It implements component.Component.
//
// An Injector follows a single-threaded call model: concurrent resolution
// on one injector tree needs external serialization.
type Injector struct {
	id         string
	parent     *Injector
	collection *Collection
	opts       options
	log        *logger.Logger
	disposed   atomic.Bool
}

var _ component.Component = (*Injector)(nil)

// New creates an injector owning collection (a fresh one when nil). Without
// WithParent it is a root injector and merges every singleton whose key the
// collection does not already bind.
func New(collection *Collection, opts ...Option) *Injector {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return newInjector(collection, o)
}

func newInjector(collection *Collection, o options) *Injector {
	o.applyDefaults()
	if collection == nil {
		collection = NewCollection()
	}

	inj := &Injector{
		id:         uuid.NewString(),
		parent:     o.parent,
		collection: collection,
		opts:       o,
	}
	if inj.opts.name == "" {
		inj.opts.name = "injector-" + inj.id[:8]
	}
	inj.log = o.log.WithFields(logger.Fields(logger.FieldInjector, inj.opts.name))

	if inj.parent == nil {
		inj.mergeSingletons()
	}
	return inj
}

func (i *Injector) mergeSingletons() {
	for _, it := range i.opts.singletons.Drain() {
		has, err := i.collection.Has(it.key)
		if err != nil {
			i.log.Warn("cannot merge singletons", logger.ErrorFields("merge", err))
			return
		}
		if has {
			continue
		}
		if err := i.collection.Add(it.key, it.binding); err != nil {
			i.log.Warn("cannot merge singleton", logger.ErrorFields("merge", err))
		}
	}
}

// CreateChild creates an injector whose parent is i. The child inherits i's
// metadata, scheduler, observer, logger and depth limit unless opts override
// them.
func (i *Injector) CreateChild(collection *Collection, opts ...Option) *Injector {
	o := i.opts
	o.name = ""
	o.eager = nil
	for _, opt := range opts {
		opt(&o)
	}
	o.parent = i
	return newInjector(collection, o)
}

// ID returns the unique injector id.
func (i *Injector) ID() string { return i.id }

// Name returns the injector name.
func (i *Injector) Name() string { return i.opts.name }

// Parent returns the parent injector, or nil for a root.
func (i *Injector) Parent() *Injector { return i.parent }

// Collection returns the collection owned by i.
func (i *Injector) Collection() *Collection { return i.collection }

// Add binds key in i's own collection.
func (i *Injector) Add(key Key, binding Binding) error {
	return i.collection.Add(key, binding)
}

// Resolve returns the instance for key, constructing and caching it when
// needed. It fails with ErrUnresolvedDependency when no injector in the
// chain binds key.
func (i *Injector) Resolve(key Key) (any, error) {
	return i.resolve(key, false, 0)
}

// ResolveOptional is like Resolve but returns nil without error when key is
// not bound anywhere.
func (i *Injector) ResolveOptional(key Key) (any, error) {
	return i.resolve(key, true, 0)
}

// Get returns the materialized instance for key without constructing
// anything. Pending, class and factory bindings yield nil.
func (i *Injector) Get(key Key) (any, error) {
	binding, _, err := i.lookup(key)
	if err != nil || binding == nil {
		return nil, err
	}
	if vb, ok := binding.(ValueBinding); ok {
		return vb.Value, nil
	}
	return nil, nil
}

// CreateInstance constructs class with extra as its leading non-injected
// arguments. The result is not cached.
func (i *Injector) CreateInstance(class *Class, extra ...any) (any, error) {
	if class == nil {
		return nil, errors.InvalidConstructor("<nil>", "nil class")
	}
	return i.construct(class, class, extra, 0)
}

// RunPending drains the scheduler when it is an IdleQueue and returns the
// number of tasks run.
func (i *Injector) RunPending() int {
	if q, ok := i.opts.scheduler.(interface{ RunPending() int }); ok {
		return q.RunPending()
	}
	return 0
}

// Dispose disposes the collection owned by i. Parents and children are not
// affected.
func (i *Injector) Dispose() error {
	i.disposed.Store(true)
	return i.collection.Dispose()
}

// Start resolves the keys listed with WithEager.
func (i *Injector) Start(ctx context.Context) error {
	for _, key := range i.opts.eager {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := i.Resolve(key); err != nil {
			return fmt.Errorf("eager resolve %s: %w", key.KeyName(), err)
		}
	}
	i.log.Debug("injector started", logger.Fields("eager", len(i.opts.eager)))
	return nil
}

// Stop disposes the injector.
func (i *Injector) Stop(ctx context.Context) error {
	return i.Dispose()
}

// Health reports unhealthy once the injector is disposed.
func (i *Injector) Health(ctx context.Context) component.Health {
	if i.disposed.Load() || i.collection.Disposed() {
		return component.Health{Name: i.Name(), Status: component.StatusUnhealthy, Message: "disposed"}
	}
	return component.Health{Name: i.Name(), Status: component.StatusHealthy}
}

// lookup finds the binding for key in i or its ancestors, returning the
// injector whose collection holds it.
func (i *Injector) lookup(key Key) (Binding, *Injector, error) {
	if key == nil {
		return nil, nil, errors.InvalidBinding("<nil>", "nil key")
	}
	for inj := i; inj != nil; inj = inj.parent {
		b, ok, err := inj.collection.Get(key)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			return b, inj, nil
		}
	}
	return nil, nil, nil
}

func (i *Injector) resolve(key Key, optional bool, depth int) (any, error) {
	binding, owner, err := i.lookup(key)
	if err != nil {
		return nil, err
	}
	if binding == nil {
		if optional {
			return nil, nil
		}
		return nil, errors.Unresolved(key.KeyName())
	}

	switch b := binding.(type) {
	case ValueBinding:
		return b.Value, nil
	case PendingConstruction:
		return i.createAndCache(key, ClassBinding{Class: b.Class}, owner, depth)
	case ClassBinding:
		return i.createAndCache(key, b, owner, depth)
	case FactoryBinding:
		return i.invokeFactory(key, b, depth)
	default:
		return nil, errors.InvalidBinding(key.KeyName(), fmt.Sprintf("unsupported binding %T", binding))
	}
}

// createAndCache constructs b and stores the result in the collection of
// owner, the injector that held the binding. A lazy handle is bound to owner
// so it outlives the injector that first resolved it.
func (i *Injector) createAndCache(key Key, b ClassBinding, owner *Injector, depth int) (any, error) {
	if b.Class == nil {
		return nil, errors.InvalidBinding(key.KeyName(), "class binding without class")
	}

	if b.Lazy {
		handle := owner.newLazyHandle(key, b.Class)
		var value any = handle
		if b.Proxy != nil {
			value = b.Proxy(handle)
		}
		if err := owner.collection.addLazy(key, value, handle); err != nil {
			return nil, err
		}
		i.opts.scheduler.Schedule(func() {
			if _, err := handle.Value(); err != nil {
				i.log.Warn("deferred construction failed", logger.Fields(
					logger.FieldKey, key.KeyName(), logger.FieldError, err.Error()))
			}
		})
		return value, nil
	}

	v, err := i.construct(key, b.Class, nil, depth)
	if err != nil {
		return nil, err
	}
	if err := owner.collection.Add(key, ValueBinding{Value: v}); err != nil {
		return nil, err
	}
	return v, nil
}

func (i *Injector) newLazyHandle(key Key, class *Class) *Lazy {
	return newLazy(key, i.opts.maxDepth, func() (any, error) {
		return i.construct(key, class, nil, 0)
	})
}

// construct enters one nesting level and builds class.
func (i *Injector) construct(key Key, class *Class, extra []any, depth int) (any, error) {
	depth++
	if depth > i.opts.maxDepth {
		return nil, errors.CircularDependency(key.KeyName(), i.opts.maxDepth)
	}

	start := time.Now()
	v, err := i.createInstance(class, extra, depth)
	i.observe(key, KindClass, depth, start, err)
	return v, err
}

// invokeFactory resolves the factory deps with optional semantics, calls it
// and caches the result in i's own collection.
func (i *Injector) invokeFactory(key Key, b FactoryBinding, depth int) (any, error) {
	if b.Factory == nil {
		return nil, errors.InvalidBinding(key.KeyName(), "factory binding without factory")
	}
	depth++
	if depth > i.opts.maxDepth {
		return nil, errors.CircularDependency(key.KeyName(), i.opts.maxDepth)
	}

	start := time.Now()
	v, err := i.callFactory(key, b, depth)
	i.observe(key, KindFactory, depth, start, err)
	if err != nil {
		return nil, err
	}
	if err := i.collection.Add(key, ValueBinding{Value: v}); err != nil {
		return nil, err
	}
	return v, nil
}

func (i *Injector) callFactory(key Key, b FactoryBinding, depth int) (any, error) {
	deps := make([]any, len(b.Deps))
	for n, dep := range b.Deps {
		v, err := i.resolve(dep, true, depth)
		if err != nil {
			return nil, err
		}
		deps[n] = v
	}
	v, err := b.Factory(deps)
	if err != nil {
		return nil, errors.ConstructionFailed(key.KeyName(), err)
	}
	return v, nil
}

func (i *Injector) observe(key Key, kind BindingKind, depth int, start time.Time, err error) {
	i.opts.observer.ObserveConstruct(ConstructEvent{
		InjectorID: i.id,
		Key:        key,
		Kind:       kind,
		Depth:      depth,
		Start:      start,
		Duration:   time.Since(start),
		Err:        err,
	})
}
