package di

import "github.com/kbukum/scopedi/logger"

// DefaultMaxDepth is the default limit of nested constructions per resolution.
const DefaultMaxDepth = 10

type options struct {
	name       string
	parent     *Injector
	metadata   *Metadata
	singletons *SingletonRegistry
	scheduler  Scheduler
	observer   Observer
	log        *logger.Logger
	maxDepth   int
	eager      []Key
}

// Option configures an Injector.
type Option func(*options)

// WithInjectorName sets the injector name reported by Name and in logs.
func WithInjectorName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithParent makes the injector a child of parent. Child injectors do not
// merge singletons.
func WithParent(parent *Injector) Option {
	return func(o *options) { o.parent = parent }
}

// WithMetadata sets the registry requirements are read from.
func WithMetadata(m *Metadata) Option {
	return func(o *options) { o.metadata = m }
}

// WithSingletons sets the registry a root injector merges on construction.
func WithSingletons(r *SingletonRegistry) Option {
	return func(o *options) { o.singletons = r }
}

// WithScheduler sets the scheduler for deferred lazy construction.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithObserver sets the construction observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the logger for resolver warnings.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMaxDepth sets the nested construction limit.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithConfig applies a loaded Config.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg.MaxDepth > 0 {
			o.maxDepth = cfg.MaxDepth
		}
		o.log = logger.New(&cfg.Logging, "di")
	}
}

// WithEager lists keys resolved when the injector starts as a component.
func WithEager(keys ...Key) Option {
	return func(o *options) { o.eager = append(o.eager, keys...) }
}

func (o *options) applyDefaults() {
	if o.metadata == nil {
		o.metadata = DefaultMetadata()
	}
	if o.singletons == nil {
		o.singletons = DefaultSingletons()
	}
	if o.scheduler == nil {
		o.scheduler = NewIdleQueue()
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	if o.log == nil {
		o.log = logger.Get("di")
	}
	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}
}
