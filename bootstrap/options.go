package bootstrap

import (
	"time"

	"github.com/kbukum/scopedi/di"
	"github.com/kbukum/scopedi/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	idleInterval    *time.Duration
	version         string
	injectorOpts    []di.Option
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. If not set, the logger is built from the
// Logging section of the resolver config.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = &d }
}

// WithIdleInterval sets how often Run drains deferred lazy constructions.
// Zero disables the idle loop.
func WithIdleInterval(d time.Duration) Option {
	return func(o *appOptions) { o.idleInterval = &d }
}

// WithVersion sets the version reported in logs.
func WithVersion(v string) Option {
	return func(o *appOptions) { o.version = v }
}

// WithInjectorOptions passes options to the root injector.
func WithInjectorOptions(opts ...di.Option) Option {
	return func(o *appOptions) { o.injectorOpts = append(o.injectorOpts, opts...) }
}
