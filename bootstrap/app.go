package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kbukum/scopedi/component"
	"github.com/kbukum/scopedi/di"
	"github.com/kbukum/scopedi/logger"
)

// App hosts a root injector with uniform lifecycle management.
//
// Example:
//
//	app, err := bootstrap.NewApp("my-service", cfg, di.NewCollection(di.Provide(StoreClass)))
//	app.OnReady(func(ctx context.Context) error {
//	    store := di.MustResolve[*Store](app.Injector, StoreClass)
//	    return store.Ping(ctx)
//	})
//	app.Run(context.Background())
type App struct {
	Name       string
	Version    string
	Cfg        *di.Config
	Injector   *di.Injector
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	idleInterval    time.Duration
	mu              sync.Mutex // guards started and the register-then-start of scopes
	started         bool
	hooks           map[phase][]Hook
}

// NewApp creates an application around a root injector owning collection.
// It applies defaults to cfg, validates it and initializes the logger.
func NewApp(name string, cfg *di.Config, collection *di.Collection, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = &di.Config{}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{
		Name:            name,
		Version:         o.version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
		idleInterval:    100 * time.Millisecond,
		hooks:           make(map[phase][]Hook),
	}
	if app.Version == "" {
		app.Version = "dev"
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.idleInterval != nil {
		app.idleInterval = *o.idleInterval
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		app.Logger = logger.New(&cfg.Logging, name)
	}

	injOpts := append([]di.Option{
		di.WithConfig(cfg),
		di.WithLogger(app.Logger.WithComponent("di")),
		di.WithInjectorName(name),
	}, o.injectorOpts...)
	app.Injector = di.New(collection, injOpts...)

	app.Components = component.NewRegistry(component.WithLogger(app.Logger.WithComponent("component")))
	if err := app.Components.Register(app.Injector); err != nil {
		return nil, err
	}
	return app, nil
}

// Scope creates a child of the root injector and registers it so it is
// started with the app and stopped before the root. Scopes created after
// startup are started immediately. Scope is safe to call from any goroutine.
func (a *App) Scope(ctx context.Context, name string, collection *di.Collection, opts ...di.Option) (*di.Injector, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	child := a.Injector.CreateChild(collection, append([]di.Option{di.WithInjectorName(name)}, opts...)...)
	if err := a.Components.Register(child); err != nil {
		return nil, err
	}
	if a.started {
		if err := a.Components.StartAll(ctx); err != nil {
			return nil, err
		}
	}
	return child, nil
}

// CloseScope disposes the named scope ahead of app shutdown and frees its
// name for reuse.
func (a *App) CloseScope(ctx context.Context, name string) error {
	if name == a.Injector.Name() {
		return fmt.Errorf("cannot close root injector %s as a scope", name)
	}
	return a.Components.Remove(ctx, name)
}

// ReadyCheck verifies that all registered injectors are healthy.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if !h.OK() {
			unhealthy = append(unhealthy, h.String())
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run starts the app and drains deferred constructions until ctx is
// canceled or the process receives SIGINT or SIGTERM, then shuts down.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("application ready, waiting for shutdown signal")
	a.Wait(ctx)

	return a.stop()
}

// RunTask starts the app, runs task and shuts down once it returns. A
// shutdown signal cancels the context passed to task. The task error wins
// over shutdown errors.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := signalContext(ctx)
	defer cancel()

	taskErr := task(taskCtx)
	if stopErr := a.stop(); taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Wait blocks until ctx is canceled or a shutdown signal arrives. Every
// idle interval it runs the root injector's pending deferred constructions
// on the calling goroutine.
func (a *App) Wait(ctx context.Context) {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	var tick <-chan time.Time
	if a.idleInterval > 0 {
		ticker := time.NewTicker(a.idleInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("shutdown requested", logger.Fields("cause", context.Cause(ctx).Error()))
			return
		case <-tick:
			if n := a.Injector.RunPending(); n > 0 {
				a.Logger.Debug("ran deferred constructions", logger.Fields("count", n))
			}
		}
	}
}

func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("starting application", logger.Fields("name", a.Name, "version", a.Version))

	a.mu.Lock()
	err := a.Components.StartAll(ctx)
	a.started = err == nil
	a.mu.Unlock()
	if err != nil {
		return fmt.Errorf("start injectors: %w", err)
	}

	if err := a.runHooks(ctx, phaseStart); err != nil {
		return err
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	if err := a.runHooks(ctx, phaseReady); err != nil {
		return err
	}

	a.Logger.Info("application started", logger.DurationFields("startup", time.Since(start)))
	return nil
}

// Shutdown runs the stop hooks and disposes every injector. Use it when
// the caller drives startup through Components directly.
func (a *App) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs the stop hooks, then disposes the injectors children first.
func (a *App) stop() error {
	a.Logger.Info("shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := a.runHooks(ctx, phaseStop); err != nil {
		a.Logger.Error("stop hook error", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}

	a.mu.Lock()
	err := a.Components.StopAll(ctx)
	a.started = false
	a.mu.Unlock()
	if err != nil {
		a.Logger.Error("shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}

	a.Logger.Info("application shutdown complete")
	return shutdownErr
}
