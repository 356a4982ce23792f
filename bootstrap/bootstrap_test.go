package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/scopedi/di"
	"github.com/kbukum/scopedi/logger"
)

type resource struct {
	name   string
	closed *[]string
}

func (r *resource) Close() error {
	*r.closed = append(*r.closed, r.name)
	return nil
}

func newTestApp(t *testing.T, collection *di.Collection, opts ...Option) *App {
	t.Helper()
	base := []Option{
		WithLogger(logger.NewNop()),
		WithInjectorOptions(di.WithSingletons(di.NewSingletonRegistry())),
	}
	app, err := NewApp("test-svc", nil, collection, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t, nil, WithVersion("1.2.3"))

	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %q", app.Version)
	}
	if app.Injector == nil || app.Injector.Name() != "test-svc" {
		t.Error("expected root injector named after the app")
	}
	if app.Cfg.MaxDepth != di.DefaultMaxDepth {
		t.Errorf("expected defaults applied, got max depth %d", app.Cfg.MaxDepth)
	}
	if got := app.Components.Get("test-svc"); got == nil {
		t.Error("expected root injector to be registered as a component")
	}
}

func TestNewAppInvalidConfig(t *testing.T) {
	_, err := NewApp("bad", &di.Config{MaxDepth: 5000}, nil, WithLogger(logger.NewNop()))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "config validation") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRunTaskLifecycle(t *testing.T) {
	var order []string
	var closed []string
	key := di.CreateIdentifier("bootstrap-test-resource")
	app := newTestApp(t, di.NewCollection(di.Bind(key, di.UseValue(&resource{name: "root", closed: &closed}))))

	app.OnStart(func(ctx context.Context) error { order = append(order, "start"); return nil })
	app.OnReady(func(ctx context.Context) error { order = append(order, "ready"); return nil })
	app.OnStop(func(ctx context.Context) error { order = append(order, "stop"); return nil })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		_, err := app.Injector.Resolve(key)
		return err
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := []string{"start", "ready", "task", "stop"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, order)
	}
	if len(closed) != 1 || closed[0] != "root" {
		t.Errorf("expected root resource closed on shutdown, got %v", closed)
	}
}

func TestRunTaskReturnsTaskError(t *testing.T) {
	app := newTestApp(t, nil)
	taskErr := errors.New("task failed")

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return taskErr })
	if !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestStartupFailsOnEagerResolve(t *testing.T) {
	missing := di.CreateIdentifier("bootstrap-test-missing")
	app := newTestApp(t, nil, WithInjectorOptions(di.WithEager(missing)))

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected startup error")
	}
	if !errors.Is(err, di.ErrUnresolvedDependency) {
		t.Errorf("expected unresolved dependency, got %v", err)
	}
}

func TestOnStartHookError(t *testing.T) {
	app := newTestApp(t, nil)
	app.OnStart(func(ctx context.Context) error { return errors.New("boom") })

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Errorf("expected onStart error, got %v", err)
	}
}

func TestScopesStopBeforeRoot(t *testing.T) {
	var closed []string
	rootKey := di.CreateIdentifier("bootstrap-test-root")
	scopeKey := di.CreateIdentifier("bootstrap-test-scope")
	app := newTestApp(t, di.NewCollection(di.Bind(rootKey, di.UseValue(&resource{name: "root", closed: &closed}))))

	_, err := app.Scope(context.Background(), "before", di.NewCollection(
		di.Bind(scopeKey, di.UseValue(&resource{name: "before", closed: &closed}))))
	if err != nil {
		t.Fatalf("Scope failed: %v", err)
	}

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		late, err := app.Scope(ctx, "late", nil)
		if err != nil {
			return err
		}
		if h := late.Health(ctx); h.Name != "late" {
			t.Errorf("expected scope named 'late', got %q", h.Name)
		}
		_, err = late.Resolve(rootKey)
		return err
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	if strings.Join(closed, ",") != "before,root" {
		t.Errorf("expected scope closed before root, got %v", closed)
	}
}

type widget struct{}

func TestRunDrainsIdleQueue(t *testing.T) {
	class := di.NewClass(func() *widget { return &widget{} })
	app := newTestApp(t, di.NewCollection(di.Bind(class, di.UseLazyClass(class, nil))),
		WithIdleInterval(time.Millisecond))

	v, err := app.Injector.Resolve(class)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	handle := v.(*di.Lazy)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for !handle.Constructed() {
		select {
		case <-deadline:
			cancel()
			t.Fatal("expected idle loop to construct the lazy instance")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned error: %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	app := newTestApp(t, nil)
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("expected healthy app, got %v", err)
	}

	if err := app.Injector.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "test-svc=unhealthy(disposed)") {
		t.Errorf("expected unhealthy root, got %v", err)
	}
}

func TestCloseScope(t *testing.T) {
	var closed []string
	key := di.CreateIdentifier("bootstrap-test-request")
	app := newTestApp(t, nil)

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		scope, err := app.Scope(ctx, "request", di.NewCollection(
			di.Bind(key, di.UseValue(&resource{name: "request", closed: &closed}))))
		if err != nil {
			return err
		}
		if err := app.CloseScope(ctx, "request"); err != nil {
			return err
		}
		if _, err := scope.Resolve(key); !errors.Is(err, di.ErrCollectionDisposed) {
			t.Errorf("expected disposed scope, got %v", err)
		}
		if err := app.CloseScope(ctx, "test-svc"); err == nil {
			t.Error("expected closing the root to be rejected")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if len(closed) != 1 || closed[0] != "request" {
		t.Errorf("expected request scope closed once, got %v", closed)
	}
}

func TestScopeFromConcurrentGoroutines(t *testing.T) {
	var closed []string
	key := di.CreateIdentifier("bootstrap-test-concurrent")
	app := newTestApp(t, nil)

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for n := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				name := fmt.Sprintf("worker-%d", n)
				res := &resource{name: name, closed: &closed}
				_, err := app.Scope(ctx, name, di.NewCollection(di.Bind(key, di.UseValue(res))))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				return err
			}
		}
		return app.ReadyCheck(ctx)
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	if got := len(app.Components.Names()); got != 9 {
		t.Errorf("expected root plus 8 scopes, got %d", got)
	}
	if len(closed) != 8 {
		t.Errorf("expected every scope disposed on shutdown, got %v", closed)
	}
}
