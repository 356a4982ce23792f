package component

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/scopedi/logger"
)

// recorder collects lifecycle calls across components in one slice.
type recorder struct{ calls []string }

type fakeScope struct {
	name     string
	rec      *recorder
	startErr error
	stopErr  error
	health   Health
	deadline time.Duration
}

func (f *fakeScope) Name() string { return f.name }

func (f *fakeScope) Start(ctx context.Context) error {
	if f.rec != nil {
		f.rec.calls = append(f.rec.calls, "start:"+f.name)
	}
	return f.startErr
}

func (f *fakeScope) Stop(ctx context.Context) error {
	if f.rec != nil {
		f.rec.calls = append(f.rec.calls, "stop:"+f.name)
	}
	if dl, ok := ctx.Deadline(); ok {
		f.deadline = time.Until(dl)
	}
	return f.stopErr
}

func (f *fakeScope) Health(ctx context.Context) Health {
	if f.health.Name == "" {
		return Health{Name: f.name, Status: StatusHealthy}
	}
	return f.health
}

func quietRegistry(opts ...RegistryOption) *Registry {
	return NewRegistry(append([]RegistryOption{WithLogger(logger.NewNop())}, opts...)...)
}

func TestRegisterAndGet(t *testing.T) {
	r := quietRegistry()
	root := &fakeScope{name: "root"}

	require.NoError(t, r.Register(root))
	assert.Error(t, r.Register(&fakeScope{name: "root"}), "duplicate names are rejected")

	assert.Same(t, root, r.Get("root"))
	assert.Nil(t, r.Get("missing"))
	assert.Equal(t, []string{"root"}, r.Names())
}

func TestLifecycleOrder(t *testing.T) {
	r := quietRegistry()
	rec := &recorder{}
	for _, name := range []string{"root", "child", "grandchild"} {
		require.NoError(t, r.Register(&fakeScope{name: name, rec: rec}))
	}

	require.NoError(t, r.StartAll(context.Background()))
	require.NoError(t, r.StartAll(context.Background()), "second start is a no-op")
	require.NoError(t, r.StopAll(context.Background()))
	require.NoError(t, r.StopAll(context.Background()), "second stop is a no-op")

	assert.Equal(t, []string{
		"start:root", "start:child", "start:grandchild",
		"stop:grandchild", "stop:child", "stop:root",
	}, rec.calls)
}

func TestStartAllStopsAtFirstFailure(t *testing.T) {
	r := quietRegistry()
	rec := &recorder{}
	boom := stderrors.New("eager resolve failed")
	require.NoError(t, r.Register(&fakeScope{name: "root", rec: rec}))
	require.NoError(t, r.Register(&fakeScope{name: "child", rec: rec, startErr: boom}))
	require.NoError(t, r.Register(&fakeScope{name: "late", rec: rec}))

	err := r.StartAll(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to start child")

	require.NoError(t, r.StopAll(context.Background()))
	assert.Equal(t, []string{"start:root", "start:child", "stop:root"}, rec.calls)
}

func TestStopAllJoinsErrors(t *testing.T) {
	r := quietRegistry()
	first := stderrors.New("first failed")
	second := stderrors.New("second failed")
	require.NoError(t, r.Register(&fakeScope{name: "a", stopErr: first}))
	require.NoError(t, r.Register(&fakeScope{name: "b", stopErr: second}))
	require.NoError(t, r.StartAll(context.Background()))

	err := r.StopAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Contains(t, err.Error(), "shutdown errors")
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := quietRegistry()
	rec := &recorder{}
	require.NoError(t, r.Register(&fakeScope{name: "root", rec: rec}))

	require.NoError(t, r.StopAll(context.Background()))
	assert.Empty(t, rec.calls)
}

func TestRemove(t *testing.T) {
	r := quietRegistry()
	rec := &recorder{}
	require.NoError(t, r.Register(&fakeScope{name: "root", rec: rec}))
	require.NoError(t, r.Register(&fakeScope{name: "request", rec: rec}))
	require.NoError(t, r.StartAll(context.Background()))

	require.NoError(t, r.Remove(context.Background(), "request"))
	require.NoError(t, r.Remove(context.Background(), "unknown"))
	assert.Equal(t, []string{"root"}, r.Names())
	assert.Nil(t, r.Get("request"))

	require.NoError(t, r.Register(&fakeScope{name: "request", rec: rec}), "name is free again")
	require.NoError(t, r.StopAll(context.Background()))
	assert.Equal(t, []string{"start:root", "start:request", "stop:request", "stop:root"}, rec.calls)
}

func TestWithStopTimeout(t *testing.T) {
	r := quietRegistry(WithStopTimeout(50 * time.Millisecond))
	c := &fakeScope{name: "child"}
	require.NoError(t, r.Register(c))
	require.NoError(t, r.StartAll(context.Background()))
	require.NoError(t, r.StopAll(context.Background()))

	assert.Greater(t, c.deadline, time.Duration(0))
	assert.LessOrEqual(t, c.deadline, 50*time.Millisecond)
}

func TestHealthAll(t *testing.T) {
	r := quietRegistry()
	require.NoError(t, r.Register(&fakeScope{name: "root"}))
	require.NoError(t, r.Register(&fakeScope{
		name:   "child",
		health: Health{Name: "child", Status: StatusUnhealthy, Message: "disposed"},
	}))

	results := r.HealthAll(context.Background())
	require.Len(t, results, 2)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.Equal(t, "root=healthy", results[0].String())
	assert.Equal(t, "child=unhealthy(disposed)", results[1].String())
}
