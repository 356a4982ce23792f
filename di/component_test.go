package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/scopedi/component"
	"github.com/kbukum/scopedi/di"
	"github.com/kbukum/scopedi/logger"
)

func TestInjectorStartResolvesEagerKeys(t *testing.T) {
	built := 0
	class := di.NewClass(func() *A { built++; return NewA() })
	inj := isolated(di.NewCollection(di.Provide(class)), di.WithEager(class), di.WithInjectorName("root"))

	assert.Equal(t, "root", inj.Name())
	require.NoError(t, inj.Start(context.Background()))
	assert.Equal(t, 1, built)

	v, err := inj.Get(class)
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestInjectorStartFailure(t *testing.T) {
	missing := di.CreateIdentifier(uniqueName("eager-missing"))
	inj := isolated(nil, di.WithEager(missing))

	err := inj.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, di.ErrUnresolvedDependency))
}

func TestInjectorHealth(t *testing.T) {
	inj := isolated(nil)

	h := inj.Health(context.Background())
	assert.Equal(t, component.StatusHealthy, h.Status)
	assert.Equal(t, inj.Name(), h.Name)

	require.NoError(t, inj.Stop(context.Background()))
	h = inj.Health(context.Background())
	assert.Equal(t, component.StatusUnhealthy, h.Status)
	assert.Equal(t, "disposed", h.Message)
}

func TestRegistryStopsChildrenBeforeParents(t *testing.T) {
	var order []string
	rootKey := di.CreateIdentifier(uniqueName("root-res"))
	childKey := di.CreateIdentifier(uniqueName("child-res"))

	root := isolated(di.NewCollection(di.Bind(rootKey, di.UseValue(&closer{name: "root", order: &order}))),
		di.WithInjectorName("root"), di.WithEager(rootKey))
	child := root.CreateChild(di.NewCollection(di.Bind(childKey, di.UseValue(&closer{name: "child", order: &order}))),
		di.WithInjectorName("child"), di.WithEager(childKey, rootKey))

	reg := component.NewRegistry(component.WithLogger(logger.NewNop()))
	require.NoError(t, reg.Register(root))
	require.NoError(t, reg.Register(child))

	require.NoError(t, reg.StartAll(context.Background()))
	for _, h := range reg.HealthAll(context.Background()) {
		assert.Equal(t, component.StatusHealthy, h.Status, h.Name)
	}

	require.NoError(t, reg.StopAll(context.Background()))
	assert.Equal(t, []string{"child", "root"}, order)
}
