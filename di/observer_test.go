package di_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/scopedi/di"
)

func TestObserverReceivesConstructEvents(t *testing.T) {
	var events []di.ConstructEvent
	obs := di.ObserverFunc(func(ev di.ConstructEvent) { events = append(events, ev) })

	classA := di.NewClass(NewA, di.WithName("A"))
	classB := di.NewClass(NewB, di.WithName("B"), di.Need(1, classA))
	factoryKey := di.CreateIdentifier(uniqueName("factory"))

	inj := isolated(di.NewCollection(
		di.Provide(classA),
		di.Bind(factoryKey, di.UseFactory(func([]any) (any, error) { return "f", nil })),
	), di.WithObserver(obs))

	_, err := inj.CreateInstance(classB, "x")
	require.NoError(t, err)
	_, err = inj.Resolve(factoryKey)
	require.NoError(t, err)

	require.Len(t, events, 3)

	assert.Equal(t, classA, events[0].Key)
	assert.Equal(t, 2, events[0].Depth)
	assert.Equal(t, di.KindClass, events[0].Kind)

	assert.Equal(t, classB, events[1].Key)
	assert.Equal(t, 1, events[1].Depth)

	assert.Equal(t, factoryKey, events[2].Key)
	assert.Equal(t, di.KindFactory, events[2].Kind)
	assert.Equal(t, inj.ID(), events[2].InjectorID)
	assert.NoError(t, events[2].Err)
	assert.False(t, events[2].Start.IsZero())
}
