package di_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/scopedi/di"
)

func TestCollection_AddHasGet(t *testing.T) {
	c := di.NewCollection()
	id := di.CreateIdentifier(uniqueName("value"))

	require.NoError(t, c.Add(id, di.UseValue(42)))

	has, err := c.Has(id)
	require.NoError(t, err)
	assert.True(t, has)

	b, ok, err := c.Get(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, di.ValueBinding{Value: 42}, b)
	assert.Equal(t, di.KindValue, b.Kind())
}

func TestCollection_NilBinding(t *testing.T) {
	c := di.NewCollection()
	class := di.NewClass(NewA, di.WithName("A"))

	require.NoError(t, c.Add(class, nil))
	b, ok, err := c.Get(class)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, di.PendingConstruction{Class: class}, b)

	err = c.Add(di.CreateIdentifier(uniqueName("nil")), nil)
	assert.True(t, errors.Is(err, di.ErrInvalidBinding))

	err = c.Add(nil, di.UseValue(1))
	assert.True(t, errors.Is(err, di.ErrInvalidBinding))
}

func TestCollection_LaterItemsOverwrite(t *testing.T) {
	first := di.CreateIdentifier(uniqueName("first"))
	second := di.CreateIdentifier(uniqueName("second"))

	c := di.NewCollection(
		di.Bind(first, di.UseValue("a")),
		di.Bind(second, di.UseValue("b")),
		di.Bind(first, di.UseValue("c")),
	)

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Equal(t, []di.Key{first, second}, keys)

	b, _, _ := c.Get(first)
	assert.Equal(t, di.ValueBinding{Value: "c"}, b)
}

func TestCollection_DisposeOrderAndGuard(t *testing.T) {
	var order []string
	k1 := di.CreateIdentifier(uniqueName("k1"))
	k2 := di.CreateIdentifier(uniqueName("k2"))
	k3 := di.CreateIdentifier(uniqueName("k3"))
	k4 := di.CreateIdentifier(uniqueName("k4"))

	c := di.NewCollection(
		di.Bind(k1, di.UseValue(&closer{name: "one", order: &order})),
		di.Bind(k2, di.UseValue("plain")),
		di.Bind(k3, di.UseValue(&disposer{name: "three", order: &order})),
		di.Bind(k4, di.UseValue(&closer{name: "four", order: &order})),
	)

	require.NoError(t, c.Dispose())
	assert.Equal(t, []string{"one", "three", "four"}, order)
	assert.True(t, c.Disposed())

	_, _, err := c.Get(k1)
	assert.True(t, errors.Is(err, di.ErrCollectionDisposed))
	_, err = c.Has(k1)
	assert.True(t, errors.Is(err, di.ErrCollectionDisposed))
	assert.True(t, errors.Is(c.Add(k1, di.UseValue(1)), di.ErrCollectionDisposed))
	_, err = c.Keys()
	assert.True(t, errors.Is(err, di.ErrCollectionDisposed))

	require.NoError(t, c.Dispose())
	assert.Len(t, order, 3, "second Dispose must not dispose again")
}

func TestCollection_DisposeJoinsErrors(t *testing.T) {
	var order []string
	errOne := errors.New("one failed")
	errTwo := errors.New("two failed")

	c := di.NewCollection(
		di.Bind(di.CreateIdentifier(uniqueName("e1")), di.UseValue(&closer{name: "one", order: &order, err: errOne})),
		di.Bind(di.CreateIdentifier(uniqueName("e2")), di.UseValue(&closer{name: "two", order: &order, err: errTwo})),
	)

	err := c.Dispose()
	require.Error(t, err)
	assert.ErrorIs(t, err, errOne)
	assert.ErrorIs(t, err, errTwo)
	assert.Equal(t, []string{"one", "two"}, order)
}

func TestCollection_DisposeDoesNotTouchPending(t *testing.T) {
	built := 0
	class := di.NewClass(func() *closer { built++; return &closer{} })

	c := di.NewCollection(di.Provide(class))
	require.NoError(t, c.Dispose())
	assert.Zero(t, built)
}
