package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/flwdir"
)

var dem = []float64{
	10, 9, 8,
	7, 5, 6,
	6, 6, 6,
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	o := flwdir.DefaultOptions()
	key := Key(dem, 3, 3, o)

	_, err := s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	r, err := flwdir.FromDEM(dem, 3, 3, o)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, key, r))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, r.Dirs(), got.Dirs())
	assert.Equal(t, r.Filled(), got.Filled())
	assert.Equal(t, r.Snapshot(), got.Snapshot())

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, key))
}

func TestImportedRaster(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	r, err := flwdir.FromArray([]uint8{4, 4, 0}, "d8", 3, 1, flwdir.Options{})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "imported", r))

	got, err := s.Get(ctx, "imported")
	require.NoError(t, err)
	assert.Nil(t, got.Filled())
	assert.Equal(t, r.Dirs(), got.Dirs())
}

func TestKey(t *testing.T) {
	o := flwdir.DefaultOptions()
	k := Key(dem, 3, 3, o)
	assert.Len(t, k, 16)
	assert.Equal(t, k, Key(dem, 3, 3, o))

	assert.NotEqual(t, k, Key(dem, 1, 9, o))

	o2 := o
	o2.Outlets = "min"
	assert.NotEqual(t, k, Key(dem, 3, 3, o2))

	o2 = o
	o2.MaxDepth = 1.
	assert.NotEqual(t, k, Key(dem, 3, 3, o2))

	z := append([]float64(nil), dem...)
	z[4] = 5.5
	assert.NotEqual(t, k, Key(z, 3, 3, o))
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	r, err := flwdir.FromDEM(dem, 3, 3, flwdir.DefaultOptions())
	require.NoError(t, err)
	for _, k := range []string{"b", "a", "c"} {
		require.NoError(t, s.Put(ctx, k, r))
	}

	var keys []string
	for k, err := range s.Keys(ctx) {
		require.NoError(t, err)
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestOpenRequiresDir(t *testing.T) {
	_, err := Open(Options{})
	assert.Error(t, err)
}
