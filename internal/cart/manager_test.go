package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/cart"
)

type memStore struct {
	data    map[string][]byte
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Load(_ context.Context, sid string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.data[sid], nil
}

func (s *memStore) Save(_ context.Context, sid string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[sid] = data
	return nil
}

func (s *memStore) Delete(_ context.Context, sid string) error {
	delete(s.data, sid)
	return nil
}

func item(id int64, size string, price float64) cart.LineItem {
	return cart.LineItem{ProductID: id, Name: "Jersey", Size: size, Price: price}
}

func hydrated(t *testing.T, store *memStore) *Manager {
	t.Helper()
	m := NewManager(store, "sid")
	m.Hydrate(context.Background())
	return m
}

func TestAddMergesSameProductAndSize(t *testing.T) {
	ctx := context.Background()
	m := hydrated(t, newMemStore())

	require.NoError(t, m.Add(ctx, item(1, "M", 100), 1))
	require.NoError(t, m.Add(ctx, item(1, "M", 100), 2))
	require.NoError(t, m.Add(ctx, item(1, "L", 100), 1))

	require.Len(t, m.Items(), 2)
	assert.Equal(t, 3, m.Items()[0].Quantity)
	assert.Equal(t, "M", m.Items()[0].Size)
	assert.Equal(t, 1, m.Items()[1].Quantity)
}

func TestUniquePerProductSizePair(t *testing.T) {
	ctx := context.Background()
	m := hydrated(t, newMemStore())

	// Arbitrary interleaving of mutations never duplicates a pair.
	require.NoError(t, m.Add(ctx, item(1, "M", 100), 1))
	require.NoError(t, m.Add(ctx, item(2, "M", 50), 1))
	require.NoError(t, m.Increase(ctx, 1, "M"))
	require.NoError(t, m.Add(ctx, item(1, "M", 100), 1))
	require.NoError(t, m.Remove(ctx, 2, "M"))
	require.NoError(t, m.Add(ctx, item(2, "M", 50), 3))

	seen := map[[2]any]bool{}
	for _, it := range m.Items() {
		key := [2]any{it.ProductID, it.Size}
		assert.False(t, seen[key], "duplicate line for %v", key)
		seen[key] = true
	}
}

func TestDecreaseFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	m := hydrated(t, newMemStore())

	require.NoError(t, m.Add(ctx, item(1, "M", 100), 2))
	require.NoError(t, m.Decrease(ctx, 1, "M"))
	require.NoError(t, m.Decrease(ctx, 1, "M"))
	require.NoError(t, m.Decrease(ctx, 1, "M"))

	require.Len(t, m.Items(), 1)
	assert.Equal(t, 1, m.Items()[0].Quantity)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	m := hydrated(t, newMemStore())

	require.NoError(t, m.Add(ctx, item(1, "M", 100), 1))
	require.NoError(t, m.Remove(ctx, 1, "XL"))
	require.NoError(t, m.Remove(ctx, 9, "M"))
	assert.Len(t, m.Items(), 1)
}

func TestTotalTracksMutations(t *testing.T) {
	ctx := context.Background()
	m := hydrated(t, newMemStore())

	require.NoError(t, m.Add(ctx, item(1, "M", 19999.50), 2))
	require.NoError(t, m.Add(ctx, item(2, "L", 15000), 1))
	assert.InDelta(t, 54999.0, m.Total(), 0.001)

	require.NoError(t, m.Increase(ctx, 2, "L"))
	assert.InDelta(t, 69999.0, m.Total(), 0.001)

	require.NoError(t, m.Remove(ctx, 1, "M"))
	assert.InDelta(t, 30000.0, m.Total(), 0.001)

	require.NoError(t, m.Clear(ctx))
	assert.Zero(t, m.Total())
}

func TestAddCoercesBadPriceAndQuantity(t *testing.T) {
	ctx := context.Background()
	m := hydrated(t, newMemStore())

	require.NoError(t, m.Add(ctx, item(1, "M", -5), 0))
	require.Len(t, m.Items(), 1)
	assert.Zero(t, m.Items()[0].Price)
	assert.Equal(t, 1, m.Items()[0].Quantity)
}

func TestSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	m := hydrated(t, store)
	require.NoError(t, m.Add(ctx, item(1, "M", 100), 2))
	require.NoError(t, m.Add(ctx, item(2, "XL", 80), 1))
	before := m.Items()

	// Fresh manager over the same store simulates a page reload.
	m2 := hydrated(t, store)
	assert.Equal(t, before, m2.Items())
	assert.InDelta(t, m.Total(), m2.Total(), 0.001)
}

func TestCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	store := newMemStore()
	store.data["sid"] = []byte(`{"not": "a list"`)

	m := hydrated(t, store)
	assert.Empty(t, m.Items())
	assert.Zero(t, m.Total())
	assert.True(t, m.Hydrated())
}

func TestLoadFailureYieldsEmptyCart(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("redis down")

	m := hydrated(t, store)
	assert.Empty(t, m.Items())
	assert.True(t, m.Hydrated())
}

func TestUnhydratedReportsEmpty(t *testing.T) {
	m := NewManager(newMemStore(), "sid")
	assert.False(t, m.Hydrated())
	assert.Nil(t, m.Items())
}

func TestMutationFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := hydrated(t, store)

	store.saveErr = errors.New("redis down")
	assert.Error(t, m.Add(ctx, item(1, "M", 100), 1))
}
