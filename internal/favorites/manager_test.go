package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/favorite"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Load(_ context.Context, sid string) ([]byte, error) {
	return s.data[sid], nil
}

func (s *memStore) Save(_ context.Context, sid string, data []byte) error {
	s.data[sid] = data
	return nil
}

func (s *memStore) Delete(_ context.Context, sid string) error {
	delete(s.data, sid)
	return nil
}

func hydrated(t *testing.T, store *memStore) *Manager {
	t.Helper()
	m := NewManager(store, "sid")
	m.Hydrate(context.Background())
	return m
}

func TestToggleFlips(t *testing.T) {
	ctx := context.Background()
	m := hydrated(t, newMemStore())
	entry := favorite.Entry{ProductID: 7, Name: "Boca 1997", Price: 45000}

	on, err := m.Toggle(ctx, entry)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, m.IsFavorite(7))
	require.Len(t, m.Entries(), 1)

	off, err := m.Toggle(ctx, entry)
	require.NoError(t, err)
	assert.False(t, off)
	assert.False(t, m.IsFavorite(7))
	assert.Empty(t, m.Entries())
}

func TestToggleKeepsOthers(t *testing.T) {
	ctx := context.Background()
	m := hydrated(t, newMemStore())

	_, err := m.Toggle(ctx, favorite.Entry{ProductID: 1})
	require.NoError(t, err)
	_, err = m.Toggle(ctx, favorite.Entry{ProductID: 2})
	require.NoError(t, err)
	_, err = m.Toggle(ctx, favorite.Entry{ProductID: 1})
	require.NoError(t, err)

	require.Len(t, m.Entries(), 1)
	assert.Equal(t, int64(2), m.Entries()[0].ProductID)
}

func TestSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	m := hydrated(t, store)
	_, err := m.Toggle(ctx, favorite.Entry{ProductID: 3, Name: "River 1986", Price: 52000})
	require.NoError(t, err)

	m2 := hydrated(t, store)
	assert.True(t, m2.IsFavorite(3))
	assert.Equal(t, m.Entries(), m2.Entries())
}

func TestCorruptSnapshotYieldsEmptySet(t *testing.T) {
	store := newMemStore()
	store.data["sid"] = []byte("nope")

	m := hydrated(t, store)
	assert.Empty(t, m.Entries())
	assert.True(t, m.Hydrated())
}

func TestUnhydratedReportsEmpty(t *testing.T) {
	m := NewManager(newMemStore(), "sid")
	assert.Nil(t, m.Entries())
	assert.False(t, m.IsFavorite(1))
}
