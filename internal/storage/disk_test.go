package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreUpload(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "http://localhost:8080")

	err := store.Upload(context.Background(), "camisetas", "boca-1997-abc.jpg", []byte("jpeg bytes"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(root, "camisetas", "boca-1997-abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), got)
}

func TestDiskStoreUploadNestedKey(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "http://localhost:8080")

	err := store.Upload(context.Background(), "camisetas", "2026/03/river.jpg", []byte("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "camisetas", "2026", "03", "river.jpg"))
	assert.NoError(t, err)
}

func TestDiskStoreRejectsBadKeys(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:8080")
	for _, key := range []string{"", "/etc/passwd", "../escape.jpg", "a/../../b.jpg", "a//b.jpg"} {
		err := store.Upload(context.Background(), "camisetas", key, []byte("x"))
		assert.ErrorIs(t, err, ErrBadKey, "key %q", key)
	}
	err := store.Upload(context.Background(), "", "ok.jpg", []byte("x"))
	assert.ErrorIs(t, err, ErrBadKey)
}

func TestDiskStorePublicURL(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:8080/")
	got := store.PublicURL("camisetas", "boca-1997-abc.jpg")
	assert.Equal(t, "http://localhost:8080/uploads/camisetas/boca-1997-abc.jpg", got)
}
