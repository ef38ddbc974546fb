package storage

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ObjectStore is the image-hosting boundary: write bytes under a
// bucket/key, get back a stable public URL. The disk implementation
// below serves a single-node deployment; a real bucket-backed store
// can drop in behind the same interface.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte) error
	PublicURL(bucket, key string) string
}

var ErrBadKey = errors.New("storage: invalid object key")

type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore stores objects under root/<bucket>/<key> and exposes
// them at baseURL/uploads/<bucket>/<key>.
func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskStore) Upload(_ context.Context, bucket, key string, data []byte) error {
	if !validKey(bucket) || !validKey(key) {
		return ErrBadKey
	}
	dst := filepath.Join(s.root, bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func (s *DiskStore) PublicURL(bucket, key string) string {
	return s.baseURL + "/uploads/" + path.Join(bucket, key)
}

func validKey(k string) bool {
	if k == "" || strings.HasPrefix(k, "/") {
		return false
	}
	for _, part := range strings.Split(k, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
