package cache

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates the cache holds no usable entry for a document.
// The authoritative copy lives in the object store; callers recover by
// asking the user to re-upload.
var ErrNotFound = errors.New("cached file not found")

// Cache stores a local copy of each uploaded source file, keyed by document
// ID, so processing never re-fetches the original over the network. Cache
// state is purely an optimization: the system stays correct when it is empty.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir. The directory is created lazily on
// first Store.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Store writes bytes for a document, overwriting any prior entry.
func (c *Cache) Store(documentID string, data []byte) error {
	if strings.TrimSpace(documentID) == "" {
		return errors.New("document id is required")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir cache dir: %w", err)
	}
	if err := os.WriteFile(c.entryPath(documentID), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Retrieve returns the cached bytes for a document. Absent or zero-length
// entries fail with ErrNotFound.
func (c *Cache) Retrieve(documentID string) ([]byte, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, errors.New("document id is required")
	}
	data, err := os.ReadFile(c.entryPath(documentID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read cache entry: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return data, nil
}

// Evict removes the entry for a document. Evicting a missing entry is a no-op.
func (c *Cache) Evict(documentID string) error {
	if strings.TrimSpace(documentID) == "" {
		return nil
	}
	if err := os.Remove(c.entryPath(documentID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cache entry: %w", err)
	}
	return nil
}

// EncodeDataURL renders raw bytes as a base64 data URL for transport to an
// AI provider.
func EncodeDataURL(mediaType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data))
}

func (c *Cache) entryPath(documentID string) string {
	return filepath.Join(c.dir, documentID+".pdf")
}
