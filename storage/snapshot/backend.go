package snapshotdb

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrKeyNotFound is returned when a durable key holds no data yet.
	ErrKeyNotFound = errors.New("key not found")
	// ErrStorageUnavailable is returned when durable storage cannot be used at all;
	// callers fall back to memory-only operation for the session.
	ErrStorageUnavailable = errors.New("durable storage unavailable")
)

// Backend is the durable local storage contract: one key holds one serialized
// document. It mirrors the browser localStorage model the portal data layout
// comes from.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Delete(key string) error
	// Path returns the durable location of a key, or "" when the backend has none.
	Path(key string) string
}

// fileBackend persists each key as a JSON file in a single directory.
type fileBackend struct {
	dir string
}

var _ Backend = (*fileBackend)(nil)

func NewFileBackend(dir string) (Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(ErrStorageUnavailable, "creating %s: %v", dir, err)
	}
	return &fileBackend{dir: dir}, nil
}

func (b *fileBackend) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	return data, nil
}

func (b *fileBackend) Write(key string, data []byte) error {
	// write-then-rename so readers never observe a partial snapshot
	path := b.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	return nil
}

func (b *fileBackend) Delete(key string) error {
	if err := os.Remove(b.Path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting %s", key)
	}
	return nil
}

func (b *fileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// memoryBackend keeps keys in process memory only; used in tests and as the
// session fallback when durable storage is unavailable.
type memoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Backend = (*memoryBackend)(nil)

func NewMemoryBackend() Backend {
	return &memoryBackend{data: make(map[string][]byte)}
}

func (b *memoryBackend) Read(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (b *memoryBackend) Write(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	b.data[key] = cp
	return nil
}

func (b *memoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

func (b *memoryBackend) Path(string) string { return "" }
