package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by a BlobStore when the scope has no value under the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore is a key-value store partitioned by client scope. It plays the
// role of a browser's origin-scoped local storage.
type BlobStore interface {
	Get(ctx context.Context, scope, key string) ([]byte, error)
	Put(ctx context.Context, scope, key string, value []byte) error
}

type MemoryBlobRepo struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobRepo() *MemoryBlobRepo {
	return &MemoryBlobRepo{
		blobs: make(map[string][]byte),
	}
}

func (r *MemoryBlobRepo) Get(ctx context.Context, scope, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.blobs[memoryKey(scope, key)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *MemoryBlobRepo) Put(ctx context.Context, scope, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blobs[memoryKey(scope, key)] = append([]byte(nil), value...)
	return nil
}

func memoryKey(scope, key string) string {
	return scope + "\x00" + key
}
