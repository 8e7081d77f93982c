package store

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory Storage implementation. It backs tests
// and any run that does not need durability across restarts.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[Key][]byte

	// FailSets makes every Set call return this error when non-nil,
	// simulating a persistence-layer failure.
	FailSets error
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[Key][]byte)}
}

// Get returns the blob stored under key, or ErrKeyNotFound.
func (m *MemoryStorage) Get(_ context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Set replaces the blob stored under key.
func (m *MemoryStorage) Set(_ context.Context, key Key, value []byte) error {
	if m.FailSets != nil {
		return m.FailSets
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	blob := make([]byte, len(value))
	copy(blob, value)
	m.blobs[key] = blob
	return nil
}

// Close is a no-op for in-memory storage.
func (m *MemoryStorage) Close() error {
	return nil
}
