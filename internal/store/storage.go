package store

import "context"

// Key identifies one of the engine's persisted blobs.
type Key string

// The three storage keys. Each holds a serialized JSON array of the
// corresponding entity: study sets, history words, missed words.
const (
	KeyLibrary Key = "library"
	KeyHistory Key = "history"
	KeyMissed  Key = "missed_words"
)

// Storage is the durable key/value mirror behind the in-memory stores.
// Every mutating store operation rewrites its blob fully; partial writes
// are never issued. Memory stays authoritative when a write fails, so
// implementations only need best-effort durability.
// Version: 1.0
type Storage interface {
	// Get returns the blob stored under key.
	// Returns ErrKeyNotFound if nothing has been stored yet.
	Get(ctx context.Context, key Key) ([]byte, error)

	// Set replaces the blob stored under key with value.
	Set(ctx context.Context, key Key, value []byte) error

	// Close releases any resources held by the storage.
	Close() error
}
