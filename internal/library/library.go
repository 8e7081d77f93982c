// Package library implements the bounded study set library. The library
// is the authoritative in-memory collection; durable storage is a
// best-effort mirror rewritten in full on every mutation.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/store"
)

// MaxSets is the library capacity. Saving past the bound evicts the
// oldest-by-position sets.
const MaxSets = 20

// Library is the store.LibraryStore implementation. All mutations hold
// the lock for the whole read-merge-write cycle, so the mirror never sees
// a partially updated collection.
type Library struct {
	mu      sync.Mutex
	sets    []*domain.StudySet
	storage store.Storage
	logger  *slog.Logger
}

// New creates a Library loaded from durable storage. An absent blob means
// a fresh install and yields an empty library; a corrupt blob is an error
// so a damaged state file is noticed instead of silently truncated.
func New(ctx context.Context, storage store.Storage, logger *slog.Logger) (*Library, error) {
	if storage == nil {
		return nil, errors.New("storage cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	lib := &Library{
		storage: storage,
		logger:  logger.With(slog.String("component", "library")),
	}

	blob, err := storage.Get(ctx, store.KeyLibrary)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return lib, nil
		}
		return nil, store.NewStoreError("library", "load", err)
	}

	if err := json.Unmarshal(blob, &lib.sets); err != nil {
		return nil, store.NewStoreError("library", "load", fmt.Errorf("decode sets: %w", err))
	}

	lib.logger.Debug("library loaded", "set_count", len(lib.sets))
	return lib, nil
}

// Save upserts a set by exact name, prepends it, and truncates the
// library to MaxSets. The whole collection is flushed before returning.
// A flush error is returned, but the in-memory mutation is kept: memory
// is the source of truth for the rest of the process lifetime.
func (l *Library) Save(ctx context.Context, set *domain.StudySet) error {
	if set == nil {
		return fmt.Errorf("%w: nil study set", store.ErrInvalidEntity)
	}
	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := make([]*domain.StudySet, 0, len(l.sets)+1)
	kept = append(kept, set)
	for _, existing := range l.sets {
		if existing.Name == set.Name {
			continue
		}
		kept = append(kept, existing)
	}

	if len(kept) > MaxSets {
		evicted := len(kept) - MaxSets
		kept = kept[:MaxSets]
		l.logger.Info("library capacity reached, evicting oldest sets", "evicted", evicted)
	}

	l.sets = kept
	return l.flush(ctx)
}

// Delete removes the set with the given ID and flushes. A second delete
// of the same ID is a no-op and does not rewrite storage.
func (l *Library) Delete(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, set := range l.sets {
		if set.ID == id {
			l.sets = append(l.sets[:i], l.sets[i+1:]...)
			return l.flush(ctx)
		}
	}

	return nil
}

// Get retrieves a set by ID.
func (l *Library) Get(_ context.Context, id uuid.UUID) (*domain.StudySet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, set := range l.sets {
		if set.ID == id {
			return set, nil
		}
	}

	return nil, store.ErrSetNotFound
}

// List returns the sets most-recent-first as a copied slice.
func (l *Library) List(_ context.Context) []*domain.StudySet {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.StudySet, len(l.sets))
	copy(out, l.sets)
	return out
}

// flush rewrites the whole library blob. Callers must hold l.mu.
func (l *Library) flush(ctx context.Context) error {
	blob, err := json.Marshal(l.sets)
	if err != nil {
		return store.NewStoreError("library", "flush", err)
	}

	if err := l.storage.Set(ctx, store.KeyLibrary, blob); err != nil {
		l.logger.Error("library flush failed, in-memory state remains authoritative", "error", err)
		return store.NewStoreError("library", "flush", err)
	}

	return nil
}
