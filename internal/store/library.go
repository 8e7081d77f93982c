package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/finchley/lexi/internal/domain"
)

// LibraryStore defines the interface for the bounded study set library.
// Version: 1.0
type LibraryStore interface {
	// Save upserts a study set by exact name: any existing set with the
	// same name is removed, the new set is prepended, and the collection
	// is truncated to its capacity, evicting the oldest-by-position sets.
	// The full collection is flushed to durable storage before returning;
	// a flush error is reported but the in-memory library keeps the
	// mutation.
	Save(ctx context.Context, set *domain.StudySet) error

	// Delete removes the set with the given ID and flushes. Deleting an
	// absent ID is a no-op, not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Get retrieves a set by ID.
	// Returns ErrSetNotFound if the set does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.StudySet, error)

	// List returns the sets most-recent-first. The returned slice is a
	// copy; callers cannot mutate the library through it.
	List(ctx context.Context) []*domain.StudySet
}
