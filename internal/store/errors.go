package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store.
	ErrNotFound = errors.New("entity not found")

	// ErrKeyNotFound is returned by Storage.Get when no blob has been
	// written under the requested key yet. A fresh database reports every
	// key as absent; stores treat that as an empty collection.
	ErrKeyNotFound = fmt.Errorf("%w: storage key", ErrNotFound)

	// ErrSetNotFound indicates that the requested study set does not
	// exist in the library.
	ErrSetNotFound = fmt.Errorf("%w: study set", ErrNotFound)

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific details.
	ErrInvalidEntity = errors.New("invalid entity")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError carries the entity and operation context of a failed store
// operation.
type StoreError struct {
	Entity    string // The entity type (e.g., "library", "history")
	Operation string // The operation that failed (e.g., "save", "flush")
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError wrapping err.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
