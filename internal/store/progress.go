package store

import (
	"context"
	"time"

	"github.com/finchley/lexi/internal/domain"
)

// ProgressStore defines the interface for the learner's long-term progress
// collections: the recency-ordered history and the missed-word set.
// Version: 1.0
type ProgressStore interface {
	// RecordCorrect stamps the word's last-memorized time, upserts it at
	// the front of history (removing any prior entry for the same folded
	// term, then capping the collection), and removes the term from the
	// missed set if present. Both blobs are flushed before returning;
	// flush errors are reported but memory stays authoritative.
	RecordCorrect(ctx context.Context, word *domain.WordItem) error

	// RecordIncorrect adds the word to the missed set if no entry with
	// the same folded term exists yet. History is not touched.
	RecordIncorrect(ctx context.Context, word *domain.WordItem) error

	// RecentlyMemorized returns the history entries whose last-memorized
	// time falls within the trailing window. Pure read, no mutation.
	RecentlyMemorized(window time.Duration) []*domain.WordItem

	// LookupHistory resolves a term (case-folded) to its history entry.
	// Quiz questions reference terms, not items; this is how a quiz miss
	// finds the word to persist.
	LookupHistory(term string) (*domain.WordItem, bool)

	// History returns a copy of the history, most recently memorized first.
	History() []*domain.WordItem

	// Missed returns a copy of the missed-word set.
	Missed() []*domain.WordItem
}
