package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrEmptyTerm is returned when a word's term is empty or whitespace only.
	ErrEmptyTerm = errors.New("word term cannot be empty")
)

// WordItem represents a single vocabulary entry. The term is the identity
// of the item: within any collection (history, missed set, an active
// session's word list) no two items may share the same case-folded term.
type WordItem struct {
	ID         uuid.UUID `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition,omitempty"`
	Phonetic   string    `json:"phonetic,omitempty"`
	Example    string    `json:"example,omitempty"`

	// MasteryLevel is a presentation-side counter. The engine persists it
	// but never changes it as part of its own invariants.
	MasteryLevel int `json:"mastery_level"`

	// LastMemorizedAt is set exactly when the learner marks the item as
	// remembered. The zero value means the item has never been memorized.
	LastMemorizedAt time.Time `json:"last_memorized_at,omitempty"`
}

// Fold returns the canonical dedup key for a term. Term uniqueness is
// enforced on this value, never on the raw string.
func Fold(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// NewWordItem creates a new WordItem for the given term with a fresh ID
// and a mastery level of zero. The term keeps its original casing for
// display; only the dedup key is folded.
// Returns an error if the term is empty after trimming.
func NewWordItem(term string) (*WordItem, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	return &WordItem{
		ID:   uuid.New(),
		Term: term,
	}, nil
}

// Key returns the case-folded term used for identity comparisons.
func (w *WordItem) Key() string {
	return Fold(w.Term)
}

// Validate checks if the WordItem has valid data.
func (w *WordItem) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if strings.TrimSpace(w.Term) == "" {
		return ErrEmptyTerm
	}

	return nil
}
