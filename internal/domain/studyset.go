package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SetType identifies the ingestion channel a study set came from.
type SetType string

// Possible study set provenance tags
const (
	SetTypeImage SetType = "image"
	SetTypeDoc   SetType = "doc"
	SetTypeExcel SetType = "excel"
	SetTypeText  SetType = "text"
	SetTypeDemo  SetType = "demo"
)

// Study set validation errors
var (
	ErrSetIDEmpty          = errors.New("study set ID cannot be empty")
	ErrSetNameEmpty        = errors.New("study set name cannot be empty")
	ErrSetNoWords          = errors.New("study set must contain at least one word")
	ErrSetInvalidType      = errors.New("invalid study set type")
	ErrSetWordCountInvalid = errors.New("study set word count must equal the number of words")
)

// StudySet is a named, timestamped snapshot of an ingested word batch.
// Sets are immutable after creation: re-importing the same named source
// replaces the whole set rather than updating it in place.
type StudySet struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	WordCount int         `json:"word_count"`
	Words     []*WordItem `json:"words"`
	Type      SetType     `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewStudySet creates a StudySet from an ingested word batch. The word
// order is preserved as ingestion order. Returns an error if the name is
// empty, the type is unknown or the batch is empty. An empty batch means
// ingestion produced nothing usable and no set may be created.
func NewStudySet(name string, setType SetType, words []*WordItem) (*StudySet, error) {
	set := &StudySet{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		WordCount: len(words),
		Words:     words,
		Type:      setType,
		CreatedAt: time.Now().UTC(),
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the StudySet has valid data.
func (s *StudySet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSetIDEmpty
	}

	if s.Name == "" {
		return ErrSetNameEmpty
	}

	if len(s.Words) == 0 {
		return ErrSetNoWords
	}

	if s.WordCount != len(s.Words) {
		return ErrSetWordCountInvalid
	}

	if !isValidSetType(s.Type) {
		return ErrSetInvalidType
	}

	return nil
}

// isValidSetType checks if the given type is a known provenance tag.
func isValidSetType(t SetType) bool {
	switch t {
	case SetTypeImage, SetTypeDoc, SetTypeExcel, SetTypeText, SetTypeDemo:
		return true
	default:
		return false
	}
}
