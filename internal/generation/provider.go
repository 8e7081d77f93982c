package generation

import (
	"context"

	"github.com/finchley/lexi/internal/domain"
)

// Enrichment carries the optional fields the content provider fills for
// a single term. Any field may be empty when the provider has nothing
// useful; an enrichment failure never blocks a session.
type Enrichment struct {
	Definition  string   `json:"definition"`
	Phonetic    string   `json:"phonetic"`
	Translation string   `json:"translation"`
	Example     string   `json:"example"`
	Synonyms    []string `json:"synonyms"`
}

// ContentProvider is the contract of the external generative service.
// Implementations are expected to be safe for concurrent use.
type ContentProvider interface {
	// Enrich produces definition, phonetic, translation, example and
	// synonyms for the given term.
	Enrich(ctx context.Context, term string) (*Enrichment, error)

	// ExtractTerms pulls study-worthy vocabulary out of free text.
	// The result may be empty; that is the caller's ingestion-failure
	// signal, not an error.
	ExtractTerms(ctx context.Context, text string) ([]string, error)

	// ExtractTermsFromImage pulls vocabulary out of photographed text.
	ExtractTermsFromImage(ctx context.Context, image []byte, mimeType string) ([]string, error)

	// GenerateQuiz produces one multiple-choice question per input term,
	// four options each, the correct answer included. The output order
	// is not guaranteed to match the input order.
	GenerateQuiz(ctx context.Context, terms []string) ([]domain.QuizQuestion, error)
}
