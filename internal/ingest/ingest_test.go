package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/generation"
)

// stubProvider is a canned ContentProvider for pipeline tests.
type stubProvider struct {
	enrichments map[string]*generation.Enrichment
	enrichErr   error
	terms       []string
	termsErr    error
	imageTerms  []string
}

func (s *stubProvider) Enrich(_ context.Context, term string) (*generation.Enrichment, error) {
	if s.enrichErr != nil {
		return nil, s.enrichErr
	}
	if e, ok := s.enrichments[term]; ok {
		return e, nil
	}
	return &generation.Enrichment{}, nil
}

func (s *stubProvider) ExtractTerms(_ context.Context, _ string) ([]string, error) {
	return s.terms, s.termsErr
}

func (s *stubProvider) ExtractTermsFromImage(_ context.Context, _ []byte, _ string) ([]string, error) {
	return s.imageTerms, nil
}

func (s *stubProvider) GenerateQuiz(_ context.Context, _ []string) ([]domain.QuizQuestion, error) {
	return nil, errors.New("not used in ingestion")
}

func newTestIngestor(t *testing.T, p generation.ContentProvider) *Ingestor {
	t.Helper()
	ing, err := NewIngestor(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return ing
}

func TestIngestTextBuildsEnrichedSet(t *testing.T) {
	t.Parallel()

	p := &stubProvider{enrichments: map[string]*generation.Enrichment{
		"apple": {Definition: "a round fruit", Phonetic: "ˈapəl", Example: "She ate an apple."},
	}}
	ing := newTestIngestor(t, p)

	set, err := ing.IngestText(context.Background(), "Fruit", "apple\nApple\nbanana")
	require.NoError(t, err)

	assert.Equal(t, "Fruit", set.Name)
	assert.Equal(t, domain.SetTypeText, set.Type)
	require.Equal(t, 2, set.WordCount, "case-folded duplicates collapse")
	assert.Equal(t, "apple", set.Words[0].Term)
	assert.Equal(t, "a round fruit", set.Words[0].Definition)
}

func TestIngestTextKeepsProvidedDefinitions(t *testing.T) {
	t.Parallel()

	p := &stubProvider{enrichments: map[string]*generation.Enrichment{
		"apple": {Definition: "provider definition", Phonetic: "ˈapəl"},
	}}
	ing := newTestIngestor(t, p)

	set, err := ing.IngestText(context.Background(), "Fruit", "apple\tmy own definition")
	require.NoError(t, err)

	assert.Equal(t, "my own definition", set.Words[0].Definition,
		"source-supplied fields win over enrichment")
	assert.Equal(t, "ˈapəl", set.Words[0].Phonetic, "blank fields are filled in")
}

func TestIngestTextToleratesEnrichmentFailure(t *testing.T) {
	t.Parallel()

	ing := newTestIngestor(t, &stubProvider{enrichErr: errors.New("provider down")})

	set, err := ing.IngestText(context.Background(), "Fruit", "apple\nbanana")
	require.NoError(t, err)
	assert.Equal(t, 2, set.WordCount)
	assert.Empty(t, set.Words[0].Definition)
}

func TestIngestTextEmptySource(t *testing.T) {
	t.Parallel()

	ing := newTestIngestor(t, &stubProvider{})

	_, err := ing.IngestText(context.Background(), "Empty", "   \n\n  ")
	assert.ErrorIs(t, err, ErrNothingToIngest)
}

func TestIngestDocument(t *testing.T) {
	t.Parallel()

	html := []byte(`<html><body><article><p>An essay full of rare words
	that a diligent student might want to study later at some length,
	collected here purely so the extractor has enough prose to chew
	on.</p></article></body></html>`)

	ing := newTestIngestor(t, &stubProvider{terms: []string{"diligent", "essay"}})

	set, err := ing.IngestDocument(context.Background(), "Essay", html)
	require.NoError(t, err)
	assert.Equal(t, domain.SetTypeDoc, set.Type)
	assert.Equal(t, 2, set.WordCount)
}

func TestIngestDocumentNothingExtracted(t *testing.T) {
	t.Parallel()

	html := []byte(`<html><body><article><p>Plain filler prose without any
	vocabulary the provider considers worth studying, repeated just long
	enough for the article parser to accept it.</p></article></body></html>`)

	ing := newTestIngestor(t, &stubProvider{terms: nil})

	_, err := ing.IngestDocument(context.Background(), "Essay", html)
	assert.ErrorIs(t, err, ErrNothingToIngest)
}

func TestIngestExcel(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, [][]interface{}{
		{"word", "meaning"},
		{"apple", "a round fruit"},
	})

	ing := newTestIngestor(t, &stubProvider{})

	set, err := ing.IngestExcel(context.Background(), "Sheet", data)
	require.NoError(t, err)
	assert.Equal(t, domain.SetTypeExcel, set.Type)
	require.Equal(t, 1, set.WordCount)
	assert.Equal(t, "a round fruit", set.Words[0].Definition)
}

func TestIngestImage(t *testing.T) {
	t.Parallel()

	ing := newTestIngestor(t, &stubProvider{imageTerms: []string{"ubiquitous"}})

	set, err := ing.IngestImage(context.Background(), "Photo", []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, domain.SetTypeImage, set.Type)
	assert.Equal(t, 1, set.WordCount)
}

func TestDemoSet(t *testing.T) {
	t.Parallel()

	a := DemoSet()
	b := DemoSet()

	require.NoError(t, a.Validate())
	assert.Equal(t, DemoSetName, a.Name)
	assert.Equal(t, domain.SetTypeDemo, a.Type)
	assert.NotEmpty(t, a.Words)
	assert.NotEqual(t, a.ID, b.ID, "each activation mints a fresh set")
	for _, w := range a.Words {
		assert.NotEmpty(t, w.Definition, "demo words ship fully enriched")
	}
}
