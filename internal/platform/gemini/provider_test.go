package gemini

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/lexi/internal/config"
	"github.com/finchley/lexi/internal/generation"
)

func TestNewProviderValidatesConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := NewProvider(ctx, nil, config.LLMConfig{GeminiAPIKey: "k", ModelName: "m"})
	assert.Error(t, err, "nil logger is rejected")

	_, err = NewProvider(ctx, slog.Default(), config.LLMConfig{ModelName: "m"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewProvider(ctx, slog.Default(), config.LLMConfig{GeminiAPIKey: "k"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestParseEnrichment(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"definition": "lasting for a very short time",
		"phonetic": "ɪˈfɛm(ə)rəl",
		"translation": "éphémère",
		"example": "Fame is ephemeral.",
		"synonyms": ["fleeting", "transient"]
	}`)

	e, err := parseEnrichment(raw)
	require.NoError(t, err)
	assert.Equal(t, "lasting for a very short time", e.Definition)
	assert.Equal(t, "ɪˈfɛm(ə)rəl", e.Phonetic)
	assert.Equal(t, []string{"fleeting", "transient"}, e.Synonyms)
}

func TestParseEnrichmentErrors(t *testing.T) {
	t.Parallel()

	_, err := parseEnrichment([]byte("not json"))
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	_, err = parseEnrichment([]byte(`{"phonetic": "x"}`))
	assert.ErrorIs(t, err, generation.ErrInvalidResponse, "a definition is required")
}

func TestParseTerms(t *testing.T) {
	t.Parallel()

	terms, err := parseTerms([]byte(`{"terms": ["alpha", " beta ", "", "gamma"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, terms)
}

func TestParseTermsEmptyIsNotAnError(t *testing.T) {
	t.Parallel()

	terms, err := parseTerms([]byte(`{"terms": []}`))
	require.NoError(t, err)
	assert.Empty(t, terms, "an empty extraction is the ingestion-failure signal, not an error")
}

func TestParseQuiz(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"questions": [
			{
				"term": "laconic",
				"answer": "using few words",
				"options": ["using few words", "wordy", "cheerful", "ancient"],
				"context": "His laconic reply ended the discussion."
			}
		]
	}`)

	questions, err := parseQuiz(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "laconic", questions[0].Term)
	require.NoError(t, questions[0].Validate())
}

func TestParseQuizRejectsInvalidQuestions(t *testing.T) {
	t.Parallel()

	_, err := parseQuiz([]byte(`{"questions": []}`))
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	missingAnswer := []byte(`{
		"questions": [
			{
				"term": "laconic",
				"answer": "using few words",
				"options": ["wordy", "cheerful", "ancient", "modern"]
			}
		]
	}`)
	_, err = parseQuiz(missingAnswer)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse,
		"options that omit the correct answer are rejected")
}
