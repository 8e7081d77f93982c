package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/finchley/lexi/internal/config"
	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/generation"
)

// Provider implements generation.ContentProvider against the Gemini API.
type Provider struct {
	logger  *slog.Logger
	config  config.LLMConfig
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewProvider creates a Provider with the given configuration.
// Returns an error if the configuration is invalid or the client cannot
// be constructed.
func NewProvider(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Provider{
		logger:  logger.With(slog.String("component", "gemini_provider")),
		config:  cfg,
		client:  client,
		model:   cfg.ModelName,
		timeout: timeout,
	}, nil
}

// Enrich produces definition, phonetic, translation, example and
// synonyms for the given term.
func (p *Provider) Enrich(ctx context.Context, term string) (*generation.Enrichment, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: empty term", generation.ErrGenerationFailed)
	}

	text, err := p.generateWithRetry(ctx, genai.Text(fmt.Sprintf(enrichPromptTemplate, term)))
	if err != nil {
		return nil, err
	}

	return parseEnrichment([]byte(text))
}

// ExtractTerms pulls study-worthy vocabulary out of free text.
func (p *Provider) ExtractTerms(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	raw, err := p.generateWithRetry(ctx, genai.Text(fmt.Sprintf(extractTermsPromptTemplate, text)))
	if err != nil {
		return nil, err
	}

	return parseTerms([]byte(raw))
}

// ExtractTermsFromImage pulls vocabulary out of photographed text.
func (p *Provider) ExtractTermsFromImage(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", generation.ErrGenerationFailed)
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(extractImagePrompt),
		genai.NewPartFromBytes(image, mimeType),
	}, genai.RoleUser)

	raw, err := p.generateWithRetry(ctx, []*genai.Content{content})
	if err != nil {
		return nil, err
	}

	return parseTerms([]byte(raw))
}

// GenerateQuiz produces one validated multiple-choice question per input
// term.
func (p *Provider) GenerateQuiz(ctx context.Context, terms []string) ([]domain.QuizQuestion, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no terms to quiz on", generation.ErrGenerationFailed)
	}

	prompt := fmt.Sprintf(quizPromptTemplate, strings.Join(terms, ", "))
	raw, err := p.generateWithRetry(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	return parseQuiz([]byte(raw))
}

// generateWithRetry calls the Gemini API with exponential backoff and
// jitter. Transient errors (network, API availability) are retried up to
// the configured maximum; permanent errors (safety blocks, malformed
// responses) are returned immediately.
func (p *Provider) generateWithRetry(ctx context.Context, contents []*genai.Content) (string, error) {
	maxRetries := p.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelay := p.config.RetryDelaySeconds
	if baseDelay < 1 {
		baseDelay = 2
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		p.logger.Debug("calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1,
			"model", p.model)

		text, err := p.generate(ctx, contents)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			p.logger.Warn("permanent provider error, not retrying", "error", err)
			return "", err
		}

		if attempt >= maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(baseDelay) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoff * jitter * float64(time.Second))

		p.logger.Info("retrying provider call after delay",
			"attempt", attempt+1,
			"delay", delay.String(),
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
		generation.ErrTransientFailure, maxRetries, lastErr)
}

// generate issues a single bounded API call and extracts the response
// text.
func (p *Provider) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.Models.GenerateContent(callCtx, p.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	return text, nil
}

// parseEnrichment decodes an enrichment response.
func parseEnrichment(raw []byte) (*generation.Enrichment, error) {
	var schema enrichmentSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse enrichment JSON: %v",
			generation.ErrInvalidResponse, err)
	}

	if schema.Definition == "" {
		return nil, fmt.Errorf("%w: enrichment missing definition", generation.ErrInvalidResponse)
	}

	return &generation.Enrichment{
		Definition:  schema.Definition,
		Phonetic:    schema.Phonetic,
		Translation: schema.Translation,
		Example:     schema.Example,
		Synonyms:    schema.Synonyms,
	}, nil
}

// parseTerms decodes a term extraction response. An empty term list is a
// valid result, not an error: it tells the caller the source contained
// nothing usable.
func parseTerms(raw []byte) ([]string, error) {
	var schema termsSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse terms JSON: %v",
			generation.ErrInvalidResponse, err)
	}

	terms := make([]string, 0, len(schema.Terms))
	for _, t := range schema.Terms {
		t = strings.TrimSpace(t)
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms, nil
}

// parseQuiz decodes and validates a quiz response. Every question must
// carry four options including the correct answer; a response without a
// single valid question is invalid. The model occasionally merges or
// drops terms, so a response shorter than the term list is tolerated.
func parseQuiz(raw []byte) ([]domain.QuizQuestion, error) {
	var schema quizSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse quiz JSON: %v",
			generation.ErrInvalidResponse, err)
	}

	if len(schema.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in response", generation.ErrInvalidResponse)
	}

	questions := make([]domain.QuizQuestion, 0, len(schema.Questions))
	for i, qs := range schema.Questions {
		q := domain.QuizQuestion{
			Term:    strings.TrimSpace(qs.Term),
			Answer:  qs.Answer,
			Options: qs.Options,
			Context: qs.Context,
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", generation.ErrInvalidResponse, i, err)
		}
		questions = append(questions, q)
	}

	return questions, nil
}
