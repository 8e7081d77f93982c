// Package ingest turns raw source material (pasted word lists, documents,
// spreadsheets, photographed pages) into study sets. Every channel funnels
// through the same pipeline: parse or extract raw records, normalize and
// dedup them, enrich best-effort through the content provider, then build
// an immutable StudySet.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/generation"
)

// ErrNothingToIngest indicates a source yielded no usable terms. No study
// set is created in that case.
var ErrNothingToIngest = errors.New("source contained no usable terms")

// Ingestor orchestrates the parse, normalize and enrich pipeline for all
// ingestion channels.
type Ingestor struct {
	provider generation.ContentProvider
	logger   *slog.Logger
}

// NewIngestor creates an Ingestor backed by the given content provider.
func NewIngestor(provider generation.ContentProvider, logger *slog.Logger) (*Ingestor, error) {
	if provider == nil {
		return nil, errors.New("content provider cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Ingestor{
		provider: provider,
		logger:   logger.With(slog.String("component", "ingestor")),
	}, nil
}

// IngestText builds a study set from a pasted word list. Lines carry a
// term and optionally a definition and example, see ParseWordList.
func (i *Ingestor) IngestText(ctx context.Context, name, text string) (*domain.StudySet, error) {
	return i.buildSet(ctx, name, domain.SetTypeText, ParseWordList(text))
}

// IngestDocument builds a study set from an HTML document. The readable
// article text is extracted first, then the content provider picks the
// study-worthy vocabulary out of it.
func (i *Ingestor) IngestDocument(ctx context.Context, name string, html []byte) (*domain.StudySet, error) {
	text, err := ExtractDocumentText(html)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}

	terms, err := i.provider.ExtractTerms(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract terms from document: %w", err)
	}

	return i.buildSet(ctx, name, domain.SetTypeDoc, recordsFromTerms(terms))
}

// IngestExcel builds a study set from an xlsx spreadsheet, see ParseExcel
// for the expected layout.
func (i *Ingestor) IngestExcel(ctx context.Context, name string, data []byte) (*domain.StudySet, error) {
	records, err := ParseExcel(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse spreadsheet: %w", err)
	}
	return i.buildSet(ctx, name, domain.SetTypeExcel, records)
}

// IngestImage builds a study set from a photographed page of text.
func (i *Ingestor) IngestImage(ctx context.Context, name string, image []byte, mimeType string) (*domain.StudySet, error) {
	terms, err := i.provider.ExtractTermsFromImage(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract terms from image: %w", err)
	}
	return i.buildSet(ctx, name, domain.SetTypeImage, recordsFromTerms(terms))
}

// buildSet runs the shared tail of the pipeline: normalize, enrich, wrap.
func (i *Ingestor) buildSet(ctx context.Context, name string, setType domain.SetType, records []domain.WordRecord) (*domain.StudySet, error) {
	words := domain.NormalizeRecords(records)
	if len(words) == 0 {
		return nil, ErrNothingToIngest
	}

	i.enrich(ctx, words)

	set, err := domain.NewStudySet(name, setType, words)
	if err != nil {
		return nil, fmt.Errorf("failed to create study set: %w", err)
	}

	i.logger.Info("ingested study set",
		slog.String("name", set.Name),
		slog.String("type", string(set.Type)),
		slog.Int("word_count", set.WordCount))

	return set, nil
}

// enrich fills in missing definition, phonetic and example fields via the
// content provider. Enrichment is best-effort: a provider failure for one
// word is logged and skipped, never surfaced to the caller.
func (i *Ingestor) enrich(ctx context.Context, words []*domain.WordItem) {
	for _, w := range words {
		if w.Definition != "" && w.Phonetic != "" && w.Example != "" {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		e, err := i.provider.Enrich(ctx, w.Term)
		if err != nil {
			i.logger.Warn("enrichment failed, keeping word as-is",
				slog.String("term", w.Term),
				slog.String("error", err.Error()))
			continue
		}

		if w.Definition == "" {
			w.Definition = e.Definition
		}
		if w.Phonetic == "" {
			w.Phonetic = e.Phonetic
		}
		if w.Example == "" {
			w.Example = e.Example
		}
	}
}

func recordsFromTerms(terms []string) []domain.WordRecord {
	records := make([]domain.WordRecord, 0, len(terms))
	for _, t := range terms {
		records = append(records, domain.WordRecord{Term: t})
	}
	return records
}
