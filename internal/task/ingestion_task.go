package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finchley/lexi/internal/domain"
)

// Errors returned while constructing an ingestion task
var (
	ErrNilIngestor = errors.New("ingestor cannot be nil")
	ErrNilSaver    = errors.New("set saver cannot be nil")
	ErrNilRegistry = errors.New("job registry cannot be nil")
	ErrNilLogger   = errors.New("logger cannot be nil")
	ErrEmptyJobID  = errors.New("job ID cannot be empty")
)

// SetIngestor is the slice of the ingestion pipeline a task needs.
type SetIngestor interface {
	IngestText(ctx context.Context, name, text string) (*domain.StudySet, error)
	IngestDocument(ctx context.Context, name string, html []byte) (*domain.StudySet, error)
	IngestExcel(ctx context.Context, name string, data []byte) (*domain.StudySet, error)
	IngestImage(ctx context.Context, name string, image []byte, mimeType string) (*domain.StudySet, error)
}

// SetSaver persists a finished study set.
type SetSaver interface {
	Save(ctx context.Context, set *domain.StudySet) error
}

// IngestionSource describes the raw material of one ingestion run.
type IngestionSource struct {
	Name     string         `json:"name"`
	Type     domain.SetType `json:"type"`
	Data     []byte         `json:"data,omitempty"`
	Text     string         `json:"text,omitempty"`
	MimeType string         `json:"mime_type,omitempty"`
}

// IngestionTask runs one ingestion end to end: parse/extract, normalize,
// enrich, save the set, and keep the job registry current throughout.
type IngestionTask struct {
	id       uuid.UUID
	jobID    uuid.UUID
	source   IngestionSource
	ingestor SetIngestor
	saver    SetSaver
	registry *Registry
	logger   *slog.Logger
}

// NewIngestionTask creates an ingestion task for the given job.
func NewIngestionTask(
	jobID uuid.UUID,
	source IngestionSource,
	ingestor SetIngestor,
	saver SetSaver,
	registry *Registry,
	logger *slog.Logger,
) (*IngestionTask, error) {
	if ingestor == nil {
		return nil, ErrNilIngestor
	}
	if saver == nil {
		return nil, ErrNilSaver
	}
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if jobID == uuid.Nil {
		return nil, ErrEmptyJobID
	}

	return &IngestionTask{
		id:       uuid.New(),
		jobID:    jobID,
		source:   source,
		ingestor: ingestor,
		saver:    saver,
		registry: registry,
		logger: logger.With(
			slog.String("task_type", TaskTypeIngestion),
			slog.String("job_id", jobID.String())),
	}, nil
}

// ID returns the task's unique identifier.
func (t *IngestionTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *IngestionTask) Type() string {
	return TaskTypeIngestion
}

// Execute runs the ingestion. Any failure marks the job failed with the
// error message; success records the new set's ID and word count.
func (t *IngestionTask) Execute(ctx context.Context) error {
	t.registry.MarkProcessing(t.jobID)
	t.logger.Info("starting ingestion",
		slog.String("set_name", t.source.Name),
		slog.String("source_type", string(t.source.Type)))

	set, err := t.runIngestion(ctx)
	if err != nil {
		t.registry.MarkFailed(t.jobID, err.Error())
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if err := t.saver.Save(ctx, set); err != nil {
		t.registry.MarkFailed(t.jobID, err.Error())
		return fmt.Errorf("failed to save study set: %w", err)
	}

	t.registry.MarkCompleted(t.jobID, set.ID, set.WordCount)
	t.logger.Info("ingestion completed",
		slog.String("set_id", set.ID.String()),
		slog.Int("word_count", set.WordCount))
	return nil
}

func (t *IngestionTask) runIngestion(ctx context.Context) (*domain.StudySet, error) {
	switch t.source.Type {
	case domain.SetTypeText:
		return t.ingestor.IngestText(ctx, t.source.Name, t.source.Text)
	case domain.SetTypeDoc:
		return t.ingestor.IngestDocument(ctx, t.source.Name, t.source.Data)
	case domain.SetTypeExcel:
		return t.ingestor.IngestExcel(ctx, t.source.Name, t.source.Data)
	case domain.SetTypeImage:
		return t.ingestor.IngestImage(ctx, t.source.Name, t.source.Data, t.source.MimeType)
	default:
		return nil, fmt.Errorf("unsupported source type %q", t.source.Type)
	}
}
