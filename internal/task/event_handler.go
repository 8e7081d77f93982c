package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finchley/lexi/internal/events"
)

// ingestionEventPayload is the wire form of an ingestion request event.
// The []byte field rides through JSON as base64.
type ingestionEventPayload struct {
	JobID  uuid.UUID       `json:"job_id"`
	Source IngestionSource `json:"source"`
}

// NewIngestionEvent packages an ingestion request as an event for the
// emitter.
func NewIngestionEvent(jobID uuid.UUID, source IngestionSource) (*events.TaskRequestEvent, error) {
	return events.NewTaskRequestEvent(TaskTypeIngestion, ingestionEventPayload{
		JobID:  jobID,
		Source: source,
	})
}

// IngestionEventHandler turns ingestion request events into queued
// IngestionTasks.
type IngestionEventHandler struct {
	ingestor SetIngestor
	saver    SetSaver
	registry *Registry
	queue    TaskQueueWriter
	logger   *slog.Logger
}

// NewIngestionEventHandler wires the handler to the pipeline, registry
// and queue an ingestion task needs.
func NewIngestionEventHandler(
	ingestor SetIngestor,
	saver SetSaver,
	registry *Registry,
	queue TaskQueueWriter,
	logger *slog.Logger,
) *IngestionEventHandler {
	return &IngestionEventHandler{
		ingestor: ingestor,
		saver:    saver,
		registry: registry,
		queue:    queue,
		logger:   logger.With(slog.String("component", "ingestion_event_handler")),
	}
}

// HandleEvent creates and enqueues an ingestion task for matching events.
// Events of other types are ignored. If the queue rejects the task the
// job is marked failed so the client sees the back-pressure.
func (h *IngestionEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != TaskTypeIngestion {
		return nil
	}

	var payload ingestionEventPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal ingestion payload: %w", err)
	}

	t, err := NewIngestionTask(payload.JobID, payload.Source, h.ingestor, h.saver, h.registry, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create ingestion task: %w", err)
	}

	if err := h.queue.Enqueue(t); err != nil {
		h.registry.MarkFailed(payload.JobID, err.Error())
		return fmt.Errorf("failed to enqueue ingestion task: %w", err)
	}

	h.logger.Debug("ingestion task enqueued",
		slog.String("task_id", t.ID().String()),
		slog.String("job_id", payload.JobID.String()))
	return nil
}

var _ events.EventHandler = (*IngestionEventHandler)(nil)
