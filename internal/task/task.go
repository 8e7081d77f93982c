// Package task contains the background work machinery: a buffered task
// queue, a worker pool that drains it, an in-memory job registry for
// status reporting, and the ingestion task itself.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Status represents the current state of a background job.
type Status string

// Possible job status values
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// TaskTypeIngestion identifies study set ingestion work.
const TaskTypeIngestion = "ingestion"

// Task is a unit of background work.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}

// TaskQueueReader gives workers read-only access to queued tasks.
type TaskQueueReader interface {
	// GetChannel returns a read-only channel for consuming tasks.
	GetChannel() <-chan Task
}

// TaskQueueWriter lets producers enqueue tasks.
type TaskQueueWriter interface {
	// Enqueue adds a task to the queue for processing. Returns an error
	// if the queue is full or closed.
	Enqueue(task Task) error

	// Close closes the task queue, preventing further submission.
	Close()
}
