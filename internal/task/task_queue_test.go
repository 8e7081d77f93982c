package task

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopTask is a minimal Task for queue and pool tests.
type noopTask struct {
	id  uuid.UUID
	run func(ctx context.Context) error
}

func newNoopTask(run func(ctx context.Context) error) *noopTask {
	if run == nil {
		run = func(context.Context) error { return nil }
	}
	return &noopTask{id: uuid.New(), run: run}
}

func (t *noopTask) ID() uuid.UUID { return t.id }

func (t *noopTask) Type() string { return "noop" }

func (t *noopTask) Execute(ctx context.Context) error { return t.run(ctx) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnqueueAndConsume(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(2, testLogger())
	task := newNoopTask(nil)

	require.NoError(t, q.Enqueue(task))

	got := <-q.GetChannel()
	assert.Equal(t, task.ID(), got.ID())
}

func TestEnqueueFullQueue(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, testLogger())
	require.NoError(t, q.Enqueue(newNoopTask(nil)))

	err := q.Enqueue(newNoopTask(nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestEnqueueAfterClose(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, testLogger())
	q.Close()

	err := q.Enqueue(newNoopTask(nil))
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, testLogger())
	q.Close()
	assert.NotPanics(t, q.Close)
}

func TestCloseDrainsBufferedTasks(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(2, testLogger())
	require.NoError(t, q.Enqueue(newNoopTask(nil)))
	require.NoError(t, q.Enqueue(newNoopTask(nil)))
	q.Close()

	count := 0
	for range q.GetChannel() {
		count++
	}
	assert.Equal(t, 2, count)
}
