package task

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := r.Create("Fruit", "text")

	job, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, job.Status)
	assert.Equal(t, "Fruit", job.SetName)
	assert.Equal(t, "text", job.SourceType)

	r.MarkProcessing(id)
	job, err = r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, job.Status)

	setID := uuid.New()
	r.MarkCompleted(id, setID, 12)
	job, err = r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, job.Status)
	assert.Equal(t, setID, job.SetID)
	assert.Equal(t, 12, job.WordCount)
	assert.Empty(t, job.Error)
}

func TestRegistryMarkFailed(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := r.Create("Fruit", "excel")

	r.MarkFailed(id, "source contained no usable terms")

	job, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, "source contained no usable terms", job.Error)
}

func TestRegistryGetUnknownJob(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.Get(uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRegistryHandsOutCopies(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := r.Create("Fruit", "text")

	job, err := r.Get(id)
	require.NoError(t, err)
	job.Status = StatusFailed

	fresh, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, fresh.Status, "mutating a returned job must not affect the registry")
}
