package task

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrJobNotFound indicates an unknown job ID was queried.
var ErrJobNotFound = errors.New("ingestion job not found")

// Job is the externally visible status record of one ingestion run.
// Registry hands out copies, so readers never observe a job mid-update.
type Job struct {
	ID         uuid.UUID `json:"id"`
	Status     Status    `json:"status"`
	SetName    string    `json:"set_name"`
	SourceType string    `json:"source_type"`
	SetID      uuid.UUID `json:"set_id,omitempty"`
	WordCount  int       `json:"word_count,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Registry tracks ingestion jobs in memory. Job history does not survive
// a restart, matching the fire-and-report nature of ingestion status.
type Registry struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewRegistry creates an empty job registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[uuid.UUID]*Job)}
}

// Create registers a new pending job and returns its ID.
func (r *Registry) Create(setName, sourceType string) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	job := &Job{
		ID:         uuid.New(),
		Status:     StatusPending,
		SetName:    setName,
		SourceType: sourceType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.jobs[job.ID] = job
	return job.ID
}

// Get returns a copy of the job with the given ID.
func (r *Registry) Get(id uuid.UUID) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrJobNotFound
	}
	return *job, nil
}

// MarkProcessing transitions the job to processing.
func (r *Registry) MarkProcessing(id uuid.UUID) {
	r.update(id, func(j *Job) {
		j.Status = StatusProcessing
	})
}

// MarkCompleted records a successful ingestion with the resulting set.
func (r *Registry) MarkCompleted(id, setID uuid.UUID, wordCount int) {
	r.update(id, func(j *Job) {
		j.Status = StatusCompleted
		j.SetID = setID
		j.WordCount = wordCount
	})
}

// MarkFailed records a failed ingestion with its error message.
func (r *Registry) MarkFailed(id uuid.UUID, errMsg string) {
	r.update(id, func(j *Job) {
		j.Status = StatusFailed
		j.Error = errMsg
	})
}

func (r *Registry) update(id uuid.UUID, fn func(*Job)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()
}
