package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/task"
)

// WordResponse is the wire form of a word item.
type WordResponse struct {
	ID              uuid.UUID  `json:"id"`
	Term            string     `json:"term"`
	Definition      string     `json:"definition,omitempty"`
	Phonetic        string     `json:"phonetic,omitempty"`
	Example         string     `json:"example,omitempty"`
	MasteryLevel    int        `json:"mastery_level"`
	LastMemorizedAt *time.Time `json:"last_memorized_at,omitempty"`
}

// SetResponse is the wire form of a study set. Words are included only
// on single-set reads.
type SetResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	WordCount int            `json:"word_count"`
	Type      string         `json:"type"`
	CreatedAt time.Time      `json:"created_at"`
	Words     []WordResponse `json:"words,omitempty"`
}

// WordRecordRequest is one word in a directly-saved set. Only the term
// is required; blank enrichment fields stay blank.
type WordRecordRequest struct {
	Term       string `json:"term" validate:"required,min=1"`
	Definition string `json:"definition,omitempty"`
	Phonetic   string `json:"phonetic,omitempty"`
	Example    string `json:"example,omitempty"`
}

// CreateSetRequest is the JSON body for saving a study set without going
// through an ingestion job.
type CreateSetRequest struct {
	Name  string              `json:"name" validate:"required,min=1,max=120"`
	Words []WordRecordRequest `json:"words" validate:"required,min=1,dive"`
}

// IngestTextRequest is the JSON body for text ingestion.
type IngestTextRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Text string `json:"text" validate:"required,min=1"`
}

// IngestResponse acknowledges an accepted ingestion.
type IngestResponse struct {
	JobID uuid.UUID `json:"job_id"`
}

// JobResponse is the wire form of an ingestion job status.
type JobResponse struct {
	ID         uuid.UUID `json:"id"`
	Status     string    `json:"status"`
	SetName    string    `json:"set_name"`
	SourceType string    `json:"source_type"`
	SetID      uuid.UUID `json:"set_id,omitempty"`
	WordCount  int       `json:"word_count,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StartLearningRequest selects the set to study.
type StartLearningRequest struct {
	SetID string `json:"set_id" validate:"required,uuid"`
}

// AnswerRequest reports the outcome of the current card or question. For
// a learning session Correct is required; for a quiz Selected carries the
// chosen option and correctness is judged server-side.
type AnswerRequest struct {
	Correct  *bool  `json:"correct,omitempty"`
	Selected string `json:"selected,omitempty"`
}

// SessionStateResponse reports where the session machine stands.
type SessionStateResponse struct {
	State    string            `json:"state"`
	Index    int               `json:"index"`
	Total    int               `json:"total"`
	Word     *WordResponse     `json:"word,omitempty"`
	Question *QuestionResponse `json:"question,omitempty"`
}

// QuestionResponse is the wire form of a quiz question.
type QuestionResponse struct {
	Term    string   `json:"term"`
	Options []string `json:"options"`
	Context string   `json:"context,omitempty"`
}

// SummaryResponse is the wire form of a finished session's summary.
type SummaryResponse struct {
	Total     int            `json:"total"`
	Correct   int            `json:"correct"`
	Incorrect int            `json:"incorrect"`
	Accuracy  int            `json:"accuracy"`
	Missed    []WordResponse `json:"missed"`
}

// EligibilityResponse reports quiz gate status.
type EligibilityResponse struct {
	Eligible bool `json:"eligible"`
	Needed   int  `json:"needed"`
}

// SpeakRequest carries the text to pronounce.
type SpeakRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

func wordToResponse(w *domain.WordItem) WordResponse {
	resp := WordResponse{
		ID:           w.ID,
		Term:         w.Term,
		Definition:   w.Definition,
		Phonetic:     w.Phonetic,
		Example:      w.Example,
		MasteryLevel: w.MasteryLevel,
	}
	if !w.LastMemorizedAt.IsZero() {
		t := w.LastMemorizedAt
		resp.LastMemorizedAt = &t
	}
	return resp
}

func wordsToResponse(words []*domain.WordItem) []WordResponse {
	out := make([]WordResponse, 0, len(words))
	for _, w := range words {
		out = append(out, wordToResponse(w))
	}
	return out
}

func setToResponse(s *domain.StudySet, includeWords bool) SetResponse {
	resp := SetResponse{
		ID:        s.ID,
		Name:      s.Name,
		WordCount: s.WordCount,
		Type:      string(s.Type),
		CreatedAt: s.CreatedAt,
	}
	if includeWords {
		resp.Words = wordsToResponse(s.Words)
	}
	return resp
}

func jobToResponse(j task.Job) JobResponse {
	return JobResponse{
		ID:         j.ID,
		Status:     string(j.Status),
		SetName:    j.SetName,
		SourceType: j.SourceType,
		SetID:      j.SetID,
		WordCount:  j.WordCount,
		Error:      j.Error,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
}
