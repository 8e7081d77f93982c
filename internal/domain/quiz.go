package domain

import (
	"errors"
	"strings"
)

// QuizOptionCount is the number of answer options every question carries,
// the correct answer included.
const QuizOptionCount = 4

// Quiz question validation errors
var (
	ErrQuestionTermEmpty    = errors.New("quiz question term cannot be empty")
	ErrQuestionAnswerEmpty  = errors.New("quiz question answer cannot be empty")
	ErrQuestionOptionCount  = errors.New("quiz question must carry exactly four options")
	ErrQuestionAnswerAbsent = errors.New("quiz question options must include the correct answer")
)

// QuizQuestion is a single multiple-choice item produced by the content
// provider. Questions reference words by term, not by ID: the engine
// resolves the original WordItem from history when an answer misses.
type QuizQuestion struct {
	Term    string   `json:"term"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"`
	Context string   `json:"context,omitempty"`
}

// Validate checks if the QuizQuestion has valid data.
func (q *QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Term) == "" {
		return ErrQuestionTermEmpty
	}

	if strings.TrimSpace(q.Answer) == "" {
		return ErrQuestionAnswerEmpty
	}

	if len(q.Options) != QuizOptionCount {
		return ErrQuestionOptionCount
	}

	for _, opt := range q.Options {
		if opt == q.Answer {
			return nil
		}
	}

	return ErrQuestionAnswerAbsent
}
