package api

import (
	"errors"
	"net/http"

	"github.com/finchley/lexi/internal/api/shared"
	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/generation"
	"github.com/finchley/lexi/internal/ingest"
	"github.com/finchley/lexi/internal/quiz"
	"github.com/finchley/lexi/internal/session"
	"github.com/finchley/lexi/internal/speech"
	"github.com/finchley/lexi/internal/store"
	"github.com/finchley/lexi/internal/task"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found
	case errors.Is(err, store.ErrSetNotFound),
		errors.Is(err, task.ErrJobNotFound):
		return http.StatusNotFound

	// Session state conflicts
	case errors.Is(err, session.ErrWrongState),
		errors.Is(err, session.ErrAnswerInFlight),
		errors.Is(err, session.ErrNothingToReview),
		errors.Is(err, quiz.ErrNotEligible):
		return http.StatusConflict

	// Bad requests
	case errors.Is(err, session.ErrNoWords),
		errors.Is(err, ingest.ErrNothingToIngest),
		errors.Is(err, speech.ErrEmptyText),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrSetNameEmpty),
		errors.Is(err, domain.ErrSetNoWords),
		errors.Is(err, domain.ErrSetInvalidType):
		return http.StatusBadRequest

	// Back-pressure
	case errors.Is(err, task.ErrQueueFull):
		return http.StatusTooManyRequests

	// Upstream generation failures
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrSetNotFound):
		return "Study set not found"
	case errors.Is(err, task.ErrJobNotFound):
		return "Ingestion job not found"
	case errors.Is(err, session.ErrWrongState):
		return "Operation not valid in the current session state"
	case errors.Is(err, session.ErrAnswerInFlight):
		return "Previous answer is still being processed"
	case errors.Is(err, session.ErrNothingToReview):
		return "No missed words to review"
	case errors.Is(err, session.ErrNoWords):
		return "Session needs at least one word"
	case errors.Is(err, quiz.ErrNotEligible):
		return "Not enough recently memorized words for a quiz"
	case errors.Is(err, ingest.ErrNothingToIngest):
		return "Source contained no usable terms"
	case errors.Is(err, speech.ErrEmptyText):
		return "Nothing to speak"
	case errors.Is(err, task.ErrQueueFull):
		return "Too many ingestions in progress, try again shortly"
	case errors.Is(err, generation.ErrContentBlocked):
		return "Content was blocked by the generation service"
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrInvalidResponse):
		return "Generation service is unavailable"
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrSetNameEmpty),
		errors.Is(err, domain.ErrSetNoWords),
		errors.Is(err, domain.ErrSetInvalidType):
		return "Invalid request data"
	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps an error to its status code and safe message
// and writes the response.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
