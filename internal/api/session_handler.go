package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/finchley/lexi/internal/api/shared"
	"github.com/finchley/lexi/internal/generation"
	"github.com/finchley/lexi/internal/quiz"
	"github.com/finchley/lexi/internal/session"
	"github.com/finchley/lexi/internal/store"
)

// SessionHandler drives the one active session through its HTTP surface.
type SessionHandler struct {
	controller  *session.Controller
	library     store.LibraryStore
	gate        *quiz.Gate
	provider    generation.ContentProvider
	quizTimeout time.Duration
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewSessionHandler creates a SessionHandler. quizTimeout bounds the
// synchronous quiz generation call; zero falls back to 60 seconds.
func NewSessionHandler(
	controller *session.Controller,
	library store.LibraryStore,
	gate *quiz.Gate,
	provider generation.ContentProvider,
	quizTimeout time.Duration,
	logger *slog.Logger,
) *SessionHandler {
	if quizTimeout <= 0 {
		quizTimeout = 60 * time.Second
	}
	return &SessionHandler{
		controller:  controller,
		library:     library,
		gate:        gate,
		provider:    provider,
		quizTimeout: quizTimeout,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "session_handler")),
	}
}

// GetState handles GET /api/sessions requests.
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse())
}

// StartLearning handles POST /api/sessions/learning requests. The chosen
// set's words are loaded into a fresh learning session.
func (h *SessionHandler) StartLearning(w http.ResponseWriter, r *http.Request) {
	var req StartLearningRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	setID, err := uuid.Parse(req.SetID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "set_id has invalid format")
		return
	}

	set, err := h.library.Get(r.Context(), setID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.controller.StartLearning(set.Words); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.Info("learning session started",
		slog.String("set_id", setID.String()),
		slog.Int("word_count", set.WordCount))

	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse())
}

// StartQuiz handles POST /api/sessions/quiz requests. The eligibility
// gate picks the sample; question generation runs synchronously under a
// bounded timeout.
func (h *SessionHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	sample, err := h.gate.SampleForQuiz()
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	terms := make([]string, 0, len(sample))
	for _, word := range sample {
		terms = append(terms, word.Term)
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.quizTimeout)
	defer cancel()

	questions, err := h.provider.GenerateQuiz(ctx, terms)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.controller.StartQuiz(questions); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.Info("quiz session started", slog.Int("question_count", len(questions)))
	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse())
}

// Answer handles POST /api/sessions/answer requests. In a learning
// session the body carries the self-assessed correct flag; in a quiz it
// carries the selected option and the server judges it.
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	var err error
	switch h.controller.State() {
	case session.StateLearning:
		if req.Correct == nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "correct is required in a learning session")
			return
		}
		err = h.controller.Answer(r.Context(), *req.Correct)
	case session.StateTesting:
		if req.Selected == "" {
			shared.RespondWithError(w, r, http.StatusBadRequest, "selected is required in a quiz session")
			return
		}
		err = h.controller.AnswerQuiz(r.Context(), req.Selected)
	default:
		err = session.ErrWrongState
	}

	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse())
}

// GetSummary handles GET /api/sessions/summary requests.
func (h *SessionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.controller.Summary()
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{
		Total:     summary.Stats.Total,
		Correct:   summary.Stats.Correct,
		Incorrect: summary.Stats.Incorrect,
		Accuracy:  summary.Accuracy,
		Missed:    wordsToResponse(summary.Missed),
	})
}

// Review handles POST /api/sessions/review requests, restarting learning
// over the finished session's missed words.
func (h *SessionHandler) Review(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.ReviewMissed(); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse())
}

// Finish handles POST /api/sessions/finish requests, returning the
// machine to landing from any state.
func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.controller.Finish()
	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse())
}

// Eligibility handles GET /api/quiz/eligibility requests.
func (h *SessionHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, EligibilityResponse{
		Eligible: h.gate.IsEligible(),
		Needed:   h.gate.Needed(),
	})
}

// stateResponse snapshots the session machine for the client. The quiz
// answer never rides along; only the term, options and context do.
func (h *SessionHandler) stateResponse() SessionStateResponse {
	index, total := h.controller.Position()
	resp := SessionStateResponse{
		State: string(h.controller.State()),
		Index: index,
		Total: total,
	}

	switch h.controller.State() {
	case session.StateLearning:
		if word, err := h.controller.CurrentWord(); err == nil {
			wr := wordToResponse(word)
			resp.Word = &wr
		}
	case session.StateTesting:
		if q, err := h.controller.CurrentQuestion(); err == nil {
			resp.Question = &QuestionResponse{
				Term:    q.Term,
				Options: q.Options,
				Context: q.Context,
			}
		}
	}

	return resp
}
