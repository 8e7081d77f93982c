package api

import (
	"net/http"

	"github.com/finchley/lexi/internal/api/shared"
	"github.com/finchley/lexi/internal/store"
)

// ProgressHandler exposes the learner's long-term progress collections.
type ProgressHandler struct {
	progress store.ProgressStore
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(progress store.ProgressStore) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// GetHistory handles GET /api/progress/history requests. Entries come
// back most recently memorized first.
func (h *ProgressHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(h.progress.History()))
}

// GetMissed handles GET /api/progress/missed requests.
func (h *ProgressHandler) GetMissed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(h.progress.Missed()))
}
