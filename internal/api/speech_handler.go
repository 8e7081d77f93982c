package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/finchley/lexi/internal/api/shared"
	"github.com/finchley/lexi/internal/speech"
)

// SpeechHandler triggers pronunciation of a word or phrase.
type SpeechHandler struct {
	speaker   speech.Speaker
	validator *validator.Validate
	logger    *slog.Logger
}

// NewSpeechHandler creates a SpeechHandler.
func NewSpeechHandler(speaker speech.Speaker, logger *slog.Logger) *SpeechHandler {
	return &SpeechHandler{
		speaker:   speaker,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "speech_handler")),
	}
}

// Speak handles POST /api/speech requests. Playback is fire-and-forget:
// the response goes out once the utterance has started.
func (h *SpeechHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req SpeakRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.speaker.Speak(r.Context(), req.Text); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, nil)
}
