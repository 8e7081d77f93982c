package api

import (
	"log/slog"
	"net/http"

	"github.com/finchley/lexi/internal/api/shared"
	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/ingest"
	"github.com/finchley/lexi/internal/store"
)

// SetHandler handles study set library requests.
type SetHandler struct {
	library store.LibraryStore
	logger  *slog.Logger
}

// NewSetHandler creates a SetHandler.
func NewSetHandler(library store.LibraryStore, logger *slog.Logger) *SetHandler {
	return &SetHandler{
		library: library,
		logger:  logger.With(slog.String("component", "set_handler")),
	}
}

// CreateSet handles POST /api/sets requests. The words are normalized
// and deduplicated the same way ingested batches are; a name collision
// replaces the existing set.
func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var req CreateSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records := make([]domain.WordRecord, 0, len(req.Words))
	for _, word := range req.Words {
		records = append(records, domain.WordRecord{
			Term:       word.Term,
			Definition: word.Definition,
			Phonetic:   word.Phonetic,
			Example:    word.Example,
		})
	}

	words := domain.NormalizeRecords(records)
	set, err := domain.NewStudySet(req.Name, domain.SetTypeText, words)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.library.Save(r.Context(), set); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.Info("set saved",
		slog.String("set_id", set.ID.String()),
		slog.Int("word_count", len(set.Words)))
	shared.RespondWithJSON(w, r, http.StatusCreated, setToResponse(set, true))
}

// ListSets handles GET /api/sets requests. Word payloads are omitted
// from the listing; fetch a single set to see its words.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets := h.library.List(r.Context())

	response := make([]SetResponse, 0, len(sets))
	for _, s := range sets {
		response = append(response, setToResponse(s, false))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetSet handles GET /api/sets/{id} requests.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	set, err := h.library.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, setToResponse(set, true))
}

// DeleteSet handles DELETE /api/sets/{id} requests. Deleting an absent
// set succeeds, matching the library's idempotent delete.
func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.library.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// CreateDemoSet handles POST /api/sets/demo requests. It installs a
// fresh copy of the built-in starter set.
func (h *SetHandler) CreateDemoSet(w http.ResponseWriter, r *http.Request) {
	set := ingest.DemoSet()

	if err := h.library.Save(r.Context(), set); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.Info("demo set installed", slog.String("set_id", set.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, setToResponse(set, true))
}
