package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/finchley/lexi/internal/api/shared"
	"github.com/finchley/lexi/internal/domain"
	"github.com/finchley/lexi/internal/events"
	"github.com/finchley/lexi/internal/task"
)

// maxUploadBytes bounds ingestion uploads (spreadsheets, images, HTML).
const maxUploadBytes = 16 << 20

// IngestHandler accepts ingestion requests and reports job status.
// Ingestion itself runs in the background; the handler only registers a
// job and emits the request event.
type IngestHandler struct {
	registry  *task.Registry
	emitter   events.EventEmitter
	validator *validator.Validate
	logger    *slog.Logger
}

// NewIngestHandler creates an IngestHandler.
func NewIngestHandler(registry *task.Registry, emitter events.EventEmitter, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{
		registry:  registry,
		emitter:   emitter,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "ingest_handler")),
	}
}

// CreateIngestion handles POST /api/ingest requests. A JSON body starts a
// text ingestion; a multipart form with a file field starts a document,
// spreadsheet or image ingestion depending on the form's type field.
// Responds 202 with the job ID to poll.
func (h *IngestHandler) CreateIngestion(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")

	var source task.IngestionSource
	if strings.HasPrefix(contentType, "multipart/form-data") {
		src, err := h.parseUpload(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		source = src
	} else {
		var req IngestTextRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
		source = task.IngestionSource{
			Name: req.Name,
			Type: domain.SetTypeText,
			Text: req.Text,
		}
	}

	jobID := h.registry.Create(source.Name, string(source.Type))

	event, err := task.NewIngestionEvent(jobID, source)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	h.logger.Info("ingestion accepted",
		slog.String("job_id", jobID.String()),
		slog.String("set_name", source.Name),
		slog.String("source_type", string(source.Type)))

	shared.RespondWithJSON(w, r, http.StatusAccepted, IngestResponse{JobID: jobID})
}

// GetJob handles GET /api/ingest/{id} requests.
func (h *IngestHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.registry.Get(id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(job))
}

// parseUpload reads a multipart ingestion request: name and type fields
// plus a file part.
func (h *IngestHandler) parseUpload(r *http.Request) (task.IngestionSource, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return task.IngestionSource{}, errors.New("could not parse upload")
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return task.IngestionSource{}, errors.New("name is required")
	}

	setType := domain.SetType(strings.TrimSpace(r.FormValue("type")))
	switch setType {
	case domain.SetTypeDoc, domain.SetTypeExcel, domain.SetTypeImage:
	default:
		return task.IngestionSource{}, errors.New("type must be doc, excel or image")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return task.IngestionSource{}, errors.New("file is required")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file", slog.String("error", closeErr.Error()))
		}
	}()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return task.IngestionSource{}, errors.New("could not read uploaded file")
	}
	if len(data) == 0 {
		return task.IngestionSource{}, errors.New("uploaded file is empty")
	}

	return task.IngestionSource{
		Name:     name,
		Type:     setType,
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
	}, nil
}
