package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "hprcalc/internal/errors"
	"hprcalc/internal/validation"
	"hprcalc/pkg/contracts/domain"
)

// DatasetHandler handles HPR file uploads and dataset inspection.
type DatasetHandler struct {
	service        DatasetServiceInterface
	validator      *validation.UploadValidator
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(service DatasetServiceInterface, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetHandler{
		service:        service,
		validator:      validation.NewUploadValidator(maxUploadBytes, logger),
		logger:         logger.With(slog.String("component", "dataset_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetDataset)
	r.Post("/files", h.UploadFiles)
	r.Delete("/", h.ClearDataset)
	return r
}

// DatasetSummary is the response shape for dataset inspection.
type DatasetSummary struct {
	Files    []domain.SourceFile `json:"files"`
	Records  int                 `json:"records"`
	LogCount int                 `json:"log_count"`
}

// GetDataset returns the uploaded files and record counts.
func (h *DatasetHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot()
	render.JSON(w, r, DatasetSummary{
		Files:    snap.Files,
		Records:  len(snap.Records),
		LogCount: snap.LogCount,
	})
}

// UploadFiles accepts one or more HPR files as multipart form data under the
// "files" field. Files that fail to parse contribute zero records; the
// response reports per-file results and the batch always succeeds.
func (h *DatasetHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("files", "At least one file is required"))
		return
	}

	results := make([]domain.SourceFile, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InternalWithError(err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InternalWithError(err))
			return
		}
		if err := h.validator.Validate(fh.Filename, data); err != nil {
			results = append(results, domain.SourceFile{Name: fh.Filename, ParseErr: err.Error()})
			continue
		}
		results = append(results, h.service.AddFile(r.Context(), fh.Filename, data))
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, results)
}

// ClearDataset discards all uploaded records.
func (h *DatasetHandler) ClearDataset(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(r.Context())
	render.NoContent(w, r)
}
