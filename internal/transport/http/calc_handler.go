package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "hprcalc/internal/errors"
	"hprcalc/internal/exporter"
)

// CalcHandler serves calculation results and their exports.
type CalcHandler struct {
	service      CalcServiceInterface
	csv          *exporter.CSVWriter
	excel        *exporter.ExcelWriter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCalcHandler creates a calculation handler.
func NewCalcHandler(service CalcServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CalcHandler {
	if logger == nil {
		logger = slog.Default()
	}
	csv := exporter.NewCSVWriter(logger)
	csv.BOMPrefix = true
	return &CalcHandler{
		service:      service,
		csv:          csv,
		excel:        exporter.NewExcelWriter(logger),
		logger:       logger.With(slog.String("component", "calc_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the calculation routes.
func (h *CalcHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/", h.GetResults)
	r.Get("/export", h.ExportResults)
	return r
}

// GetResults recomputes and returns the current result rows and totals.
// Recalculation is cheap and stateless, so every request computes fresh.
func (h *CalcHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Calculate(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// ExportResults streams the results as CSV (default) or XLSX, selected by the
// format query parameter.
func (h *CalcHandler) ExportResults(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	result, err := h.service.Calculate(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	stamp := time.Now().Format("2006-01-02")
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="hprcalc-results-%s.csv"`, stamp))
		if err := h.csv.Write(w, result); err != nil {
			h.logger.ErrorContext(r.Context(), "csv export failed", slog.String("error", err.Error()))
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="hprcalc-results-%s.xlsx"`, stamp))
		if err := h.excel.Write(w, result); err != nil {
			h.logger.ErrorContext(r.Context(), "xlsx export failed", slog.String("error", err.Error()))
		}
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", fmt.Sprintf("Unsupported export format: %s", format)))
	}
}
