package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "hprcalc/internal/errors"
	"hprcalc/pkg/contracts/domain"
)

// AdminHandler manages the persisted tables: calculation settings, the
// divisor table and the legacy price table.
type AdminHandler struct {
	service      CalcServiceInterface
	validate     *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(service CalcServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		service:      service,
		validate:     validator.New(),
		logger:       logger.With(slog.String("component", "admin_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the admin routes.
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/settings", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/", h.GetSettings)
		r.Put("/", h.UpdateSettings)
	})
	r.Route("/divisors", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/", h.GetDivisors)
		r.Put("/", h.UpdateDivisors)
	})
	r.Route("/legacy-prices", func(r chi.Router) {
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/", h.GetLegacyPrices)
		r.With(render.SetContentType(render.ContentTypeJSON)).Put("/", h.UpdateLegacyPrices)
		r.With(render.SetContentType(render.ContentTypeJSON)).Post("/import", h.ImportLegacyPrices)
		r.Get("/export", h.ExportLegacyPrices)
	})
	return r
}

// GetSettings returns the persisted calculation settings.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Settings(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, settings)
}

// UpdateSettings validates and persists new calculation settings.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.CalcSettings
	if err := render.DecodeJSON(r.Body, &settings); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(settings); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "VALIDATION_FAILED", "Settings validation failed", err.Error()))
		return
	}
	if err := h.service.UpdateSettings(r.Context(), settings); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, settings)
}

// GetDivisors returns the persisted divisor table.
func (h *AdminHandler) GetDivisors(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Divisors(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

// UpdateDivisors persists the divisor table. Unknown species keys are
// rejected; non-positive divisor values are allowed and mean "unpriced".
func (h *AdminHandler) UpdateDivisors(w http.ResponseWriter, r *http.Request) {
	var table domain.DivisorTable
	if err := render.DecodeJSON(r.Body, &table); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	for sp := range table.Divisors {
		if !sp.IsValid() {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("divisors", "Unknown species category: "+string(sp)))
			return
		}
	}
	if err := h.service.UpdateDivisors(r.Context(), table); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

// GetLegacyPrices returns the persisted legacy price table.
func (h *AdminHandler) GetLegacyPrices(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.LegacyPrices(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

// UpdateLegacyPrices persists the full legacy price table.
func (h *AdminHandler) UpdateLegacyPrices(w http.ResponseWriter, r *http.Request) {
	var table domain.LegacyPriceTable
	if err := render.DecodeJSON(r.Body, &table); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if len(table.Prices) != len(domain.LegacyBreakpoints) {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("prices", "Price list length must match the breakpoint count"))
		return
	}
	if err := h.service.UpdateLegacyPrices(r.Context(), table); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

// ImportRequest is the bulk-paste import payload.
type ImportRequest struct {
	Text string `json:"text"`
}

// ImportResponse reports the import outcome.
type ImportResponse struct {
	Updated bool `json:"updated"`
}

// ImportLegacyPrices runs the heuristic paste importer. A paste that updates
// nothing is a 422 so clients know to keep the paste panel open.
func (h *AdminHandler) ImportLegacyPrices(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	updated, err := h.service.ImportLegacyPrices(r.Context(), req.Text)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if !updated {
		h.errorHandler.HandleError(w, r, apierrors.ErrImportNoEntries)
		return
	}
	render.JSON(w, r, ImportResponse{Updated: true})
}

// ExportLegacyPrices returns the table as pasteable tab-separated text.
func (h *AdminHandler) ExportLegacyPrices(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.ExportLegacyPrices(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}
