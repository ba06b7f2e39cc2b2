package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/fretbase/guitar-registry/pkg/apperrors"
	"github.com/fretbase/guitar-registry/pkg/config"
	"github.com/fretbase/guitar-registry/pkg/models"
	"github.com/fretbase/guitar-registry/pkg/search"
	"github.com/fretbase/guitar-registry/pkg/services"
)

// ModelSearchResponse is the payload of GET /api/search/models.
type ModelSearchResponse struct {
	Models []models.ModelResult `json:"models"`
	search.Meta
}

// InstrumentSearchResponse is the payload of GET /api/search/instruments.
type InstrumentSearchResponse struct {
	IndividualGuitars []models.InstrumentResult `json:"individual_guitars"`
	search.Meta
}

// SearchHandler serves the registry's search endpoints.
type SearchHandler struct {
	modelSearch      services.ModelSearchService
	instrumentSearch services.InstrumentSearchService
	cfg              config.SearchConfig
	logger           *zap.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(
	modelSearch services.ModelSearchService,
	instrumentSearch services.InstrumentSearchService,
	cfg config.SearchConfig,
	logger *zap.Logger,
) *SearchHandler {
	return &SearchHandler{
		modelSearch:      modelSearch,
		instrumentSearch: instrumentSearch,
		cfg:              cfg,
		logger:           logger,
	}
}

// RegisterRoutes registers the search routes on the given mux.
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search/models", h.SearchModels)
	mux.HandleFunc("GET /api/search/instruments", h.SearchInstruments)
}

// SearchModels handles GET /api/search/models.
func (h *SearchHandler) SearchModels(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	modelName := strings.TrimSpace(values.Get("model_name"))
	if modelName == "" {
		h.badRequest(w, "model_name parameter is required")
		return
	}

	year, err := yearParam(values, "year")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	page, pageSize, err := pageParams(values, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	results, meta, err := h.modelSearch.SearchModels(r.Context(), services.ModelSearchParams{
		ModelName:        modelName,
		ManufacturerName: strings.TrimSpace(values.Get("manufacturer_name")),
		Year:             year,
		Page:             page,
		PageSize:         pageSize,
	})
	if err != nil {
		h.searchError(w, "model search failed", "An error occurred while searching models", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ModelSearchResponse{Models: results, Meta: meta}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SearchInstruments handles GET /api/search/instruments.
func (h *SearchHandler) SearchInstruments(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	unknownSerial, err := queryBool(values, "unknown_serial")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	yearEstimate, err := yearParam(values, "year_estimate")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	page, pageSize, err := pageParams(values, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	params := services.InstrumentSearchParams{
		SerialNumber:     strings.TrimSpace(values.Get("serial_number")),
		ModelName:        strings.TrimSpace(values.Get("model_name")),
		ManufacturerName: strings.TrimSpace(values.Get("manufacturer_name")),
		YearEstimate:     yearEstimate,
		Page:             page,
		PageSize:         pageSize,
	}
	if unknownSerial != nil {
		params.UnknownSerial = *unknownSerial
	}

	results, meta, err := h.instrumentSearch.SearchInstruments(r.Context(), params)
	if err != nil {
		h.searchError(w, "instrument search failed", "An error occurred while searching instruments", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, InstrumentSearchResponse{IndividualGuitars: results, Meta: meta}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *SearchHandler) badRequest(w http.ResponseWriter, message string) {
	if err := ErrorResponse(w, http.StatusBadRequest, "Bad Request", message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// searchError maps resolver failures to responses: validation errors carry
// their message back as a 400; anything else is logged with its cause and
// returned as a generic 500.
func (h *SearchHandler) searchError(w http.ResponseWriter, logMsg, publicMsg string, err error) {
	if apperrors.IsValidation(err) {
		h.badRequest(w, err.Error())
		return
	}

	h.logger.Error(logMsg, zap.Error(err))
	if err := ErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", publicMsg); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
