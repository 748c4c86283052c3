// Package handler provides HTTP handlers for the AirLens API.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/airlens/airlens/internal/api/response"
	"github.com/airlens/airlens/internal/provider/weatherapi"
	"github.com/airlens/airlens/internal/report"
)

// RecordService provides air quality records.
type RecordService interface {
	GetAll(ctx context.Context) ([]report.Record, error)
	GetByQuery(ctx context.Context, query string) (report.Record, error)
}

// CityHandler serves the air quality record endpoints.
type CityHandler struct {
	records RecordService
}

// NewCityHandler creates a new CityHandler.
func NewCityHandler(records RecordService) *CityHandler {
	return &CityHandler{records: records}
}

// ListCities handles GET /api/cities - records for every tracked city.
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.GetAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, records)
}

// GetCity handles GET /api/weather/{query} - a record for one city or a
// "lat,lon" coordinate pair.
func (h *CityHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	record, err := h.records.GetByQuery(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, record)
}

func (h *CityHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, report.ErrEmptyQuery):
		response.BadRequest(w, r, "city query is required", nil)
	case errors.Is(err, weatherapi.ErrMissingAPIKey):
		response.InternalError(w, r, "Weather API key not configured")
	default:
		response.InternalError(w, r, "failed to fetch air quality data")
	}
}
