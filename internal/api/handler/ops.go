package handler

import (
	"net/http"
	"time"

	"github.com/airlens/airlens/internal/api/models"
	"github.com/airlens/airlens/internal/api/response"
	"github.com/airlens/airlens/internal/provider/weatherapi"
	"github.com/airlens/airlens/internal/report"
)

// CacheInspector exposes record cache state and control.
type CacheInspector interface {
	CacheStats() report.CacheStats
	InvalidateCache()
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version           string
	buildTime         string
	cache             CacheInspector
	weatherConfigured bool
}

// NewOpsHandler creates a new OpsHandler. weatherConfigured reports whether
// the weather provider has an API key; without one the service degrades to
// fallback reports.
func NewOpsHandler(version, buildTime string, cache CacheInspector, weatherConfigured bool) *OpsHandler {
	return &OpsHandler{
		version:           version,
		buildTime:         buildTime,
		cache:             cache,
		weatherConfigured: weatherConfigured,
	}
}

// HealthCheck handles GET /api/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /api/ops/status - cache and provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	stats := h.cache.CacheStats()

	weather := models.ProviderStatus{Provider: weatherapi.ProviderName, Status: models.HealthStatusOK}
	overall := models.HealthStatusOK
	if !h.weatherConfigured {
		detail := "API key not configured, serving fallback reports"
		weather.Status = models.HealthStatusFail
		weather.Detail = &detail
		overall = models.HealthStatusDegraded
	}

	status := models.SystemStatus{
		Status: overall,
		Time:   models.Timestamp(time.Now()),
		Cache: models.CacheStatus{
			Entries:      stats.Entries,
			FreshEntries: stats.FreshEntries,
			TTL:          stats.TTL.String(),
		},
		Providers: []models.ProviderStatus{weather},
	}
	response.JSON(w, r, http.StatusOK, status)
}

// InvalidateCache handles POST /api/ops/cache/invalidate.
func (h *OpsHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.cache.InvalidateCache()
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "cache invalidated"})
}
