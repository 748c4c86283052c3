// Package api provides the HTTP API for AirLens.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/airlens/airlens/internal/api/handler"
	"github.com/airlens/airlens/internal/api/middleware"
	"github.com/airlens/airlens/internal/api/response"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version       string
	BuildTime     string
	Logger        zerolog.Logger
	ServiceName   string
	Metrics       *middleware.Metrics
	RecordService handler.RecordService
	ChatService   handler.ChatService
	Cache         handler.CacheInspector

	// WeatherConfigured reports whether the weather provider has an API
	// key. Surfaced through the ops status endpoint.
	WeatherConfigured bool
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "airlens-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // Reject non-JSON request bodies

	cityHandler := handler.NewCityHandler(cfg.RecordService)
	chatHandler := handler.NewChatHandler(cfg.ChatService)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Cache, cfg.WeatherConfigured)

	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no such endpoint")
	})

	r.Route("/api", func(r chi.Router) {
		// City and weather endpoints - standard rate limiting
		r.With(standardRateLimit).Get("/cities", cityHandler.ListCities)
		r.With(standardRateLimit).Get("/weather/{query}", cityHandler.GetCity)

		// Chat calls a paid model API per request - strict rate limiting
		r.With(expensiveRateLimit).Post("/chat", chatHandler.Chat)

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/status", opsHandler.SystemStatus)
			r.Post("/cache/invalidate", opsHandler.InvalidateCache)
		})
	})

	return r
}
