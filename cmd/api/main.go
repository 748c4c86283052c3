// Package main provides the entrypoint for the AirLens API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/airlens/airlens/internal/api"
	"github.com/airlens/airlens/internal/api/middleware"
	"github.com/airlens/airlens/internal/chat"
	"github.com/airlens/airlens/internal/chat/gemini"
	"github.com/airlens/airlens/internal/city"
	"github.com/airlens/airlens/internal/config"
	"github.com/airlens/airlens/internal/provider/weatherapi"
	"github.com/airlens/airlens/internal/report"
	"github.com/airlens/airlens/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "airlens-api"

	// Load a local .env when present, environment variables take precedence
	_ = godotenv.Load()

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Env).
		Msg("starting AirLens API")

	if cfg.WeatherAPIKey == "" {
		log.Warn().Msg("WEATHER_API_KEY not set - weather endpoints will fail")
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set - chat endpoint will fail")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	// Initialize city directory and extractor
	directory := city.NewDirectory(city.DirectoryConfig{})
	extractor := city.NewExtractor(city.ExtractorConfig{Directory: directory})

	// Initialize weather provider and record service
	weatherClient := weatherapi.NewClient(weatherapi.ClientConfig{
		APIKey: cfg.WeatherAPIKey,
		Logger: log,
	})

	adapter := report.NewAdapter(report.AdapterConfig{
		Upstream: weatherClient,
		Logger:   log,
		Metrics:  providerMetrics,
	})

	recordService := report.NewService(report.ServiceConfig{
		Source:    adapter,
		Directory: directory,
		Logger:    log,
		CacheTTL:  cfg.CacheTTL,
		Metrics:   providerMetrics,
	})
	log.Info().
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("record service initialized")

	// Initialize chat service
	geminiClient := gemini.NewClient(gemini.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
		Logger: log,
	})

	chatService := chat.NewService(chat.ServiceConfig{
		Generator: geminiClient,
		Records:   recordService,
		Extractor: extractor,
		Logger:    log,
	})
	log.Info().Msg("chat service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:       Version,
		BuildTime:     BuildTime,
		Logger:        log,
		ServiceName:   serviceName,
		Metrics:       metrics,
		RecordService: recordService,
		ChatService:   chatService,
		Cache:         recordService,

		WeatherConfigured: cfg.WeatherAPIKey != "",
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
