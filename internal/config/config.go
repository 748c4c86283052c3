// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the AirLens API.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Env is the deployment environment (development, production).
	Env string

	// WeatherAPIKey authenticates against WeatherAPI.com.
	WeatherAPIKey string

	// GeminiAPIKey authenticates against the Generative Language API.
	GeminiAPIKey string

	// CacheTTL is how long air quality records stay fresh.
	CacheTTL time.Duration

	// OTLPEndpoint is the OpenTelemetry collector address.
	OTLPEndpoint string

	// TelemetryEnabled turns on OTLP trace and metric export.
	TelemetryEnabled bool

	// LogLevel sets the zerolog level (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() Config {
	return Config{
		Port:             getEnv("APP_PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		WeatherAPIKey:    getEnv("WEATHER_API_KEY", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		CacheTTL:         getEnvDuration("CACHE_TTL", 5*time.Minute),
		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: getEnvBool("OTEL_ENABLED", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
