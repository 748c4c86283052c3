// Package chat implements the air quality assistant, grounding model
// responses in live records when the user's message names a known place.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/airlens/airlens/internal/city"
	"github.com/airlens/airlens/internal/report"
)

// ErrEmptyMessage indicates the caller supplied no message.
var ErrEmptyMessage = errors.New("message is required")

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Records resolves place queries to air quality records.
type Records interface {
	GetByQuery(ctx context.Context, query string) (report.Record, error)
}

// ServiceConfig holds configuration for the chat service.
type ServiceConfig struct {
	// Generator is the language model client (required).
	Generator Generator

	// Records supplies live air quality data (required).
	Records Records

	// Extractor detects place names in user messages (required).
	Extractor *city.Extractor

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service answers user questions about air quality and weather. When a
// message names a recognizable city, the service fetches that city's record
// and injects it into the prompt so the model answers with real numbers
// instead of estimates.
type Service struct {
	generator Generator
	records   Records
	extractor *city.Extractor
	logger    zerolog.Logger
}

// NewService creates a chat service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		generator: cfg.Generator,
		records:   cfg.Records,
		extractor: cfg.Extractor,
		logger:    cfg.Logger,
	}
}

// Reply answers one user message.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	var contextBlock string
	var cityNoData bool

	detected, found := s.extractor.Extract(message)
	if found {
		record, err := s.records.GetByQuery(ctx, detected)
		switch {
		case err != nil:
			// Data problems degrade to a no-data reply rather than failing
			// the whole chat request.
			s.logger.Warn().
				Err(err).
				Str("city", detected).
				Msg("could not fetch record for detected city")
			cityNoData = true
		case record.IsFallback || record.AQI == 0:
			cityNoData = true
		default:
			contextBlock = renderRecord(detected, record)
		}
	}

	prompt := buildPrompt(message, detected, contextBlock, cityNoData)

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}
	return reply, nil
}

// renderRecord formats a record as the data block the model is instructed
// to quote from.
func renderRecord(cityName string, r report.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "REAL-TIME DATA for %s (just fetched from Weather API):\n", cityName)
	fmt.Fprintf(&b, "- Current AQI: %d (%s)\n", r.AQI, r.Category)
	fmt.Fprintf(&b, "- Main Pollutant: %s\n", r.MainPollutant)
	fmt.Fprintf(&b, "- PM2.5: %d µg/m³\n", r.Pollutants.PM25)
	fmt.Fprintf(&b, "- PM10: %d µg/m³\n", r.Pollutants.PM10)
	fmt.Fprintf(&b, "- NO₂: %d µg/m³\n", r.Pollutants.NO2)
	fmt.Fprintf(&b, "- SO₂: %d µg/m³\n", r.Pollutants.SO2)
	fmt.Fprintf(&b, "- CO: %d µg/m³\n", r.Pollutants.CO)
	fmt.Fprintf(&b, "- O₃: %d µg/m³\n", r.Pollutants.O3)
	fmt.Fprintf(&b, "- Temperature: %d°C\n", r.Weather.TempC)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", r.Weather.HumidityPct)
	fmt.Fprintf(&b, "- Wind Speed: %d km/h\n", r.Weather.WindKph)
	fmt.Fprintf(&b, "- Weather Condition: %s\n", r.Weather.Condition)
	return b.String()
}

// buildPrompt assembles the single-turn prompt sent to the model.
func buildPrompt(message, detected, contextBlock string, cityNoData bool) string {
	var suffix string
	switch {
	case contextBlock != "":
		suffix = "IMPORTANT: Use the exact numbers from the real-time data above. " +
			"Do not make up or estimate values. Format the response clearly with " +
			"the actual AQI number, pollutant values, and weather conditions."
	case cityNoData && detected != "":
		suffix = fmt.Sprintf("Note: I tried to fetch real-time data for %q but the "+
			"Weather API doesn't have data for this location. Please let the user "+
			"know we couldn't get real-time data for this specific city, and provide "+
			"general air quality information or suggest they try a nearby major city.", detected)
	default:
		suffix = "If the user asks about a specific city's current AQI, let them " +
			"know you can provide real-time data for major Indian cities."
	}

	var b strings.Builder
	b.WriteString("You are an Air Quality and Weather Assistant for India. ")
	b.WriteString("You provide accurate, helpful information about air quality, pollution levels, and weather conditions.\n\n")
	if contextBlock != "" {
		b.WriteString("USE THIS REAL-TIME DATA IN YOUR RESPONSE (this is live data, not estimates):\n")
		b.WriteString(contextBlock)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User question: %s\n\n", message)
	b.WriteString(suffix)
	return b.String()
}
