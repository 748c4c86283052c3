package report

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/airlens/airlens/internal/aqi"
	"github.com/airlens/airlens/internal/provider/weatherapi"
	"github.com/airlens/airlens/internal/telemetry"
)

// Upstream fetches raw forecast data for a place query.
type Upstream interface {
	Forecast(ctx context.Context, query string) (*weatherapi.Forecast, error)
	Name() string
}

// AdapterConfig holds configuration for the Adapter.
type AdapterConfig struct {
	// Upstream is the weather/pollution provider client (required).
	Upstream Upstream

	// Logger for adapter operations.
	Logger zerolog.Logger

	// Metrics records provider call outcomes (optional).
	Metrics *telemetry.ProviderMetrics
}

// Adapter maps the upstream provider's schema into the internal record
// schema. Upstream failures never propagate as errors: they are converted
// into the fallback payload and logged with city context. The only error the
// adapter reports is a missing API key, which is a configuration problem the
// caller must surface explicitly.
type Adapter struct {
	upstream Upstream
	logger   zerolog.Logger
	metrics  *telemetry.ProviderMetrics
}

// NewAdapter creates an Adapter.
func NewAdapter(cfg AdapterConfig) *Adapter {
	return &Adapter{
		upstream: cfg.Upstream,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// Fetch retrieves and normalizes data for one place query. The query may be
// a city name or a verbatim "lat,lon" pair.
func (a *Adapter) Fetch(ctx context.Context, query string) (Payload, error) {
	start := time.Now()

	forecast, err := a.upstream.Forecast(ctx, query)
	a.metrics.RecordRequest(a.upstream.Name(), time.Since(start), err != nil)

	if err != nil {
		if errors.Is(err, weatherapi.ErrMissingAPIKey) {
			return Payload{}, err
		}

		a.logger.Error().
			Err(err).
			Str("query", query).
			Msg("upstream fetch failed, serving fallback payload")
		return FallbackPayload(), nil
	}

	return a.toPayload(forecast), nil
}

// toPayload normalizes a validated upstream forecast.
func (a *Adapter) toPayload(forecast *weatherapi.Forecast) Payload {
	currentPM25 := forecast.AirQuality.PM25

	return Payload{
		AQI:           aqi.FromPM25(currentPM25),
		MainPollutant: "PM2.5",
		Pollutants: Pollutants{
			PM25: roundInt(forecast.AirQuality.PM25),
			PM10: roundInt(forecast.AirQuality.PM10),
			NO2:  roundInt(forecast.AirQuality.NO2),
			SO2:  roundInt(forecast.AirQuality.SO2),
			CO:   roundInt(forecast.AirQuality.CO),
			O3:   roundInt(forecast.AirQuality.O3),
		},
		Weather: Weather{
			TempC:       roundInt(forecast.TempC),
			HumidityPct: forecast.Humidity,
			WindKph:     roundInt(forecast.WindKph),
			Condition:   aqi.NormalizeCondition(forecast.ConditionText),
		},
		History:      buildHistory(forecast.Hours, currentPM25),
		DataSource:   weatherapi.DataSource,
		LocationName: forecast.LocationName,
		Region:       forecast.Region,
	}
}

// buildHistory maps the day's hourly samples through the AQI calculator,
// keeping every second hour to bound payload size. Hours without their own
// PM2.5 reading approximate with the current one.
func buildHistory(hours []weatherapi.Hour, currentPM25 float64) []HistoryPoint {
	history := make([]HistoryPoint, 0, (len(hours)+1)/2)

	for i, h := range hours {
		if i%2 != 0 {
			continue
		}

		pm25 := h.PM25
		if pm25 == 0 {
			pm25 = currentPM25
		}

		history = append(history, HistoryPoint{
			Time: clockOf(h.Time),
			AQI:  aqi.FromPM25(pm25),
		})
	}

	return history
}

// clockOf extracts "HH:MM" from a "YYYY-MM-DD HH:MM" timestamp.
func clockOf(ts string) string {
	if _, clock, found := strings.Cut(ts, " "); found {
		return clock
	}
	return ts
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
