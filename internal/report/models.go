// Package report produces and caches standardized air quality records for
// downstream consumers.
package report

import (
	"errors"
	"time"

	"github.com/airlens/airlens/internal/aqi"
	"github.com/airlens/airlens/internal/city"
)

// Service errors.
var (
	// ErrEmptyQuery indicates the caller supplied no place query.
	ErrEmptyQuery = errors.New("query is required")
)

// Pollutants holds pollutant concentrations rounded to integers at the
// adapter boundary.
type Pollutants struct {
	PM25 int `json:"pm25"`
	PM10 int `json:"pm10"`
	NO2  int `json:"no2"`
	SO2  int `json:"so2"`
	CO   int `json:"co"`
	O3   int `json:"o3"`
}

// Weather holds the normalized weather observation for a record.
type Weather struct {
	TempC       int           `json:"temp"`
	HumidityPct int           `json:"humidity"`
	WindKph     int           `json:"windSpeed"`
	Condition   aqi.Condition `json:"condition"`
}

// HistoryPoint is one sampled AQI reading from the source day.
type HistoryPoint struct {
	Time string `json:"time"` // "HH:MM"
	AQI  int    `json:"aqi"`
}

// Record is the standardized air quality record, the unit produced and
// cached by this package. Records are replaced wholesale on refresh, never
// mutated in place.
type Record struct {
	city.Identity

	AQI           int            `json:"aqi"`
	Category      aqi.Category   `json:"category"`
	MainPollutant string         `json:"mainPollutant"`
	Pollutants    Pollutants     `json:"pollutants"`
	Weather       Weather        `json:"weather"`
	History       []HistoryPoint `json:"history"`
	DataSource    string         `json:"dataSource"`
	IsFallback    bool           `json:"isFallback"`
	FetchedAt     time.Time      `json:"fetchedAt"`
}

// Payload is the adapter's output: a record without its identity, which the
// orchestrator attaches. LocationName and Region carry the provider-reported
// place details, preferred over caller-supplied defaults when present.
type Payload struct {
	AQI           int
	MainPollutant string
	Pollutants    Pollutants
	Weather       Weather
	History       []HistoryPoint
	DataSource    string
	IsFallback    bool
	LocationName  string
	Region        string
}

// FallbackPayload returns the well-formed all-zero payload substituted when
// the upstream source cannot be reached.
func FallbackPayload() Payload {
	return Payload{
		MainPollutant: "N/A",
		Weather:       Weather{Condition: aqi.ConditionClear},
		History:       []HistoryPoint{},
		IsFallback:    true,
	}
}
