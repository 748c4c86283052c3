// Package weatherapi provides a client for the WeatherAPI.com forecast API.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/airlens/airlens/internal/provider/resilience"
)

const (
	// ProviderName identifies this provider.
	ProviderName = "weatherapi"

	// DataSource is the source label attached to records built from this
	// provider's data.
	DataSource = "WeatherAPI.com"

	// DefaultBaseURL is the WeatherAPI.com API base URL.
	DefaultBaseURL = "https://api.weatherapi.com/v1"
)

// Client errors.
var (
	// ErrMissingAPIKey indicates the API key is absent from configuration.
	ErrMissingAPIKey = errors.New("weather API key not configured")

	// ErrMalformedResponse indicates the upstream payload is missing
	// required fields.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the WeatherAPI.com client.
type ClientConfig struct {
	// APIKey is the WeatherAPI.com API key. Requests fail with
	// ErrMissingAPIKey when empty.
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client
	// with defaults is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a WeatherAPI.com API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new WeatherAPI.com client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.Config{
			Name:    ProviderName,
			Timeout: cfg.Timeout,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Forecast fetches the one-day forecast with air quality data for a query.
// The query is passed to the provider verbatim: it accepts either a place
// name or a "lat,lon" pair, so coordinate parsing is delegated upstream.
func (c *Client) Forecast(ctx context.Context, query string) (*Forecast, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	u := fmt.Sprintf("%s/forecast.json?key=%s&q=%s&days=1&aqi=yes",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var raw forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toForecast(&raw)
}

// toForecast validates the raw payload and maps it to the client's schema.
// Missing required fields fail closed rather than flowing zeros downstream.
func (c *Client) toForecast(raw *forecastResponse) (*Forecast, error) {
	if raw.Current == nil || raw.Current.AirQuality == nil {
		return nil, ErrMalformedResponse
	}

	forecast := &Forecast{
		LocationName:  raw.Location.Name,
		Region:        raw.Location.Region,
		TempC:         raw.Current.TempC,
		Humidity:      raw.Current.Humidity,
		WindKph:       raw.Current.WindKph,
		ConditionText: raw.Current.Condition.Text,
		AirQuality: AirQuality{
			PM25: raw.Current.AirQuality.PM25,
			PM10: raw.Current.AirQuality.PM10,
			NO2:  raw.Current.AirQuality.NO2,
			SO2:  raw.Current.AirQuality.SO2,
			CO:   raw.Current.AirQuality.CO,
			O3:   raw.Current.AirQuality.O3,
		},
	}

	if len(raw.Forecast.ForecastDay) > 0 {
		day := raw.Forecast.ForecastDay[0]
		forecast.Hours = make([]Hour, 0, len(day.Hour))
		for _, h := range day.Hour {
			hour := Hour{Time: h.Time}
			if h.AirQuality != nil {
				hour.PM25 = h.AirQuality.PM25
			}
			forecast.Hours = append(forecast.Hours, hour)
		}
	}

	return forecast, nil
}

// Forecast is the validated upstream payload for one place.
type Forecast struct {
	LocationName  string
	Region        string
	TempC         float64
	Humidity      int
	WindKph       float64
	ConditionText string
	AirQuality    AirQuality
	Hours         []Hour
}

// AirQuality holds raw pollutant concentrations in µg/m³.
type AirQuality struct {
	PM25 float64
	PM10 float64
	NO2  float64
	SO2  float64
	CO   float64
	O3   float64
}

// Hour is one hourly forecast sample. PM25 is zero when the provider omitted
// air quality data for the hour.
type Hour struct {
	Time string
	PM25 float64
}

// WeatherAPI.com response structures.

type forecastResponse struct {
	Location struct {
		Name   string `json:"name"`
		Region string `json:"region"`
	} `json:"location"`
	Current  *currentData `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Hour []hourData `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type currentData struct {
	TempC     float64 `json:"temp_c"`
	Humidity  int     `json:"humidity"`
	WindKph   float64 `json:"wind_kph"`
	Condition struct {
		Text string `json:"text"`
	} `json:"condition"`
	AirQuality *airQualityData `json:"air_quality"`
}

type airQualityData struct {
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NO2  float64 `json:"no2"`
	SO2  float64 `json:"so2"`
	CO   float64 `json:"co"`
	O3   float64 `json:"o3"`
}

type hourData struct {
	Time       string `json:"time"`
	AirQuality *struct {
		PM25 float64 `json:"pm2_5"`
	} `json:"air_quality"`
}
