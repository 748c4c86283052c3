package weatherapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airlens/airlens/internal/provider/weatherapi"
)

const sampleResponse = `{
	"location": {"name": "Mumbai", "region": "Maharashtra"},
	"current": {
		"temp_c": 29.4,
		"humidity": 74,
		"wind_kph": 15.1,
		"condition": {"text": "Partly cloudy"},
		"air_quality": {"pm2_5": 40.2, "pm10": 85.7, "no2": 22.1, "so2": 8.3, "co": 610.4, "o3": 31.9}
	},
	"forecast": {"forecastday": [{"hour": [
		{"time": "2026-08-30 00:00", "air_quality": {"pm2_5": 38.0}},
		{"time": "2026-08-30 01:00", "air_quality": {"pm2_5": 36.5}},
		{"time": "2026-08-30 02:00"}
	]}]}
}`

func TestClient_Forecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "Mumbai", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("days"))
		assert.Equal(t, "yes", r.URL.Query().Get("aqi"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := weatherapi.NewClient(weatherapi.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	forecast, err := client.Forecast(context.Background(), "Mumbai")
	require.NoError(t, err)

	assert.Equal(t, "Mumbai", forecast.LocationName)
	assert.Equal(t, "Maharashtra", forecast.Region)
	assert.Equal(t, 29.4, forecast.TempC)
	assert.Equal(t, 74, forecast.Humidity)
	assert.Equal(t, 15.1, forecast.WindKph)
	assert.Equal(t, "Partly cloudy", forecast.ConditionText)
	assert.Equal(t, 40.2, forecast.AirQuality.PM25)
	assert.Equal(t, 610.4, forecast.AirQuality.CO)

	require.Len(t, forecast.Hours, 3)
	assert.Equal(t, "2026-08-30 00:00", forecast.Hours[0].Time)
	assert.Equal(t, 38.0, forecast.Hours[0].PM25)
	assert.Zero(t, forecast.Hours[2].PM25, "hour without air quality data carries zero")
}

func TestClient_Forecast_CoordinatesPassedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "19.07,72.87", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := weatherapi.NewClient(weatherapi.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Forecast(context.Background(), "19.07,72.87")
	require.NoError(t, err)
}

func TestClient_Forecast_MissingAPIKey(t *testing.T) {
	client := weatherapi.NewClient(weatherapi.ClientConfig{
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Forecast(context.Background(), "Mumbai")
	assert.ErrorIs(t, err, weatherapi.ErrMissingAPIKey)
}

func TestClient_Forecast_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := weatherapi.NewClient(weatherapi.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Forecast(context.Background(), "Nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}

func TestClient_Forecast_MalformedResponseFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing current", `{"location": {"name": "Mumbai"}}`},
		{"missing air quality", `{"location": {"name": "Mumbai"}, "current": {"temp_c": 30}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := weatherapi.NewClient(weatherapi.ClientConfig{
				APIKey:     "test-key",
				BaseURL:    server.URL,
				HTTPClient: http.DefaultClient,
			})

			_, err := client.Forecast(context.Background(), "Mumbai")
			assert.ErrorIs(t, err, weatherapi.ErrMalformedResponse)
		})
	}
}
