package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airlens/airlens/internal/api"
	"github.com/airlens/airlens/internal/api/models"
	"github.com/airlens/airlens/internal/aqi"
	"github.com/airlens/airlens/internal/chat"
	"github.com/airlens/airlens/internal/city"
	"github.com/airlens/airlens/internal/report"
)

// testSource serves a fixed payload for every query.
type testSource struct{}

func (testSource) Fetch(_ context.Context, _ string) (report.Payload, error) {
	return report.Payload{
		AQI:           112,
		MainPollutant: "PM2.5",
		Pollutants:    report.Pollutants{PM25: 40},
		Weather:       report.Weather{TempC: 31, Condition: aqi.ConditionClear},
		History:       []report.HistoryPoint{},
		DataSource:    "WeatherAPI.com",
	}, nil
}

type testGenerator struct{}

func (testGenerator) Generate(_ context.Context, _ string) (string, error) {
	return "Air quality in Delhi is moderate today.", nil
}

func newTestRouter() http.Handler {
	return newTestRouterWeather(true)
}

func newTestRouterWeather(weatherConfigured bool) http.Handler {
	logger := zerolog.New(io.Discard)
	dir := city.NewDirectory(city.DirectoryConfig{})

	records := report.NewService(report.ServiceConfig{
		Source:    testSource{},
		Directory: dir,
		Logger:    logger,
		CacheTTL:  time.Minute,
	})

	chatService := chat.NewService(chat.ServiceConfig{
		Generator: testGenerator{},
		Records:   records,
		Extractor: city.NewExtractor(city.ExtractorConfig{Directory: dir}),
		Logger:    logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:       "test",
		BuildTime:     "2026-01-01T00:00:00Z",
		Logger:        logger,
		RecordService: records,
		ChatService:   chatService,
		Cache:         records,

		WeatherConfigured: weatherConfigured,
	})
}

func TestRouter_ListCities(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/cities", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var records []report.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 12)
	assert.Equal(t, "delhi", records[0].ID)
	assert.Equal(t, 112, records[0].AQI)
}

func TestRouter_GetCityByName(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/weather/mumbai", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var record report.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "mumbai", record.ID)
	assert.Equal(t, "Mumbai", record.Name)
	assert.Equal(t, 112, record.AQI)
	assert.Equal(t, aqi.CategoryFor(112), record.Category)
}

func TestRouter_GetCityByCoordinates(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/weather/28.45,77.02", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var record report.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "current", record.ID)
	assert.Equal(t, "Your Location", record.State)
}

func TestRouter_Chat(t *testing.T) {
	router := newTestRouter()

	body, err := json.Marshal(models.ChatRequest{Message: "What is the AQI in Delhi?"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Air quality in Delhi is moderate today.", resp.Message)
}

func TestRouter_ChatEmptyMessage(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(`{"message":""}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
}

func TestRouter_ChatRejectsNonJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("message=hi")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/ops/health", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
}

func TestRouter_Status(t *testing.T) {
	router := newTestRouter()

	// Warm the cache so the status endpoint reports entries
	req := httptest.NewRequest(http.MethodGet, "/api/weather/pune", http.NoBody)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/ops/status", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.Equal(t, 1, status.Cache.Entries)
	require.NotEmpty(t, status.Providers)
	assert.Equal(t, "weatherapi", status.Providers[0].Provider)
	assert.Equal(t, models.HealthStatusOK, status.Providers[0].Status)
}

func TestRouter_StatusDegradedWithoutWeatherKey(t *testing.T) {
	router := newTestRouterWeather(false)

	req := httptest.NewRequest(http.MethodGet, "/api/ops/status", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.HealthStatusDegraded, status.Status)
	require.NotEmpty(t, status.Providers)
	assert.Equal(t, models.HealthStatusFail, status.Providers[0].Status)
	require.NotNil(t, status.Providers[0].Detail)
	assert.Contains(t, *status.Providers[0].Detail, "API key not configured")
}

func TestRouter_CacheInvalidate(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/weather/jaipur", http.NoBody)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/api/ops/cache/invalidate", http.NoBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/ops/status", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, 0, status.Cache.Entries)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeNotFound, problem.Type)
	assert.Equal(t, "/api/nonexistent", problem.Instance)
}
