package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherscene/weatherscene/internal/api"
	"github.com/weatherscene/weatherscene/internal/api/handler"
	"github.com/weatherscene/weatherscene/internal/weather"
)

// stubService returns a fixed envelope for every fetch.
type stubService struct {
	env *weather.Envelope
}

func (s *stubService) FetchCurrent(_ context.Context, _, _ string) (*weather.Envelope, error) {
	return s.env, nil
}

func (s *stubService) FetchForecast(_ context.Context, _, _ string) (*weather.Envelope, error) {
	return &weather.Envelope{Forecast: &weather.ForecastSet{LocationKey: "london"}}, nil
}

var _ handler.WeatherService = (*stubService)(nil)

func newTestRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "now",
		Logger:    zerolog.Nop(),
		WeatherService: &stubService{
			env: &weather.Envelope{
				Current: &weather.Record{
					LocationKey:   "london",
					LocalTime:     "2025-06-14 14:30",
					ConditionText: "Patchy light drizzle",
					TemperatureF:  61,
					IsDay:         true,
				},
				Cached: true,
			},
		},
	})
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestWeatherCurrentEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/weather/current?location=London", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env weather.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Cached)
	require.NotNil(t, env.Current)
	assert.Equal(t, "Patchy light drizzle", env.Current.ConditionText)
}

func TestWeatherCurrentMissingLocation(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/weather/current", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestSceneEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scene?location=London", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.SceneResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rainy", string(resp.Params.Class))
	assert.Equal(t, "day", string(resp.Params.Phase))
	assert.False(t, resp.Params.Visibility.ShowLensFlare)
	assert.Equal(t, 800, resp.Params.ParticleCount)
	assert.True(t, resp.Cached)
}

func TestSceneEndpointPortalContext(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scene?location=London&context=portal", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.SceneResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Params.ParticleCount)
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
