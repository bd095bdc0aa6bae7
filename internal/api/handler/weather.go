// Package handler contains the API's HTTP handlers.
package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/weatherscene/weatherscene/internal/api/middleware"
	"github.com/weatherscene/weatherscene/internal/api/response"
	"github.com/weatherscene/weatherscene/internal/weather"
)

// WeatherService is the slice of the weather data service the handlers use.
type WeatherService interface {
	FetchCurrent(ctx context.Context, locationKey, clientKey string) (*weather.Envelope, error)
	FetchForecast(ctx context.Context, locationKey, clientKey string) (*weather.Envelope, error)
}

// Weather serves current-conditions and forecast queries.
type Weather struct {
	service WeatherService
	logger  zerolog.Logger
}

// NewWeather creates a weather handler.
func NewWeather(service WeatherService, logger zerolog.Logger) *Weather {
	return &Weather{service: service, logger: logger}
}

// Current handles GET /v1/weather/current?location=...
func (h *Weather) Current(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		response.BadRequest(w, r, "query parameter 'location' is required")
		return
	}

	env, err := h.service.FetchCurrent(r.Context(), location, middleware.ClientKey(r))
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}
	response.JSON(w, r, http.StatusOK, env)
}

// Forecast handles GET /v1/weather/forecast?location=...
func (h *Weather) Forecast(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		response.BadRequest(w, r, "query parameter 'location' is required")
		return
	}

	env, err := h.service.FetchForecast(r.Context(), location, middleware.ClientKey(r))
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}
	response.JSON(w, r, http.StatusOK, env)
}
