// Package api provides the HTTP API for weatherscene.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/weatherscene/weatherscene/internal/api/handler"
	"github.com/weatherscene/weatherscene/internal/api/middleware"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	Metrics        *middleware.Metrics
	WeatherService handler.WeatherService
}

// NewRouter creates a chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, order matters.
	r.Use(middleware.RequestID)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)

	opsHandler := handler.NewOps(cfg.Version, cfg.BuildTime)
	weatherHandler := handler.NewWeather(cfg.WeatherService, cfg.Logger)
	sceneHandler := handler.NewScene(cfg.WeatherService, cfg.Logger)

	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.Health)
			r.Get("/ready", opsHandler.Ready)
		})

		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/weather/current", weatherHandler.Current)
			r.Get("/weather/forecast", weatherHandler.Forecast)
			r.Get("/scene", sceneHandler.Get)
		})
	})

	return r
}
