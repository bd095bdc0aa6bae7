package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/weatherscene/weatherscene/internal/api/middleware"
	"github.com/weatherscene/weatherscene/internal/api/response"
	"github.com/weatherscene/weatherscene/internal/scene"
	"github.com/weatherscene/weatherscene/internal/weather"
)

// SceneResponse is the derived visual state for a location, plus the
// service flags describing where the underlying record came from.
type SceneResponse struct {
	Record      *weather.Record  `json:"record"`
	Params      scene.Parameters `json:"params"`
	Cached      bool             `json:"cached"`
	RateLimited bool             `json:"rate_limited"`
	Fallback    bool             `json:"fallback"`
}

// Scene serves fully derived scene state: classification, lighting phase,
// sky tuple, visibility flags, and particle configuration.
type Scene struct {
	service WeatherService
	logger  zerolog.Logger
}

// NewScene creates a scene handler.
func NewScene(service WeatherService, logger zerolog.Logger) *Scene {
	return &Scene{service: service, logger: logger}
}

// Get handles GET /v1/scene?location=...&context=portal
func (h *Scene) Get(w http.ResponseWriter, r *http.Request) {
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

	if env.Current == nil {
		response.InternalError(w, r, "no weather record available")
		return
	}

	ctx := scene.Context{Portal: r.URL.Query().Get("context") == "portal"}
	response.JSON(w, r, http.StatusOK, SceneResponse{
		Record:      env.Current,
		Params:      scene.Derive(*env.Current, ctx),
		Cached:      env.Cached,
		RateLimited: env.RateLimited,
		Fallback:    env.Fallback,
	})
}
