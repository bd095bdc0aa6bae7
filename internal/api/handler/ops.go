package handler

import (
	"net/http"
	"time"

	"github.com/weatherscene/weatherscene/internal/api/response"
)

// Ops handles operational endpoints.
type Ops struct {
	version   string
	buildTime string
}

// NewOps creates an ops handler.
func NewOps(version, buildTime string) *Ops {
	return &Ops{version: version, buildTime: buildTime}
}

// Health handles GET /v1/ops/health - liveness check.
func (h *Ops) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"time":      time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"buildTime": h.buildTime,
	})
}

// Ready handles GET /v1/ops/ready - readiness check. The service has no
// hard dependencies to probe: with demo fallback in place it is ready as
// soon as it can accept connections.
func (h *Ops) Ready(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready"})
}
