package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/weatherscene/weatherscene/internal/api/models"
)

// RateLimitConfig holds configuration for transport-level rate limiting.
// This guards the HTTP surface against abusive clients; the weather data
// service applies its own per-client upstream budget on top.
type RateLimitConfig struct {
	RequestLimit int
	WindowLength time.Duration
}

// StandardRateLimit applies to all API endpoints (120 req/min).
var StandardRateLimit = RateLimitConfig{
	RequestLimit: 120,
	WindowLength: time.Minute,
}

// RateLimitByIP creates a rate limiter middleware keyed on client IP.
func RateLimitByIP(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowLength,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(rateLimitExceededHandler),
	)
}

// ClientKey returns the identity the weather service rate-limits on: the
// real client IP, matching the transport limiter's keying.
func ClientKey(r *http.Request) string {
	key, err := httprate.KeyByRealIP(r)
	if err != nil {
		return r.RemoteAddr
	}
	return key
}

func rateLimitExceededHandler(w http.ResponseWriter, r *http.Request) {
	problem := models.NewTooManyRequests(GetRequestID(r.Context()),
		"Rate limit exceeded. Please try again later.")
	problem.Instance = r.URL.Path
	problem.Write(w)
}
