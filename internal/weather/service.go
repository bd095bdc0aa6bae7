package weather

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider is the upstream weather query interface.
type Provider interface {
	// GetCurrent fetches the current observation for a location.
	GetCurrent(ctx context.Context, location string) (*Record, error)

	// GetForecast fetches the three-day forecast for a location.
	GetForecast(ctx context.Context, location string) (*ForecastSet, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather data service.
type ServiceConfig struct {
	// Provider is the upstream weather source.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long a fetched payload stays servable (default: 10m).
	CacheTTL time.Duration

	// RateWindow is the trailing window for the per-client limiter
	// (default: 1 hour).
	RateWindow time.Duration

	// RateLimit is the number of upstream-reaching requests a client may
	// make per window (default: 20).
	RateLimit int

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Service fronts the upstream weather provider with a TTL cache, a
// per-client rate limiter, and demo-data fallback. Nothing it returns is
// ever an upstream error: a failed or refused fetch degrades to demo data
// with the envelope flags set, so the scene always has something to render.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration
	limiter  *rateWindow
	now      func() time.Time

	mu        sync.RWMutex
	current   map[string]*cachedRecord
	forecasts map[string]*cachedForecast
}

type cachedRecord struct {
	data      *Record
	fetchedAt time.Time
}

type cachedForecast struct {
	data      *ForecastSet
	fetchedAt time.Time
}

// NewService creates a new weather data service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}
	window := cfg.RateWindow
	if window == 0 {
		window = time.Hour
	}
	limit := cfg.RateLimit
	if limit == 0 {
		limit = 20
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		provider:  cfg.Provider,
		logger:    cfg.Logger,
		cacheTTL:  cacheTTL,
		limiter:   newRateWindow(window, limit),
		now:       now,
		current:   make(map[string]*cachedRecord),
		forecasts: make(map[string]*cachedForecast),
	}
}

// NormalizeLocation case-folds and trims a location key. All cache lookups
// and writes go through this, so "London" and "london" share an entry.
func NormalizeLocation(locationKey string) string {
	return strings.ToLower(strings.TrimSpace(locationKey))
}

// FetchCurrent returns the current weather for a location on behalf of a
// client. Resolution order: fresh cache entry, then the client's rate
// budget, then the upstream call, then demo fallback.
func (s *Service) FetchCurrent(ctx context.Context, locationKey, clientKey string) (*Envelope, error) {
	key := NormalizeLocation(locationKey)
	if key == "" {
		return nil, ErrNoLocation
	}
	now := s.now()

	s.mu.RLock()
	entry, ok := s.current[key]
	s.mu.RUnlock()
	if ok && now.Sub(entry.fetchedAt) < s.cacheTTL {
		return &Envelope{Current: entry.data, Cached: true}, nil
	}

	if !s.limiter.allow(clientKey, now) {
		s.logger.Warn().
			Str("location", key).
			Str("client", clientKey).
			Msg("client over rate budget, serving demo weather")
		return &Envelope{Current: DemoRecord(key, now), RateLimited: true}, nil
	}

	data, err := s.provider.GetCurrent(ctx, key)
	if err != nil {
		s.logger.Error().Err(err).
			Str("location", key).
			Str("provider", s.provider.Name()).
			Msg("upstream weather fetch failed, serving demo weather")
		return &Envelope{Current: DemoRecord(key, now), Fallback: true}, nil
	}

	s.limiter.record(clientKey, now)
	s.mu.Lock()
	s.current[key] = &cachedRecord{data: data, fetchedAt: now}
	s.evictExpiredLocked(now)
	s.mu.Unlock()

	return &Envelope{Current: data}, nil
}

// FetchForecast returns the three-day forecast for a location on behalf of
// a client, with the same cache / rate / fallback ladder as FetchCurrent.
func (s *Service) FetchForecast(ctx context.Context, locationKey, clientKey string) (*Envelope, error) {
	key := NormalizeLocation(locationKey)
	if key == "" {
		return nil, ErrNoLocation
	}
	now := s.now()

	s.mu.RLock()
	entry, ok := s.forecasts[key]
	s.mu.RUnlock()
	if ok && now.Sub(entry.fetchedAt) < s.cacheTTL {
		return &Envelope{Forecast: entry.data, Cached: true}, nil
	}

	if !s.limiter.allow(clientKey, now) {
		s.logger.Warn().
			Str("location", key).
			Str("client", clientKey).
			Msg("client over rate budget, serving demo forecast")
		return &Envelope{Forecast: DemoForecast(key, now), RateLimited: true}, nil
	}

	data, err := s.provider.GetForecast(ctx, key)
	if err != nil {
		s.logger.Error().Err(err).
			Str("location", key).
			Str("provider", s.provider.Name()).
			Msg("upstream forecast fetch failed, serving demo forecast")
		return &Envelope{Forecast: DemoForecast(key, now), Fallback: true}, nil
	}

	s.limiter.record(clientKey, now)
	s.mu.Lock()
	s.forecasts[key] = &cachedForecast{data: data, fetchedAt: now}
	s.evictExpiredLocked(now)
	s.mu.Unlock()

	return &Envelope{Forecast: data}, nil
}

// evictExpiredLocked drops entries past TTL. Eviction is by age only;
// there is no explicit delete path. Caller holds the write lock.
func (s *Service) evictExpiredLocked(now time.Time) {
	for key, entry := range s.current {
		if now.Sub(entry.fetchedAt) >= s.cacheTTL {
			delete(s.current, key)
		}
	}
	for key, entry := range s.forecasts {
		if now.Sub(entry.fetchedAt) >= s.cacheTTL {
			delete(s.forecasts, key)
		}
	}
}
