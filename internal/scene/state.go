package scene

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/weatherscene/weatherscene/internal/weather"
)

// Fetcher is the slice of the weather data service the controller needs.
type Fetcher interface {
	FetchCurrent(ctx context.Context, locationKey, clientKey string) (*weather.Envelope, error)
	FetchForecast(ctx context.Context, locationKey, clientKey string) (*weather.Envelope, error)
}

// Controller owns the active weather record and its derived parameters.
// Fetches run off the tick path: Refresh returns immediately and the
// result is applied atomically when it arrives. Until then the previous
// state keeps rendering; the renderer never sees a half-updated scene.
//
// A refresh that is superseded by a newer one before resolving is
// discarded on arrival instead of overwriting newer state.
type Controller struct {
	fetcher Fetcher
	logger  zerolog.Logger

	mu         sync.RWMutex
	generation uint64
	current    weather.Record
	forecast   *weather.ForecastSet
	params     Parameters
	envelope   weather.Envelope
}

// NewController creates a controller seeded with a record so the scene is
// renderable before the first live fetch lands.
func NewController(fetcher Fetcher, seed weather.Record, logger zerolog.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		logger:  logger,
		current: seed,
		params:  Derive(seed, Context{}),
	}
}

// Refresh starts an asynchronous fetch for a location. It never blocks.
func (c *Controller) Refresh(ctx context.Context, locationKey, clientKey string) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	go func() {
		env, err := c.fetcher.FetchCurrent(ctx, locationKey, clientKey)
		if err != nil {
			c.logger.Error().Err(err).Str("location", locationKey).Msg("scene refresh failed")
			return
		}
		fc, err := c.fetcher.FetchForecast(ctx, locationKey, clientKey)
		if err != nil {
			c.logger.Error().Err(err).Str("location", locationKey).Msg("scene forecast refresh failed")
			return
		}
		c.apply(gen, env, fc)
	}()
}

// apply installs a fetch result unless a newer refresh has started since.
func (c *Controller) apply(gen uint64, env, fc *weather.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug().
			Uint64("generation", gen).
			Uint64("current", c.generation).
			Msg("discarding superseded weather response")
		return
	}
	if env.Current == nil {
		return
	}

	c.current = *env.Current
	c.forecast = fc.Forecast
	c.envelope = *env
	c.params = Derive(c.current, Context{})
}

// ApplyRecord installs a record directly, bypassing the fetch path. Used
// by hosts that already hold a record (demo mode, tests, portal wiring).
func (c *Controller) ApplyRecord(rec weather.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.current = rec
	c.params = Derive(rec, Context{})
}

// Current returns the active record.
func (c *Controller) Current() weather.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Forecast returns the active forecast set, or nil before the first
// successful forecast fetch.
func (c *Controller) Forecast() *weather.ForecastSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.forecast
}

// Parameters returns the derived scene parameters for the active record.
func (c *Controller) Parameters() Parameters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params
}

// Envelope returns the service flags that accompanied the active record.
func (c *Controller) Envelope() weather.Envelope {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.envelope
}
