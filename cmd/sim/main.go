// Package main runs the scene engine headless: it derives a scene from
// demo or live weather and ticks the whole per-frame pipeline at a fixed
// rate, logging frame summaries. Useful for smoke-testing the simulation
// without a rendering host.
package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/weatherscene/weatherscene/internal/scene"
	"github.com/weatherscene/weatherscene/internal/sim"
	"github.com/weatherscene/weatherscene/internal/weather"
	"github.com/weatherscene/weatherscene/internal/weather/weatherapi"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Str("service", "weatherscene-sim").
		Logger()

	location := envOr("SIM_LOCATION", "london")
	tickRate := envInt("SIM_TICK_RATE", 60)
	seconds := envInt("SIM_SECONDS", 10)

	rec := loadRecord(log, location)
	if cond := os.Getenv("SIM_CONDITION"); cond != "" {
		// Forced condition, for exercising storm or snow paths on demand.
		rec.ConditionText = cond
	}
	params := scene.Derive(rec, scene.Context{})

	log.Info().
		Str("location", location).
		Str("condition", rec.ConditionText).
		Str("class", string(params.Class)).
		Str("phase", string(params.Phase)).
		Msg("scene derived")

	engine := sim.NewEngine(sim.EngineConfig{Logger: log})
	defer engine.Close()
	engine.Apply(params)
	engine.SetForecast(weather.DemoForecast(location, time.Now()))

	interval := time.Second / time.Duration(tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	var flashes int
	var prevFlash bool

	for range ticker.C {
		elapsed := time.Since(start).Seconds()
		frame := engine.Tick(elapsed, interval.Seconds())

		if frame.Lightning.Active && !prevFlash {
			flashes++
			log.Info().
				Float64("offset_x", frame.Lightning.OffsetX).
				Float64("at", elapsed).
				Msg("lightning flash")
		}
		prevFlash = frame.Lightning.Active

		if elapsed >= float64(seconds) {
			break
		}
	}

	log.Info().
		Int("ticks_per_second", tickRate).
		Int("flashes", flashes).
		Int("particles", len(engine.Tick(float64(seconds), interval.Seconds()).Particles)).
		Msg("simulation complete")
}

// loadRecord fetches live weather when an API key is configured and falls
// back to demo data otherwise. The fallback path mirrors the service's.
func loadRecord(log zerolog.Logger, location string) weather.Record {
	apiKey := os.Getenv("WEATHERAPI_KEY")
	if apiKey == "" {
		log.Info().Msg("WEATHERAPI_KEY not set, using demo weather")
		return *weather.DemoRecord(location, time.Now())
	}

	client := weatherapi.NewClient(weatherapi.ClientConfig{APIKey: apiKey, Logger: log})
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	rec, err := client.GetCurrent(ctx, location)
	if err != nil {
		log.Warn().Err(err).Msg("live fetch failed, using demo weather")
		return *weather.DemoRecord(location, time.Now())
	}
	return *rec
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
