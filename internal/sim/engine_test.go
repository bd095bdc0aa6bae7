package sim_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherscene/weatherscene/internal/scene"
	"github.com/weatherscene/weatherscene/internal/sim"
	"github.com/weatherscene/weatherscene/internal/weather"
)

func record(condition, localtime string) weather.Record {
	return weather.Record{
		LocationKey:   "test",
		LocalTime:     localtime,
		ConditionText: condition,
	}
}

func newTestEngine() *sim.Engine {
	return sim.NewEngine(sim.EngineConfig{
		Logger: zerolog.Nop(),
		Rand:   testRand(),
		Lightning: sim.LightningConfig{
			FlashDuration: 10 * time.Millisecond,
		},
	})
}

func TestEngineAppliesRainScene(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	e.Apply(scene.Derive(record("Moderate rain", "2025-06-14 14:00"), scene.Context{}))
	frame := e.Tick(0.016, 0.016)

	assert.Len(t, frame.Particles, scene.ParticleCountMain)
	assert.False(t, frame.Lightning.Active)
	assert.Equal(t, weather.ClassRainy, frame.Params.Class)
}

func TestEngineClearSceneHasNoParticles(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	e.Apply(scene.Derive(record("Sunny", "2025-06-14 14:00"), scene.Context{}))
	frame := e.Tick(0.016, 0.016)

	assert.Empty(t, frame.Particles)
	assert.False(t, frame.Lightning.Active)
}

// Reapplying weather reconfigures in place: rain to snow swaps the
// ensemble, storm to clear tears the lightning controller down.
func TestEngineReconfigure(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	e.Apply(scene.Derive(record("Thundery outbreaks possible", "2025-06-14 14:00"), scene.Context{}))
	frame := e.Tick(0.016, 0.016)
	assert.Len(t, frame.Particles, scene.ParticleCountMain)

	e.Apply(scene.Derive(record("Light snow", "2025-06-14 14:00"), scene.Context{}))
	frame = e.Tick(0.033, 0.016)
	assert.Len(t, frame.Particles, scene.ParticleCountMain)
	assert.NotEqual(t, [3]float64{}, frame.Particles[0].Rotation, "snow tumbles")

	e.Apply(scene.Derive(record("Sunny", "2025-06-14 14:00"), scene.Context{}))
	frame = e.Tick(0.050, 0.016)
	assert.Empty(t, frame.Particles)
	assert.False(t, frame.Lightning.Active)
}

func TestEnginePortalScenes(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	e.Apply(scene.Derive(record("Sunny", "2025-06-14 14:00"), scene.Context{}))

	now := time.Date(2025, 6, 14, 14, 0, 0, 0, time.UTC)
	fs := weather.DemoForecast("test", now)
	fs.Days[1].Record.ConditionText = "Heavy rain"
	e.SetForecast(fs)

	frame := e.Tick(0.016, 0.016)
	require.Len(t, frame.Portals, weather.ForecastLength)

	for i, pf := range frame.Portals {
		assert.Equal(t, i, pf.DayIndex)
		assert.Equal(t, sim.PortalInactive, pf.Mode)
		assert.True(t, pf.OverlayVisible)
		assert.Equal(t, scene.PhaseDay, pf.Params.Phase, "portal previews force day")
	}

	// Only the rainy day carries a reduced ensemble.
	assert.Empty(t, frame.Portals[0].Particles)
	assert.Len(t, frame.Portals[1].Particles, scene.ParticleCountPortal)
}

func TestEnginePortalInteraction(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	now := time.Date(2025, 6, 14, 14, 0, 0, 0, time.UTC)
	e.SetForecast(weather.DemoForecast("test", now))

	e.Hover(1)
	frame := e.Tick(0.016, 0.016)
	assert.Equal(t, sim.PortalActive, frame.Portals[1].Mode)
	assert.Greater(t, frame.Portals[1].Blend, 0.0)
	assert.Equal(t, sim.PortalInactive, frame.Portals[0].Mode)

	e.Select(1)
	frame = e.Tick(0.033, 0.016)
	assert.Equal(t, sim.PortalFullscreen, frame.Portals[1].Mode)
	assert.False(t, frame.Portals[1].OverlayVisible)

	e.Dismiss()
	frame = e.Tick(0.050, 0.016)
	for _, pf := range frame.Portals {
		assert.Equal(t, sim.PortalInactive, pf.Mode)
		assert.True(t, pf.OverlayVisible)
	}

	// Out-of-range events are ignored rather than panicking.
	e.Hover(99)
	e.Select(-1)
}

func TestEngineTickWithoutWeather(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	frame := e.Tick(0, 0.016)
	assert.Empty(t, frame.Particles)
	assert.Empty(t, frame.Portals)
}
