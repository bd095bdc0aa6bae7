package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weatherscene/weatherscene/internal/scene"
	"github.com/weatherscene/weatherscene/internal/weather"
)

func drizzleRecord() weather.Record {
	return weather.Record{
		LocationKey:   "london",
		LocalTime:     "2025-06-14 14:30",
		ConditionText: "Patchy light drizzle",
		TemperatureF:  61,
		IsDay:         true,
	}
}

func TestDeriveDrizzleAfternoon(t *testing.T) {
	p := scene.Derive(drizzleRecord(), scene.Context{})

	assert.Equal(t, weather.ClassRainy, p.Class)
	assert.Equal(t, scene.PhaseDay, p.Phase)
	assert.Equal(t, scene.PrecipRain, p.Precip)
	assert.Equal(t, scene.ParticleCountMain, p.ParticleCount)
	assert.False(t, p.Lightning)
	assert.True(t, p.Visibility.ShowSun)
	assert.False(t, p.Visibility.ShowLensFlare)
}

func TestDerivePortalReducedFidelity(t *testing.T) {
	p := scene.Derive(drizzleRecord(), scene.Context{Portal: true})

	assert.Equal(t, scene.PhaseDay, p.Phase)
	assert.Equal(t, scene.ParticleCountPortal, p.ParticleCount)
}

// Portal previews pin phase to day even for a night-hour record.
func TestDerivePortalForcesDay(t *testing.T) {
	rec := drizzleRecord()
	rec.LocalTime = "2025-06-14 22:00"

	main := scene.Derive(rec, scene.Context{})
	assert.Equal(t, scene.PhaseNight, main.Phase)

	portal := scene.Derive(rec, scene.Context{Portal: true})
	assert.Equal(t, scene.PhaseDay, portal.Phase)
	assert.True(t, portal.Sky.Scattering)
}

func TestDerivePrecipModes(t *testing.T) {
	tests := []struct {
		condition string
		precip    scene.PrecipMode
		lightning bool
	}{
		{"Sunny", scene.PrecipNone, false},
		{"Overcast", scene.PrecipNone, false},
		{"Mist", scene.PrecipNone, false},
		{"Moderate rain", scene.PrecipRain, false},
		{"Light snow", scene.PrecipSnow, false},
		{"Thundery outbreaks possible", scene.PrecipRain, true},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			rec := drizzleRecord()
			rec.ConditionText = tt.condition
			p := scene.Derive(rec, scene.Context{})
			assert.Equal(t, tt.precip, p.Precip)
			assert.Equal(t, tt.lightning, p.Lightning)
			if tt.precip == scene.PrecipNone {
				assert.Zero(t, p.ParticleCount)
			}
		})
	}
}

// Same record in, same parameters out: the derivation carries no hidden
// state or randomness.
func TestDeriveReferentiallyTransparent(t *testing.T) {
	rec := drizzleRecord()
	a := scene.Derive(rec, scene.Context{})
	b := scene.Derive(rec, scene.Context{})
	assert.Equal(t, a, b)
}

// A record missing its timestamp still derives a renderable daytime scene.
func TestDeriveMalformedRecord(t *testing.T) {
	p := scene.Derive(weather.Record{}, scene.Context{})
	assert.Equal(t, scene.PhaseDay, p.Phase)
	assert.Equal(t, weather.ClassCloudy, p.Class)
	assert.True(t, p.Visibility.ShowSun)
}
