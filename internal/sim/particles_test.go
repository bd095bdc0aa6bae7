package sim_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherscene/weatherscene/internal/sim"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestParticlesInitWithinVolume(t *testing.T) {
	vol := sim.Volume{MinX: -10, MaxX: 10, MinZ: -10, MaxZ: 10, Top: 8, Band: 4}
	p := sim.NewParticles(sim.ParticlesConfig{
		Mode:   sim.ModeRain,
		Count:  200,
		Volume: vol,
		Rand:   testRand(),
	})

	for _, tr := range p.Tick(0) {
		x, y, z := tr.Position[0], tr.Position[1], tr.Position[2]
		assert.GreaterOrEqual(t, x, vol.MinX)
		assert.LessOrEqual(t, x, vol.MaxX)
		assert.GreaterOrEqual(t, z, vol.MinZ)
		assert.LessOrEqual(t, z, vol.MaxZ)
		// One tick of fall has already happened.
		assert.Greater(t, y, vol.Top-1)
		assert.LessOrEqual(t, y, vol.Top+vol.Band)
	}
}

// After falling below the ground threshold a particle reappears in the
// spawn band above the volume top, never below it.
func TestParticlesRecycle(t *testing.T) {
	vol := sim.Volume{MinX: -5, MaxX: 5, MinZ: -5, MaxZ: 5, Top: 2, Band: 1}
	p := sim.NewParticles(sim.ParticlesConfig{
		Mode:     sim.ModeRain,
		Count:    50,
		Volume:   vol,
		SpeedMin: 0.2,
		SpeedMax: 0.4,
		Rand:     testRand(),
	})

	// Enough ticks for every particle to cycle at least once.
	for tick := 0; tick < 200; tick++ {
		for _, tr := range p.Tick(float64(tick) / 60) {
			assert.GreaterOrEqual(t, tr.Position[1], -1.0,
				"recycling happens before the transform is reported")
			assert.LessOrEqual(t, tr.Position[1], vol.Top+vol.Band)
		}
	}
}

// Long runs stay numerically stable: no NaN or Inf anywhere, ever.
func TestParticlesNoNaNOverLongRun(t *testing.T) {
	for _, mode := range []sim.Mode{sim.ModeRain, sim.ModeSnow} {
		p := sim.NewParticles(sim.ParticlesConfig{
			Mode:  mode,
			Count: 100,
			Rand:  testRand(),
		})
		// Large elapsed values feed the sine terms; they stay bounded.
		for tick := 0; tick < 10000; tick++ {
			elapsed := float64(tick) * 1e3
			for _, tr := range p.Tick(elapsed) {
				for axis := 0; axis < 3; axis++ {
					require.False(t, math.IsNaN(tr.Position[axis]), "mode %s position axis %d", mode, axis)
					require.False(t, math.IsInf(tr.Position[axis], 0), "mode %s position axis %d", mode, axis)
					require.False(t, math.IsNaN(tr.Rotation[axis]), "mode %s rotation axis %d", mode, axis)
				}
			}
		}
	}
}

func TestParticlesRainHasNoRotation(t *testing.T) {
	p := sim.NewParticles(sim.ParticlesConfig{Mode: sim.ModeRain, Count: 10, Rand: testRand()})
	for _, tr := range p.Tick(123.456) {
		assert.Equal(t, [3]float64{}, tr.Rotation)
	}
}

// Snow orientation is a pure function of elapsed time, so rewinding the
// clock reproduces the same rotation.
func TestParticlesSnowRotationDeterministic(t *testing.T) {
	p := sim.NewParticles(sim.ParticlesConfig{Mode: sim.ModeSnow, Count: 10, Rand: testRand()})

	first := p.Tick(2.0)[0].Rotation
	p.Tick(5.0)
	again := p.Tick(2.0)[0].Rotation

	assert.Equal(t, first, again)
	assert.InDelta(t, 2.0*0.3, first[0], 1e-12)
	assert.InDelta(t, 2.0*0.2, first[1], 1e-12)
}

func TestParticlesSetCountReinitializes(t *testing.T) {
	p := sim.NewParticles(sim.ParticlesConfig{Mode: sim.ModeSnow, Count: 800, Rand: testRand()})
	require.Equal(t, 800, p.Count())
	require.Len(t, p.Tick(0), 800)

	p.SetCount(100)
	assert.Equal(t, 100, p.Count())
	assert.Len(t, p.Tick(0.016), 100)

	p.SetCount(100) // no-op resize keeps the ensemble
	assert.Equal(t, 100, p.Count())
}
