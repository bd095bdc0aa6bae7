// Package sim contains the per-tick simulation components: precipitation
// particle ensembles, the lightning controller, portal blend machines, and
// the engine that ticks them together. Everything here runs synchronously
// inside the host render loop's frame callback and never blocks.
package sim

import (
	"math"
	"math/rand/v2"
)

// Ground threshold: a particle falling below this is recycled to the top
// of the volume.
const groundThreshold = -1.0

// Snow tumble rates, radians per second of elapsed time. Orientation is a
// pure function of elapsed time, so restarting simulation time resets it.
const (
	snowTumbleX = 0.3
	snowTumbleY = 0.2
)

// Mode selects rain or snow behavior for an ensemble.
type Mode string

const (
	ModeRain Mode = "rain"
	ModeSnow Mode = "snow"
)

// Volume is the axis-aligned region an ensemble occupies. Particles spawn
// with uniform (x, z) inside it and y uniform in the band [Top, Top+Band].
type Volume struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
	Top        float64
	Band       float64
}

// DefaultVolume is the main-scene precipitation volume.
var DefaultVolume = Volume{MinX: -10, MaxX: 10, MinZ: -10, MaxZ: 10, Top: 8, Band: 4}

// Transform is one particle's renderable state for the current tick. The
// rendering layer consumes the whole slice as a single batched draw.
type Transform struct {
	Position [3]float64
	Rotation [3]float64
}

type particle struct {
	x, y, z float64
	speed   float64
	drift   float64
}

// ParticlesConfig configures an ensemble.
type ParticlesConfig struct {
	Mode   Mode
	Count  int
	Volume Volume

	// Fall speed band, world units per tick. Zero values take defaults.
	SpeedMin, SpeedMax float64

	// DriftAmplitude is the horizontal sway amplitude for snow.
	DriftAmplitude float64

	// Rand overrides the random source, for tests.
	Rand *rand.Rand
}

// Particles owns and advances a fixed-size precipitation ensemble.
// Vertical motion is deliberately frame-rate-coupled: each tick subtracts
// the particle's own speed from y, with no delta-time scaling.
type Particles struct {
	mode       Mode
	volume     Volume
	speedMin   float64
	speedMax   float64
	driftAmp   float64
	rng        *rand.Rand
	particles  []particle
	transforms []Transform
}

// NewParticles builds an ensemble and places every particle randomly
// within the configured volume.
func NewParticles(cfg ParticlesConfig) *Particles {
	if cfg.SpeedMin == 0 && cfg.SpeedMax == 0 {
		if cfg.Mode == ModeSnow {
			cfg.SpeedMin, cfg.SpeedMax = 0.01, 0.05
		} else {
			cfg.SpeedMin, cfg.SpeedMax = 0.1, 0.3
		}
	}
	if cfg.DriftAmplitude == 0 && cfg.Mode == ModeSnow {
		cfg.DriftAmplitude = 0.002
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if (cfg.Volume == Volume{}) {
		cfg.Volume = DefaultVolume
	}

	p := &Particles{
		mode:     cfg.Mode,
		volume:   cfg.Volume,
		speedMin: cfg.SpeedMin,
		speedMax: cfg.SpeedMax,
		driftAmp: cfg.DriftAmplitude,
		rng:      rng,
	}
	p.init(cfg.Count)
	return p
}

// init allocates and seeds the ensemble. This is the only place particles
// are allocated; ticking mutates them in place.
func (p *Particles) init(count int) {
	p.particles = make([]particle, count)
	p.transforms = make([]Transform, count)
	for i := range p.particles {
		p.particles[i] = particle{
			x:     p.uniform(p.volume.MinX, p.volume.MaxX),
			y:     p.uniform(p.volume.Top, p.volume.Top+p.volume.Band),
			z:     p.uniform(p.volume.MinZ, p.volume.MaxZ),
			speed: p.uniform(p.speedMin, p.speedMax),
			drift: p.driftAmp,
		}
	}
}

// Count returns the ensemble size.
func (p *Particles) Count() int {
	return len(p.particles)
}

// SetCount resizes the ensemble by full re-initialization. Incremental
// resize is not worth the bookkeeping at these counts.
func (p *Particles) SetCount(count int) {
	if count == len(p.particles) {
		return
	}
	p.init(count)
}

// Tick advances every particle one frame and returns the transform batch.
// The returned slice is reused across ticks; callers must not retain it.
func (p *Particles) Tick(elapsed float64) []Transform {
	for i := range p.particles {
		pt := &p.particles[i]

		pt.y -= pt.speed
		if pt.y < groundThreshold {
			pt.y = p.uniform(p.volume.Top, p.volume.Top+p.volume.Band)
			pt.x = p.uniform(p.volume.MinX, p.volume.MaxX)
			if p.mode == ModeSnow {
				pt.z = p.uniform(p.volume.MinZ, p.volume.MaxZ)
			}
		}

		t := &p.transforms[i]
		if p.mode == ModeSnow {
			// Index as phase offset keeps neighboring flakes decorrelated
			// without per-particle random sway state.
			pt.x += math.Sin(elapsed+float64(i)) * pt.drift
			t.Rotation = [3]float64{elapsed * snowTumbleX, elapsed * snowTumbleY, 0}
		} else {
			t.Rotation = [3]float64{}
		}
		t.Position = [3]float64{pt.x, pt.y, pt.z}
	}
	return p.transforms
}

func (p *Particles) uniform(min, max float64) float64 {
	return min + p.rng.Float64()*(max-min)
}
