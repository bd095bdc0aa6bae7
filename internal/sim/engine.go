package sim

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/weatherscene/weatherscene/internal/scene"
	"github.com/weatherscene/weatherscene/internal/weather"
)

// portalScene is one forecast day's isolated, reduced-fidelity scene: its
// interaction machine, its derived parameters, and (when the day
// precipitates) its own small particle ensemble.
type portalScene struct {
	portal    *Portal
	params    scene.Parameters
	particles *Particles
}

// PortalFrame is one portal's per-tick output.
type PortalFrame struct {
	DayIndex       int              `json:"day_index"`
	Mode           PortalMode       `json:"mode"`
	Blend          float64          `json:"blend"`
	OverlayVisible bool             `json:"overlay_visible"`
	Params         scene.Parameters `json:"params"`
	Particles      []Transform      `json:"-"`
}

// Frame is the full per-tick output the rendering host consumes.
type Frame struct {
	Params    scene.Parameters `json:"params"`
	Particles []Transform      `json:"-"`
	Lightning LightningState   `json:"lightning"`
	Portals   []PortalFrame    `json:"portals"`
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	Logger zerolog.Logger

	// Rand seeds the engine's simulation randomness, for tests.
	Rand *rand.Rand

	// Lightning overrides the lightning tuning. Probability, duration and
	// peak fall back to package defaults when zero.
	Lightning LightningConfig
}

// Engine owns every per-tick component for one rendered scene: the main
// precipitation ensemble, the lightning controller, and one portal scene
// per forecast day. It is single-threaded by design: the host calls Tick
// from its frame callback and applies new weather between ticks.
type Engine struct {
	logger       zerolog.Logger
	rng          *rand.Rand
	lightningCfg LightningConfig

	params    scene.Parameters
	particles *Particles
	lightning *Lightning
	portals   []*portalScene
}

// NewEngine creates an engine with no active weather. Call Apply before
// the first Tick to configure the scene.
func NewEngine(cfg EngineConfig) *Engine {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{
		logger:       cfg.Logger,
		rng:          rng,
		lightningCfg: cfg.Lightning,
	}
}

// Apply reconfigures the main scene from derived parameters. The particle
// ensemble is rebuilt when the precipitation mode or count changes, and
// the lightning controller is created or torn down as the storm flag
// flips. Safe to call between any two ticks.
func (e *Engine) Apply(params scene.Parameters) {
	e.params = params

	switch {
	case params.Precip == scene.PrecipNone:
		e.particles = nil
	case e.particles == nil || e.particles.mode != precipMode(params.Precip):
		e.particles = NewParticles(ParticlesConfig{
			Mode:  precipMode(params.Precip),
			Count: params.ParticleCount,
			Rand:  e.rng,
		})
	default:
		e.particles.SetCount(params.ParticleCount)
	}

	if params.Lightning && e.lightning == nil {
		cfg := e.lightningCfg
		if cfg.Rand == nil {
			cfg.Rand = e.rng
		}
		e.lightning = NewLightning(cfg)
	} else if !params.Lightning && e.lightning != nil {
		e.lightning.Close()
		e.lightning = nil
	}

	e.logger.Debug().
		Str("class", string(params.Class)).
		Str("phase", string(params.Phase)).
		Str("precip", string(params.Precip)).
		Int("particles", params.ParticleCount).
		Msg("scene applied")
}

// SetForecast builds one portal scene per forecast day. Existing portal
// interaction state is discarded; a new forecast means a new set of
// previews.
func (e *Engine) SetForecast(fs *weather.ForecastSet) {
	e.portals = nil
	if fs == nil {
		return
	}
	for i, day := range fs.Days {
		params := scene.Derive(day.Record, scene.Context{Portal: true})
		ps := &portalScene{
			portal: NewPortal(i),
			params: params,
		}
		if params.Precip != scene.PrecipNone {
			ps.particles = NewParticles(ParticlesConfig{
				Mode:  precipMode(params.Precip),
				Count: params.ParticleCount,
				Rand:  e.rng,
			})
		}
		e.portals = append(e.portals, ps)
	}
}

// Hover routes a pointer-hover event to a portal.
func (e *Engine) Hover(dayIndex int) {
	if p := e.portalAt(dayIndex); p != nil {
		p.portal.Hover()
	}
}

// Select routes a click event to a portal.
func (e *Engine) Select(dayIndex int) {
	if p := e.portalAt(dayIndex); p != nil {
		p.portal.Select()
	}
}

// Dismiss returns every portal to inactive.
func (e *Engine) Dismiss() {
	for _, p := range e.portals {
		p.portal.Dismiss()
	}
}

func (e *Engine) portalAt(dayIndex int) *portalScene {
	if dayIndex < 0 || dayIndex >= len(e.portals) {
		return nil
	}
	return e.portals[dayIndex]
}

// Tick advances every component one frame. elapsed is total simulation
// time in seconds; delta is the frame delta, accepted for hosts that track
// it but unused by the frame-rate-coupled integrations.
func (e *Engine) Tick(elapsed, delta float64) Frame {
	_ = delta

	frame := Frame{Params: e.params}

	if e.particles != nil {
		frame.Particles = e.particles.Tick(elapsed)
	}
	if e.lightning != nil {
		frame.Lightning = e.lightning.Tick()
	}

	for _, ps := range e.portals {
		pf := PortalFrame{
			DayIndex:       ps.portal.DayIndex(),
			Blend:          ps.portal.Tick(),
			Mode:           ps.portal.Mode(),
			OverlayVisible: ps.portal.OverlayVisible(),
			Params:         ps.params,
		}
		if ps.particles != nil {
			pf.Particles = ps.particles.Tick(elapsed)
		}
		frame.Portals = append(frame.Portals, pf)
	}

	return frame
}

// Close tears the engine down, cancelling any pending lightning reset.
func (e *Engine) Close() {
	if e.lightning != nil {
		e.lightning.Close()
		e.lightning = nil
	}
}

func precipMode(p scene.PrecipMode) Mode {
	if p == scene.PrecipSnow {
		return ModeSnow
	}
	return ModeRain
}
