package scene

import (
	"github.com/weatherscene/weatherscene/internal/weather"
)

// PrecipMode selects which particle ensemble a scene runs, if any.
type PrecipMode string

const (
	PrecipNone PrecipMode = "none"
	PrecipRain PrecipMode = "rain"
	PrecipSnow PrecipMode = "snow"
)

// Particle ensemble sizes. Portals run a reduced-fidelity copy of the
// scene, so their ensembles are much smaller than the main view's.
const (
	ParticleCountMain   = 800
	ParticleCountPortal = 100
)

// Context describes where a derived scene will be rendered. The zero value
// is the main view. Portal previews force daytime lighting.
type Context struct {
	Portal bool `json:"portal"`
}

// Parameters is the full derived visual state for one weather record.
// Given the same record and context the derivation is referentially
// transparent: no hidden inputs, no randomness.
type Parameters struct {
	Class         weather.Class `json:"class"`
	Phase         Phase         `json:"phase"`
	Sky           Sky           `json:"sky"`
	Visibility    Visibility    `json:"visibility"`
	Precip        PrecipMode    `json:"precip"`
	ParticleCount int           `json:"particle_count"`
	Lightning     bool          `json:"lightning"`
}

// Derive computes the scene parameters for a record in a context.
func Derive(rec weather.Record, ctx Context) Parameters {
	class := weather.Classify(rec.ConditionText)

	hour := rec.Hour()
	phase := ResolvePhase(hour)
	if ctx.Portal {
		// Preview lighting is pinned to day.
		phase = PhaseDay
	}

	p := Parameters{
		Class:      class,
		Phase:      phase,
		Sky:        SkyFor(phase),
		Visibility: ResolveVisibility(class, phase, rec.ConditionText, ctx.Portal),
	}

	switch class {
	case weather.ClassRainy, weather.ClassStormy:
		p.Precip = PrecipRain
	case weather.ClassSnowy:
		p.Precip = PrecipSnow
	default:
		p.Precip = PrecipNone
	}
	if p.Precip != PrecipNone {
		p.ParticleCount = ParticleCountMain
		if ctx.Portal {
			p.ParticleCount = ParticleCountPortal
		}
	}

	p.Lightning = class == weather.ClassStormy

	return p
}
