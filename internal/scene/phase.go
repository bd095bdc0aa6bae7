// Package scene derives renderable scene state from weather records:
// lighting phase, sky parameters, visibility flags, and the particle
// configuration the simulation layer consumes.
package scene

// Phase is one of four lighting periods derived from local hour.
type Phase string

const (
	PhaseDawn  Phase = "dawn"
	PhaseDay   Phase = "day"
	PhaseDusk  Phase = "dusk"
	PhaseNight Phase = "night"
)

// Sky is the atmospheric parameter tuple for a phase. When Scattering is
// false the scattering sky is suppressed entirely in favor of a flat
// background plus a star field.
type Sky struct {
	SunPosition [3]float64 `json:"sun_position"`
	Turbidity   float64    `json:"turbidity"`
	Inclination float64    `json:"inclination"`
	Scattering  bool       `json:"scattering"`
}

// ResolvePhase maps a local hour (0-23) to its lighting phase. The night
// and dawn bands both contain hour 6; night is tested first, so hour 6 and
// hour 19 always resolve to night. That precedence is load-bearing and
// kept as-is (see DESIGN.md).
func ResolvePhase(hour int) Phase {
	switch {
	case hour >= 19 || hour <= 6:
		return PhaseNight
	case hour < 8:
		return PhaseDawn
	case hour >= 17:
		return PhaseDusk
	default:
		return PhaseDay
	}
}

// SkyFor returns the fixed sky tuple for a phase. Dawn and dusk place the
// sun just below the horizon with high turbidity for a warm scattering
// band; day raises the sun and clears the air; night switches the sky off.
func SkyFor(phase Phase) Sky {
	switch phase {
	case PhaseDawn:
		return Sky{SunPosition: [3]float64{-1, -0.05, 0}, Turbidity: 10, Inclination: 0.48, Scattering: true}
	case PhaseDusk:
		return Sky{SunPosition: [3]float64{1, -0.05, 0}, Turbidity: 10, Inclination: 0.48, Scattering: true}
	case PhaseNight:
		return Sky{}
	default:
		return Sky{SunPosition: [3]float64{0, 1, 0}, Turbidity: 2, Inclination: 0.6, Scattering: true}
	}
}
