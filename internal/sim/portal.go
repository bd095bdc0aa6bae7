package sim

// Portal blend tuning. The blend never reaches its target exactly; after k
// ticks toward target 1 from 0 it sits at 1 - 0.9^k. Within SettleEpsilon
// counts as settled.
const (
	BlendAlpha    = 0.1
	SettleEpsilon = 1e-3

	blendTargetInactive   = 0.0
	blendTargetActive     = 0.5
	blendTargetFullscreen = 1.0
)

// PortalMode is the authoritative discrete interaction state of a portal.
type PortalMode string

const (
	PortalInactive   PortalMode = "inactive"
	PortalActive     PortalMode = "active"
	PortalFullscreen PortalMode = "fullscreen"
)

// Portal is the per-forecast-day interaction state machine. Pointer events
// set the mode; each tick the continuous blend value eases toward the
// target the mode implies. The rendering layer mixes "portal as window"
// against "portal as full environment" on blend alone.
type Portal struct {
	dayIndex int
	mode     PortalMode
	blend    float64
}

// NewPortal creates an inactive portal for a forecast day.
func NewPortal(dayIndex int) *Portal {
	return &Portal{dayIndex: dayIndex, mode: PortalInactive}
}

// DayIndex returns the forecast day this portal previews.
func (p *Portal) DayIndex() int { return p.dayIndex }

// Mode returns the discrete interaction state.
func (p *Portal) Mode() PortalMode { return p.mode }

// Blend returns the current blend value in [0, 1].
func (p *Portal) Blend() float64 { return p.blend }

// Hover marks the portal as pointed at. A fullscreen portal stays
// fullscreen; hover is only an entry from inactive.
func (p *Portal) Hover() {
	if p.mode != PortalFullscreen {
		p.mode = PortalActive
	}
}

// Select puts the portal fullscreen.
func (p *Portal) Select() {
	p.mode = PortalFullscreen
}

// Dismiss returns the portal to inactive (pointer exit or close).
func (p *Portal) Dismiss() {
	p.mode = PortalInactive
}

// OverlayVisible reports whether the portal's UI overlays (day label,
// temperature) should draw. They cut out the moment the portal goes
// fullscreen, independent of where blend has eased to.
func (p *Portal) OverlayVisible() bool {
	return p.mode != PortalFullscreen
}

// Settled reports whether blend is within SettleEpsilon of its target.
func (p *Portal) Settled() bool {
	d := p.target() - p.blend
	return d > -SettleEpsilon && d < SettleEpsilon
}

// Tick eases blend one step toward the mode's target. Exponential
// smoothing cannot overshoot for alpha in (0, 1], but the clamp keeps the
// contract explicit.
func (p *Portal) Tick() float64 {
	p.blend += (p.target() - p.blend) * BlendAlpha
	if p.blend < 0 {
		p.blend = 0
	} else if p.blend > 1 {
		p.blend = 1
	}
	return p.blend
}

func (p *Portal) target() float64 {
	switch p.mode {
	case PortalActive:
		return blendTargetActive
	case PortalFullscreen:
		return blendTargetFullscreen
	default:
		return blendTargetInactive
	}
}
