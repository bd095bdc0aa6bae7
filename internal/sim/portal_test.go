package sim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherscene/weatherscene/internal/sim"
)

func TestPortalBlendConvergesGeometrically(t *testing.T) {
	p := sim.NewPortal(0)
	p.Select()

	// From blend 0 toward target 1, after k ticks blend = 1 - 0.9^k.
	for k := 1; k <= 100; k++ {
		got := p.Tick()
		want := 1 - math.Pow(0.9, float64(k))
		require.InDelta(t, want, got, 1e-12, "tick %d", k)
		require.Less(t, got, 1.0, "blend approaches but never reaches 1")
	}
}

func TestPortalBlendMonotonic(t *testing.T) {
	p := sim.NewPortal(1)
	p.Select()

	prev := p.Blend()
	for i := 0; i < 200; i++ {
		got := p.Tick()
		assert.Greater(t, got, prev)
		prev = got
	}
}

// Switching target mid-flight reverses direction without ever leaving
// [0, 1].
func TestPortalTargetSwitchNoOvershoot(t *testing.T) {
	p := sim.NewPortal(2)
	p.Select()
	for i := 0; i < 30; i++ {
		p.Tick()
	}
	require.Greater(t, p.Blend(), 0.9)

	p.Dismiss()
	for i := 0; i < 500; i++ {
		got := p.Tick()
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
	assert.True(t, p.Settled())
	assert.InDelta(t, 0, p.Blend(), sim.SettleEpsilon)
}

func TestPortalHoverTargetsHalf(t *testing.T) {
	p := sim.NewPortal(0)
	p.Hover()
	assert.Equal(t, sim.PortalActive, p.Mode())

	for i := 0; i < 300; i++ {
		p.Tick()
	}
	assert.InDelta(t, 0.5, p.Blend(), sim.SettleEpsilon)
	assert.True(t, p.Settled())
}

// Hover cannot demote a fullscreen portal; only Dismiss leaves fullscreen.
func TestPortalHoverDoesNotDemoteFullscreen(t *testing.T) {
	p := sim.NewPortal(0)
	p.Select()
	p.Hover()
	assert.Equal(t, sim.PortalFullscreen, p.Mode())

	p.Dismiss()
	assert.Equal(t, sim.PortalInactive, p.Mode())
}

// Overlays follow the discrete mode, not the continuous blend: they cut
// out the instant the portal goes fullscreen.
func TestPortalOverlaySuppression(t *testing.T) {
	p := sim.NewPortal(0)
	assert.True(t, p.OverlayVisible())

	p.Hover()
	assert.True(t, p.OverlayVisible())

	p.Select()
	assert.False(t, p.OverlayVisible(), "suppressed while blend is still near 0")
	assert.Less(t, p.Blend(), 0.1)

	p.Dismiss()
	assert.True(t, p.OverlayVisible())
}
