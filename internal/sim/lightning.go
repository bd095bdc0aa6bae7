package sim

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Lightning defaults.
const (
	// DefaultFlashProbability is the per-tick Bernoulli chance of a flash
	// while idle: roughly one flash every 5.5s at 60 ticks per second.
	DefaultFlashProbability = 0.003

	// DefaultFlashDuration is wall-clock, not tick-counted, so a flash
	// lasts the same real time at any frame rate.
	DefaultFlashDuration = 400 * time.Millisecond

	DefaultPeakIntensity = 5.0
	DefaultOffsetRange   = 7.5
)

// LightningConfig configures a controller. Zero values take the defaults
// above.
type LightningConfig struct {
	FlashProbability float64
	FlashDuration    time.Duration
	PeakIntensity    float64

	// OffsetRange bounds the flash's horizontal offset: uniform in
	// [-OffsetRange, +OffsetRange].
	OffsetRange float64

	// Rand overrides the random source, for tests.
	Rand *rand.Rand
}

// LightningState is the per-tick output the rendering layer consumes.
type LightningState struct {
	Active    bool    `json:"active"`
	Intensity float64 `json:"intensity"`
	OffsetX   float64 `json:"offset_x"`
}

// Lightning is a two-state stochastic flash generator. While idle, each
// tick draws one Bernoulli trial; on success it flashes at a random
// horizontal offset and arms a wall-clock timer to return to idle. While
// flashing no trial is drawn, so flashes never overlap.
type Lightning struct {
	probability float64
	duration    time.Duration
	peak        float64
	offsetRange float64
	rng         *rand.Rand

	mu       sync.Mutex
	flashing bool
	closed   bool
	offsetX  float64
	timer    *time.Timer
}

// NewLightning creates an idle controller.
func NewLightning(cfg LightningConfig) *Lightning {
	if cfg.FlashProbability == 0 {
		cfg.FlashProbability = DefaultFlashProbability
	}
	if cfg.FlashDuration == 0 {
		cfg.FlashDuration = DefaultFlashDuration
	}
	if cfg.PeakIntensity == 0 {
		cfg.PeakIntensity = DefaultPeakIntensity
	}
	if cfg.OffsetRange == 0 {
		cfg.OffsetRange = DefaultOffsetRange
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Lightning{
		probability: cfg.FlashProbability,
		duration:    cfg.FlashDuration,
		peak:        cfg.PeakIntensity,
		offsetRange: cfg.OffsetRange,
		rng:         rng,
	}
}

// Tick runs one frame of the controller and returns its current state.
func (l *Lightning) Tick() LightningState {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return LightningState{}
	}
	if !l.flashing && l.rng.Float64() < l.probability {
		l.flashing = true
		l.offsetX = -l.offsetRange + l.rng.Float64()*2*l.offsetRange
		l.timer = time.AfterFunc(l.duration, l.reset)
	}
	return l.stateLocked()
}

// State returns the current state without running a trial.
func (l *Lightning) State() LightningState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stateLocked()
}

func (l *Lightning) stateLocked() LightningState {
	if !l.flashing {
		return LightningState{}
	}
	return LightningState{Active: true, Intensity: l.peak, OffsetX: l.offsetX}
}

// reset is the timer callback ending a flash.
func (l *Lightning) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flashing = false
	l.timer = nil
}

// Close tears the controller down, cancelling any pending reset so a
// destroyed scene cannot leak a timer into a future instance.
func (l *Lightning) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.flashing = false
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}
