// Package runner implements the pacing loop of spec §5: a cooperative
// scheduler that advances a *world.World either N ticks per wall-clock
// frame at a selectable speed multiplier, or unpaced for a fixed number
// of ticks ("simulate mode"). Per §5, the orchestrator itself never
// suspends internally; Runner is the external caller that owns the
// paused flag and decides when to call World.Tick.
package runner

import (
	"sync"
	"time"

	"github.com/nordvolt/gridcore/internal/bess"
	"github.com/nordvolt/gridcore/internal/gridcore"
	"github.com/nordvolt/gridcore/internal/world"
)

// AllowedSpeeds is the speed-multiplier set spec §5 names.
var AllowedSpeeds = []float64{1, 10, 50, 1000, 2000, 3000, 10000}

// OnTick is invoked once per recorded tick (never for warm-up ticks),
// from the Runner's own goroutine; callers must not block it for long.
type OnTick func(world.Snapshot)

// OnPhase is invoked whenever the world's lifecycle phase changes.
type OnPhase func(world.Phase)

// Runner paces a World's tick loop. It is the "external orchestrator"
// of spec §5 that owns the paused flag; World itself stays purely
// synchronous and single-threaded.
type Runner struct {
	World *world.World

	mu              sync.Mutex
	paused          bool
	speedMultiplier float64
	lastPhase       world.Phase

	OnTick  OnTick
	OnPhase OnPhase
}

// New creates a Runner at the default (real-time) speed, not paused.
func New(w *world.World) *Runner {
	return &Runner{World: w, speedMultiplier: 1, lastPhase: w.Phase}
}

// Pause stops the pacing loop from advancing further ticks until Resume.
func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = true
}

// Resume lifts a pause.
func (r *Runner) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = false
}

// Paused reports whether the loop is currently paused.
func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// SetSpeed selects the pacing multiplier, clamped to the nearest
// allowed value's range [1, 10000] per spec §5; callers that want an
// unlisted multiplier still get a usable, bounded pacing rate rather
// than a rejected call, consistent with §7's NumericBound policy.
func (r *Runner) SetSpeed(multiplier float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speedMultiplier = gridcore.Clamp(multiplier, 1, 10000)
}

// Speed returns the current pacing multiplier.
func (r *Runner) Speed() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.speedMultiplier
}

// Run drives the pacing loop on a fixed wall-clock frame interval until
// stop is closed or the world reaches day_complete. Each frame advances
// speedMultiplier*frameInterval simulated seconds, rounded to whole
// ticks (at least one, so a paused-then-resumed loop still makes
// progress instead of stalling below one tick per frame).
func (r *Runner) Run(frameInterval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if r.Paused() {
				continue
			}
			n := int(r.Speed() * frameInterval.Seconds())
			if n < 1 {
				n = 1
			}
			if r.stepN(n) {
				return
			}
		}
	}
}

// SimulateUnpaced advances the world n ticks back-to-back with no
// wall-clock pacing, per §5's "simulate mode emits N ticks back-to-back".
func (r *Runner) SimulateUnpaced(n int) {
	r.stepN(n)
}

// stepN advances the world up to n ticks, firing OnTick/OnPhase
// callbacks, and reports whether the day completed.
func (r *Runner) stepN(n int) bool {
	for i := 0; i < n; i++ {
		wasWarmup := r.World.Phase == world.PhaseWarmup
		r.World.Tick()
		if r.OnTick != nil && !wasWarmup {
			r.OnTick(r.World.LastSnapshot())
		}
		if r.World.Phase != r.lastPhase {
			r.lastPhase = r.World.Phase
			if r.OnPhase != nil {
				r.OnPhase(r.lastPhase)
			}
		}
		if r.World.Phase == world.PhaseDayComplete {
			return true
		}
	}
	return false
}

// SetDABid sets one hour of the DA bid sequence, spec §6's setDABid.
func (r *Runner) SetDABid(hour int, mw float64) error {
	return r.World.SetDABid(hour, mw)
}

// SetFCRBid sets one hour of the FCR bid sequence, spec §6's setFCRBid.
func (r *Runner) SetFCRBid(hour int, mw float64) error {
	return r.World.SetFCRBid(hour, mw)
}

// SetUnitMode sets a BESS unit's manual override, spec §6's setUnitMode.
func (r *Runner) SetUnitMode(id string, mode bess.Mode) error {
	return r.World.SetUnitMode(id, mode)
}

// SetUnitMarket sets a BESS unit's market allocation, spec §6's
// setUnitMarket.
func (r *Runner) SetUnitMarket(id string, market bess.Market) error {
	return r.World.SetUnitMarket(id, market)
}
