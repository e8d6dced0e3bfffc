// Package bess implements the battery fleet of spec §4.8: per-unit SoC
// integration with round-trip efficiency, DA/FCR/auto/inactive market
// allocation, manual overrides, and the FCR-N direction latch.
package bess

import (
	"math"

	"github.com/google/uuid"

	"github.com/nordvolt/gridcore/internal/gridcore"
)

const dt = 1.0 // seconds

// Mode is a unit's manual override state.
type Mode int

const (
	ModeNone Mode = iota
	ModeCharge
	ModeDischarge
)

// Market is a unit's market allocation.
type Market int

const (
	MarketDA Market = iota
	MarketFCR
	MarketAuto
	MarketInactive
)

// Config is one unit's static envelope, spec §3.
type Config struct {
	MaxPowerMW          float64
	CapacityMWh         float64
	RoundTripEfficiency float64
	InitialSoC01        float64
}

// Unit is one battery's runtime state, spec §3. The invariant
// storedMWh = soc01*capacity in [0, capacity] holds after every Step.
type Unit struct {
	ID     string
	Config Config

	SoC01          float64
	CurrentPowerMW float64 // positive = discharging, negative = charging
	Mode           Mode
	Market         Market

	CumulativeChargedMWh    float64
	CumulativeDischargedMWh float64
	Clipped                 bool
}

// New creates a unit at its configured initial SoC, inactive.
func New(id string, cfg Config) *Unit {
	return &Unit{ID: id, Config: cfg, SoC01: gridcore.Clamp01(cfg.InitialSoC01), Market: MarketInactive}
}

// NewConfigured creates a unit with a generated id, for callers of
// setBESSFleet (spec §6) that submit bare configs without ids of their
// own (e.g. a bidding UI adding a unit to the fleet interactively).
func NewConfigured(cfg Config) *Unit {
	return New(uuid.NewString(), cfg)
}

// StoredMWh returns the unit's current stored energy.
func (u *Unit) StoredMWh() float64 { return u.SoC01 * u.Config.CapacityMWh }

// Step applies a signed target power (positive=discharge, negative=
// charge) for one second, per §4.8's physics:
//
//	discharging: deltaMWh = -target*dt/3600
//	charging:    deltaMWh = -target*dt/3600*sqrt(eta)
//
// Stored energy is clipped to [0, capacity]; when clipped, actual power
// is recomputed from the achievable delta and Clipped is set.
func (u *Unit) Step(targetMW float64) float64 {
	capacity := u.Config.CapacityMWh
	target := gridcore.Clamp(targetMW, -u.Config.MaxPowerMW, u.Config.MaxPowerMW)
	eta := gridcore.Clamp01(u.Config.RoundTripEfficiency)
	sqrtEta := math.Sqrt(eta)

	stored := u.StoredMWh()
	var deltaMWh float64
	switch {
	case target > 0: // discharging
		deltaMWh = -target * dt / 3600.0
	case target < 0: // charging
		deltaMWh = -target * dt / 3600.0 * sqrtEta
	}

	newStored := stored + deltaMWh
	clipped := false
	if newStored < 0 {
		newStored = 0
		clipped = true
	}
	if newStored > capacity {
		newStored = capacity
		clipped = true
	}

	if clipped {
		achievedDeltaMWh := newStored - stored
		switch {
		case target > 0:
			target = gridcore.SafeDiv(-achievedDeltaMWh*3600.0, dt, 1e-6)
		case target < 0:
			target = gridcore.SafeDiv(-achievedDeltaMWh*3600.0, dt*sqrtEta, 1e-6)
		}
	}

	u.SoC01 = gridcore.SafeDiv(newStored, capacity, 1e-9)
	u.SoC01 = gridcore.Clamp01(u.SoC01)
	u.CurrentPowerMW = target
	u.Clipped = clipped

	if target > 0 {
		u.CumulativeDischargedMWh += target * dt / 3600.0
	} else if target < 0 {
		u.CumulativeChargedMWh += -target * dt / 3600.0
	}

	const socEps = 1e-6
	if u.Mode == ModeCharge && u.SoC01 >= 1-socEps {
		u.Mode = ModeNone
	}
	if u.Mode == ModeDischarge && u.SoC01 <= socEps {
		u.Mode = ModeNone
	}

	return target
}

// EquivalentCycles returns the equivalent full-cycle throughput count,
// informational only (§12 supplemented feature; never feeds dispatch).
func (u *Unit) EquivalentCycles() float64 {
	if u.Config.CapacityMWh <= 0 {
		return 0
	}
	return (u.CumulativeChargedMWh + u.CumulativeDischargedMWh) / 2 / u.Config.CapacityMWh
}
