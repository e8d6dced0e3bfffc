package supply

import "github.com/nordvolt/gridcore/internal/gridcore"

// NuclearDispatchMode selects how a nuclear fleet's units are driven.
type NuclearDispatchMode int

const (
	// NuclearMustRun ramps every unit toward its capacity.
	NuclearMustRun NuclearDispatchMode = iota
	// NuclearFollowFleetSchedule ramps the whole fleet to a single target.
	NuclearFollowFleetSchedule
	// NuclearFollowPerUnitSchedule ramps each unit to its own target.
	NuclearFollowPerUnitSchedule
)

// NuclearUnitConfig is one unit's static envelope.
type NuclearUnitConfig struct {
	CapacityMW   float64
	MinStableFrac float64 // 0.50
	RampMWPerS   float64  // 0.05 MW/s per unit
}

// DefaultNuclearUnitConfig returns the per-unit envelope named in §4.5.
func DefaultNuclearUnitConfig(capacityMW float64) NuclearUnitConfig {
	return NuclearUnitConfig{CapacityMW: capacityMW, MinStableFrac: 0.50, RampMWPerS: 0.05}
}

// NuclearUnit is one reactor's runtime state.
type NuclearUnit struct {
	Config    NuclearUnitConfig
	OutputMW  float64
}

// NuclearFleet is the six-unit nuclear fleet of §4.5. Per-unit ramp is
// 0.05 MW/s; with six units that already sums to the fleet-wide 0.30
// MW/s ceiling, so no separate fleet ramp limiter is needed.
type NuclearFleet struct {
	Units [6]NuclearUnit
}

// NewNuclearFleet creates a six-unit fleet with the given per-unit
// capacities, each starting at its minimum stable output.
func NewNuclearFleet(capacitiesMW [6]float64) *NuclearFleet {
	f := &NuclearFleet{}
	for i, cap := range capacitiesMW {
		cfg := DefaultNuclearUnitConfig(cap)
		f.Units[i] = NuclearUnit{Config: cfg, OutputMW: cfg.MinStableFrac * cap}
	}
	return f
}

// CapacityMW returns the fleet's total installed capacity.
func (f *NuclearFleet) CapacityMW() float64 {
	var total float64
	for _, u := range f.Units {
		total += u.Config.CapacityMW
	}
	return total
}

// TotalOutputMW returns the fleet's current total output.
func (f *NuclearFleet) TotalOutputMW() float64 {
	var total float64
	for _, u := range f.Units {
		total += u.OutputMW
	}
	return total
}

// Step advances the fleet by one second under the given dispatch mode.
// fleetTargetMW is used in NuclearFollowFleetSchedule mode;
// perUnitTargetsMW in NuclearFollowPerUnitSchedule mode.
// secondsToNextSchedule gives the look-ahead feasibility clamp, with the
// mode's own target taken as the next scheduled point: a unit's ramp
// this tick is also bounded so it can still reach that point in time.
func (f *NuclearFleet) Step(mode NuclearDispatchMode, fleetTargetMW float64, perUnitTargetsMW [6]float64, secondsToNextSchedule float64) {
	switch mode {
	case NuclearMustRun:
		for i := range f.Units {
			u := &f.Units[i]
			target := u.Config.CapacityMW
			u.OutputMW = f.rampUnit(u, target, secondsToNextSchedule, target)
		}
	case NuclearFollowFleetSchedule:
		minStable := f.minStableTotal()
		target := gridcore.Clamp(fleetTargetMW, minStable, f.CapacityMW())
		share := gridcore.SafeDiv(target, f.CapacityMW(), 1e-6)
		for i := range f.Units {
			u := &f.Units[i]
			unitTarget := gridcore.Clamp(share*u.Config.CapacityMW, u.Config.MinStableFrac*u.Config.CapacityMW, u.Config.CapacityMW)
			u.OutputMW = f.rampUnit(u, unitTarget, secondsToNextSchedule, unitTarget)
		}
	case NuclearFollowPerUnitSchedule:
		for i := range f.Units {
			u := &f.Units[i]
			target := gridcore.Clamp(perUnitTargetsMW[i], u.Config.MinStableFrac*u.Config.CapacityMW, u.Config.CapacityMW)
			u.OutputMW = f.rampUnit(u, target, secondsToNextSchedule, perUnitTargetsMW[i])
		}
	}
}

func (f *NuclearFleet) minStableTotal() float64 {
	var total float64
	for _, u := range f.Units {
		total += u.Config.MinStableFrac * u.Config.CapacityMW
	}
	return total
}

// rampUnit moves a unit's output toward target, clamped so the unit can
// still feasibly reach nextScheduledMW within secondsToNextSchedule at
// its own ramp rate (the look-ahead feasibility clamp of §4.5).
func (f *NuclearFleet) rampUnit(u *NuclearUnit, target, secondsToNextSchedule, nextScheduledMW float64) float64 {
	maxStep := u.Config.RampMWPerS * dt
	if secondsToNextSchedule > 0 {
		feasibleStep := gridcore.SafeDiv(nextScheduledMW-u.OutputMW, secondsToNextSchedule, 1.0)
		if feasibleStep > 0 && feasibleStep < maxStep {
			maxStep = feasibleStep
		} else if feasibleStep < 0 && -feasibleStep < maxStep {
			maxStep = -feasibleStep
		}
	}
	return rampToward(u.OutputMW, target, maxStep/dt)
}
