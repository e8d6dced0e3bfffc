package bess

import "github.com/nordvolt/gridcore/internal/gridcore"

// Inputs is what the fleet needs from the dispatcher/clock each tick.
type Inputs struct {
	HourIndex              int     // 0..23, current local hour
	SecondsRemainingInHour float64 // floored at 1 by the caller
	DABidMW                float64 // signed, current hour
	FCRBidMW               float64 // non-negative, current hour
	FrequencyHz            float64
}

// Report summarizes one tick's fleet-wide allocation for telemetry and
// settlement.
type Report struct {
	TotalPowerMW     float64
	DAGroupPowerMW   float64
	FCRGroupPowerMW  float64
	DADeliveredMWh   float64 // accumulated so far in the current hour
	ActiveDirection  int     // -1, 0, +1: the FCR-N latch's current direction
	ShadowFCRPowerMW float64 // informational-only shadow projection, §12
}

// Fleet is the BESS fleet owning every unit and the cross-unit
// allocation/latch state of §4.8.
type Fleet struct {
	Units []*Unit

	lastHourIndex  int
	haveHour       bool
	daDeliveredMWh float64

	latchSign    int
	latchTimerS  float64
	activeDir    int

	shadowSoC01      float64
	shadowCapacityMWh float64
}

// NewFleet creates a fleet from the given units.
func NewFleet(units []*Unit) *Fleet {
	return &Fleet{Units: units, shadowSoC01: 0.5}
}

// Step advances every unit by one second and returns the fleet-wide
// report, per §4.8.
func (f *Fleet) Step(in Inputs) Report {
	if !f.haveHour || in.HourIndex != f.lastHourIndex {
		f.daDeliveredMWh = 0
		f.lastHourIndex = in.HourIndex
		f.haveHour = true
	}

	f.stepLatch(in.FrequencyHz)

	var daCapacity, fcrCapacity float64
	var daUnits, fcrUnits []*Unit

	for _, u := range f.Units {
		if u.Mode != ModeNone {
			continue // manual units are excluded from auto allocation
		}
		switch u.Market {
		case MarketDA:
			daUnits = append(daUnits, u)
			daCapacity += u.Config.MaxPowerMW
		case MarketFCR:
			fcrUnits = append(fcrUnits, u)
			fcrCapacity += u.Config.MaxPowerMW
		}
	}

	var shadowAutoCapacity float64
	for _, u := range f.Units {
		if u.Mode != ModeNone || u.Market != MarketAuto {
			continue
		}
		shadowAutoCapacity += u.Config.MaxPowerMW
		// Greedily join FCR while its group capacity is still short of
		// the bid; otherwise join DA if a DA bid exists; otherwise sit
		// inactive, per §4.8.
		switch {
		case in.FCRBidMW > 0 && fcrCapacity < in.FCRBidMW:
			fcrUnits = append(fcrUnits, u)
			fcrCapacity += u.Config.MaxPowerMW
		case in.DABidMW != 0:
			daUnits = append(daUnits, u)
			daCapacity += u.Config.MaxPowerMW
		}
	}

	daTargetMW := f.daGroupTarget(in, daCapacity)
	fcrTargetMW := gridcore.Clamp(float64(-f.activeDir)*in.FCRBidMW, -fcrCapacity, fcrCapacity)

	assigned := make(map[*Unit]bool, len(daUnits)+len(fcrUnits))

	var report Report
	for _, u := range daUnits {
		share := gridcore.SafeDiv(u.Config.MaxPowerMW, daCapacity, 1e-6)
		actual := u.Step(daTargetMW * share)
		report.DAGroupPowerMW += actual
		assigned[u] = true
	}
	for _, u := range fcrUnits {
		share := gridcore.SafeDiv(u.Config.MaxPowerMW, fcrCapacity, 1e-6)
		actual := u.Step(fcrTargetMW * share)
		report.FCRGroupPowerMW += actual
		assigned[u] = true
	}
	for _, u := range f.Units {
		if u.Mode == ModeNone {
			if !assigned[u] {
				u.Step(0) // inactive, or auto with no FCR/DA bid to join
			}
			continue
		}
		switch u.Mode {
		case ModeDischarge:
			u.Step(u.Config.MaxPowerMW)
		case ModeCharge:
			u.Step(-u.Config.MaxPowerMW)
		}
	}

	f.daDeliveredMWh += report.DAGroupPowerMW * dt / 3600.0

	report.TotalPowerMW = report.DAGroupPowerMW + report.FCRGroupPowerMW
	report.DADeliveredMWh = f.daDeliveredMWh
	report.ActiveDirection = f.activeDir
	report.ShadowFCRPowerMW = f.stepShadow(shadowAutoCapacity, fcrTargetMW, fcrCapacity)
	return report
}

// daGroupTarget computes the DA group's target power to finish the
// current hour's bid energy in the remaining seconds of the hour,
// clamped to +-group capacity. Guards the remaining-seconds
// denominator per spec §9.
func (f *Fleet) daGroupTarget(in Inputs, daCapacity float64) float64 {
	remainingMWh := in.DABidMW - f.daDeliveredMWh
	targetMW := gridcore.SafeDiv(remainingMWh*3600.0, in.SecondsRemainingInHour, 1.0)
	return gridcore.Clamp(targetMW, -daCapacity, daCapacity)
}

// stepLatch implements the 3-second FCR-N direction latch: while
// f!=50 the sign of (f-50) is tracked; once the same sign has held for
// 3 consecutive seconds it becomes the active direction; f==50.0
// exactly resets the latch to 0, per §4.8 and §9.
func (f *Fleet) stepLatch(frequencyHz float64) {
	var sign int
	switch {
	case frequencyHz > 50.0:
		sign = 1
	case frequencyHz < 50.0:
		sign = -1
	default:
		sign = 0
	}

	if sign == 0 {
		f.latchSign = 0
		f.latchTimerS = 0
		f.activeDir = 0
		return
	}

	if sign == f.latchSign {
		f.latchTimerS += dt
	} else {
		f.latchSign = sign
		f.latchTimerS = dt
	}

	if f.latchTimerS >= 3.0 {
		f.activeDir = sign
	}
}

// stepShadow advances the informational shadow FCR-only projection
// (§12): a parallel battery sized to the current auto-market group's
// capacity, run as if it had committed its entire capacity to FCR-N,
// never touching live settlement state.
func (f *Fleet) stepShadow(autoCapacityMW, realFCRTargetMW, realFCRCapacity float64) float64 {
	if autoCapacityMW <= 0 {
		return 0
	}
	f.shadowCapacityMWh = autoCapacityMW // 1h-equivalent notional capacity
	shadowTarget := gridcore.Clamp(realFCRTargetMW, -autoCapacityMW, autoCapacityMW)
	if realFCRCapacity > 0 {
		shadowTarget = gridcore.SafeDiv(realFCRTargetMW*autoCapacityMW, realFCRCapacity, 1e-6)
		shadowTarget = gridcore.Clamp(shadowTarget, -autoCapacityMW, autoCapacityMW)
	}

	deltaMWh := -shadowTarget * dt / 3600.0
	stored := f.shadowSoC01 * f.shadowCapacityMWh
	stored = gridcore.Clamp(stored+deltaMWh, 0, f.shadowCapacityMWh)
	f.shadowSoC01 = gridcore.SafeDiv(stored, f.shadowCapacityMWh, 1e-9)
	return shadowTarget
}
