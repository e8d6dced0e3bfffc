package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNuclearMustRunSaturatesAtCapacity(t *testing.T) {
	f := NewNuclearFleet([6]float64{1000, 1000, 1000, 1000, 1000, 1000})
	for i := 0; i < 200000; i++ {
		f.Step(NuclearMustRun, 0, [6]float64{}, 0)
	}
	assert.GreaterOrEqual(t, f.TotalOutputMW(), f.CapacityMW()*0.999, "must-run fleet should saturate at capacity")
}

func TestNuclearNeverBelowMinStable(t *testing.T) {
	f := NewNuclearFleet([6]float64{1000, 1000, 1000, 1000, 1000, 1000})
	for i := 0; i < 200000; i++ {
		f.Step(NuclearFollowFleetSchedule, 0, [6]float64{}, 0)
	}
	for i, u := range f.Units {
		minStable := u.Config.MinStableFrac * u.Config.CapacityMW
		assert.GreaterOrEqualf(t, u.OutputMW, minStable-1e-6, "unit %d below min stable", i)
	}
}

func TestNuclearRampLimited(t *testing.T) {
	f := NewNuclearFleet([6]float64{1000, 1000, 1000, 1000, 1000, 1000})
	before := f.TotalOutputMW()
	f.Step(NuclearFollowFleetSchedule, f.CapacityMW(), [6]float64{}, 0)
	after := f.TotalOutputMW()
	maxPossibleStep := 6 * 0.05 * dt
	assert.LessOrEqual(t, after-before, maxPossibleStep+1e-6, "single-tick fleet change exceeds combined ramp limit")
}

func TestNuclearPerUnitSchedule(t *testing.T) {
	f := NewNuclearFleet([6]float64{1000, 1000, 1000, 1000, 1000, 1000})
	targets := [6]float64{1000, 500, 500, 500, 500, 500}
	for i := 0; i < 200000; i++ {
		f.Step(NuclearFollowPerUnitSchedule, 0, targets, 0)
	}
	assert.GreaterOrEqual(t, f.Units[0].OutputMW, f.Units[1].OutputMW, "unit 0 should track its higher per-unit target")
}
