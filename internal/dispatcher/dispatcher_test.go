package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flatInputs(demandMW float64) PlanningInputs {
	var in PlanningInputs
	for h := 0; h < hoursPerDay; h++ {
		in.ForecastDemandMW[h] = demandMW
	}
	in.NuclearToggleOn = true
	in.NuclearCapacityMW = 3000
	in.HydroReservoirCurrentStorageMWh = 20_000_000
	in.HydroReservoirCapacityMWh = 34_000_000
	in.HydroReservoirMaxMW = 16200
	in.HydroDailyMaxBudgetMWh = 200_000
	in.PreferImports01 = 0.5
	in.ImportCapMW = 3000
	in.ExportCapMW = 3000
	in.PeakersCapacityMW = 2000
	return in
}

func TestRecomputePlanReserveTargetsRespectFloorsAndCaps(t *testing.T) {
	in := flatInputs(1000) // small load: reserve targets should sit at their floors
	plan := RecomputePlan(in)
	assert.Equal(t, 250.0, plan.FCRUpMW[0], "expected FCR floor 250")
	assert.Equal(t, 300.0, plan.AFRRUpMW[0], "expected aFRR floor 300")
	assert.Equal(t, 600.0, plan.MFRRUpMW[0], "expected mFRR floor 600")

	in = flatInputs(100_000) // huge load: reserve targets should sit at their caps
	plan = RecomputePlan(in)
	assert.Equal(t, 900.0, plan.FCRUpMW[0], "expected FCR cap 900")
	assert.Equal(t, 1200.0, plan.AFRRUpMW[0], "expected aFRR cap 1200")
	assert.Equal(t, 3000.0, plan.MFRRUpMW[0], "expected mFRR cap 3000")
}

func TestRecomputePlanNeverExceedsHydroBudget(t *testing.T) {
	in := flatInputs(30000)
	in.HydroDailyMaxBudgetMWh = 5000
	plan := RecomputePlan(in)
	var sum float64
	for h := 0; h < hoursPerDay; h++ {
		sum += plan.HydroReservoirMW[h] // 1h buckets, MW==MWh per hour
	}
	assert.LessOrEqual(t, sum, 5000+1e-6)
}

func TestRecomputePlanMustTakeReducesResidualAllocation(t *testing.T) {
	in := flatInputs(20000)
	lowRenewables := RecomputePlan(in)

	in.WindMW[10] = 15000
	in.SolarMW[10] = 3000
	highRenewables := RecomputePlan(in)

	assert.LessOrEqualf(t, highRenewables.PeakersMW[10], lowRenewables.PeakersMW[10],
		"expected peaker dispatch to fall as must-take rises")
}

func TestRealTimeStepRampsTowardTargetNotInstant(t *testing.T) {
	var plan Plan
	plan.HydroReservoirMW[0] = 5000

	cap := Capability{
		HydroMaxMW: 16200, ImportCapMW: 3000, ExportCapMW: 3000, PeakersMaxMW: 2000, DRShedMaxMW: 500,
		HydroRampMWPerS: 120, ImportRampMWPerS: 50, PeakersRampMWPerS: 30, NuclearRampMWPerS: 5, DRRampMWPerS: 50,
	}
	rt := NewRealTime()
	out := rt.Step(plan, 0, 50.0, 0, 0, cap)
	assert.Equal(t, cap.HydroRampMWPerS, out.HydroReservoirMW, "expected first tick to ramp by exactly the rate limit 120")
	assert.Less(t, out.HydroReservoirMW, 5000.0, "expected hydro setpoint to still be far from target after one tick")
}

func TestRealTimeEscalatesBelowThresholdFrequency(t *testing.T) {
	var plan Plan
	plan.PeakersMW[0] = 0
	cap := Capability{
		HydroMaxMW: 16200, ImportCapMW: 3000, ExportCapMW: 3000, PeakersMaxMW: 2000, DRShedMaxMW: 500,
		HydroRampMWPerS: 120, ImportRampMWPerS: 50, PeakersRampMWPerS: 2000, NuclearRampMWPerS: 5, DRRampMWPerS: 500,
	}
	rt := NewRealTime()
	out := rt.Step(plan, 0, 49.60, 0, 0, cap)
	assert.True(t, out.Escalated, "expected escalation at f=49.60")
	assert.Equal(t, cap.PeakersMaxMW, out.PeakersMW, "expected peakers dispatched to max under escalation")
	assert.Greater(t, out.DRShedMW, 0.0, "expected demand response shed under escalation")
}

func TestRealTimeSaturationEscalatesDRButNotPeakersAboveFrequencyFloor(t *testing.T) {
	var plan Plan
	plan.PeakersMW[0] = 0
	cap := Capability{
		HydroMaxMW: 16200, ImportCapMW: 3000, ExportCapMW: 3000, PeakersMaxMW: 2000, DRShedMaxMW: 500,
		HydroRampMWPerS: 120, ImportRampMWPerS: 50, PeakersRampMWPerS: 2000, NuclearRampMWPerS: 5, DRRampMWPerS: 500,
	}
	rt := NewRealTime()
	// aFRR saturation alone triggers escalation, but frequency never drops
	// to the 49.70 peaker threshold, only the 49.75 DR threshold.
	out := rt.Step(plan, 0, 49.73, 0, 0.9, cap)
	assert.True(t, out.Escalated, "expected escalation from aFRR saturation alone")
	assert.Equal(t, 0.0, out.PeakersMW, "expected peakers to stay at plan target above f=49.70")
	assert.Greater(t, out.DRShedMW, 0.0, "expected demand response shed at f=49.73 <= 49.75")
}

func TestComputeAvailabilityFCRDrawsFromHydroFirst(t *testing.T) {
	var plan Plan
	plan.FCRUpMW[0] = 500
	plan.AFRRUpMW[0] = 600
	plan.MFRRUpMW[0] = 1000

	h := Headroom{HydroUpMW: 800, ImportUpMW: 400, PeakersUpMW: 300, DRUpMW: 100}
	a := ComputeAvailability(plan, 0, h)

	assert.Equal(t, 500.0, a.FCRUpMW, "expected full FCR target backed by hydro")
	// remaining hydro (300) + imports (400) = 700, capped by the 600 aFRR target
	assert.Equal(t, 600.0, a.AFRRUpMW, "expected aFRR backed up to its target from leftover hydro+imports")
}
