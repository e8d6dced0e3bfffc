// Package dispatcher implements the hierarchical dispatcher of spec
// §4.6: a day-ahead plan recomputed every 60s/on day change, 1s
// real-time setpoint corrections with escalation, and the reserve
// availability handed to the frequency/reserve controllers.
package dispatcher

import (
	"math"

	"github.com/nordvolt/gridcore/internal/gridcore"
)

const hoursPerDay = 24

// Plan is the 24-hour day-ahead dispatch plan, spec §3.
type Plan struct {
	NuclearMW        [hoursPerDay]float64
	HydroReservoirMW [hoursPerDay]float64
	NetImportMW      [hoursPerDay]float64
	PeakersMW        [hoursPerDay]float64

	FCRUpMW, FCRDownMW     [hoursPerDay]float64
	AFRRUpMW, AFRRDownMW   [hoursPerDay]float64
	MFRRUpMW, MFRRDownMW   [hoursPerDay]float64
}

// PlanningInputs is everything the day-ahead plan needs, read from the
// forecast and the current state of the dispatchable fleets.
type PlanningInputs struct {
	ForecastDemandMW [hoursPerDay]float64
	WindMW           [hoursPerDay]float64
	SolarMW          [hoursPerDay]float64
	RoRMW            [hoursPerDay]float64
	CHPMustTakeMW    [hoursPerDay]float64 // biofuel/waste + industrial CHP, per §13's open-question decision

	NuclearToggleOn  bool
	NuclearCapacityMW float64

	HydroReservoirCurrentStorageMWh float64
	HydroReservoirCapacityMWh       float64
	HydroReservoirMaxMW             float64
	HydroDailyMaxBudgetMWh          float64
	HydroPeakShaping01              float64

	PreferImports01 float64
	ImportCapMW     float64
	ExportCapMW     float64

	PeakersCapacityMW float64
}

// RecomputePlan runs the day-ahead planning pass of §4.6, steps 1-7.
func RecomputePlan(in PlanningInputs) Plan {
	var plan Plan

	const forecastErrorMargin = 1 + 0.05 + 0.03

	nuclearPlanMW := 0.0
	if in.NuclearToggleOn {
		nuclearPlanMW = 0.98 * in.NuclearCapacityMW
	}

	var residual, peakWeight [hoursPerDay]float64
	var peakWeightSum float64
	exponent := 1 + 1.5*gridcore.Clamp01(in.HydroPeakShaping01)

	for h := 0; h < hoursPerDay; h++ {
		demand := in.ForecastDemandMW[h] * forecastErrorMargin
		mustTake := in.WindMW[h] + in.SolarMW[h] + in.RoRMW[h] + in.CHPMustTakeMW[h]

		r := demand - mustTake - nuclearPlanMW
		if r < 0 {
			r = 0
		}
		residual[h] = r
		peakWeight[h] = math.Pow(r, exponent)
		peakWeightSum += peakWeight[h]

		plan.NuclearMW[h] = nuclearPlanMW
	}

	endOfDayTargetMWh := in.HydroReservoirCurrentStorageMWh * 0.35
	floorMWh := in.HydroReservoirCapacityMWh * 0.20
	if endOfDayTargetMWh < floorMWh {
		endOfDayTargetMWh = floorMWh
	}
	budgetMWh := in.HydroReservoirCurrentStorageMWh - endOfDayTargetMWh
	if budgetMWh < 0 {
		budgetMWh = 0
	}
	if budgetMWh > in.HydroDailyMaxBudgetMWh {
		budgetMWh = in.HydroDailyMaxBudgetMWh
	}

	for h := 0; h < hoursPerDay; h++ {
		share := gridcore.SafeDiv(peakWeight[h], peakWeightSum, 1e-6)
		hydroMW := gridcore.Clamp(budgetMWh*share, 0, in.HydroReservoirMaxMW)
		plan.HydroReservoirMW[h] = hydroMW

		remaining := residual[h] - hydroMW

		importMW := gridcore.Clamp(remaining*gridcore.Clamp01(in.PreferImports01), -in.ExportCapMW, in.ImportCapMW)
		plan.NetImportMW[h] = importMW
		remaining -= importMW

		peakersMW := gridcore.Clamp(remaining, 0, in.PeakersCapacityMW)
		plan.PeakersMW[h] = peakersMW

		load := in.ForecastDemandMW[h]
		plan.FCRUpMW[h] = gridcore.Clamp(0.015*load, 250, 900)
		plan.FCRDownMW[h] = plan.FCRUpMW[h]
		plan.AFRRUpMW[h] = gridcore.Clamp(0.020*load, 300, 1200)
		plan.AFRRDownMW[h] = plan.AFRRUpMW[h]
		plan.MFRRUpMW[h] = gridcore.Clamp(0.050*load, 600, 3000)
		plan.MFRRDownMW[h] = plan.MFRRUpMW[h]
	}

	return plan
}
