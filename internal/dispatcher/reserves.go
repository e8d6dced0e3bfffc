package dispatcher

import "math"

// Headroom is the dispatchable fleets' up/down margin available this
// tick to back reserve commitments, read from each fleet after its
// real-time setpoint has been applied.
type Headroom struct {
	HydroUpMW, HydroDownMW     float64
	ImportUpMW, ImportDownMW   float64
	PeakersUpMW                float64
	DRUpMW                     float64
}

// Availability is how much of the plan's hourly reserve targets can
// actually be backed this tick, split by product, per §4.6's hierarchy:
// FCR draws from hydro first, aFRR from the hydro left over plus
// imports, mFRR from peakers, imports, and demand response.
type Availability struct {
	FCRUpMW, FCRDownMW     float64
	AFRRUpMW, AFRRDownMW   float64
	MFRRUpMW, MFRRDownMW   float64
}

// ComputeAvailability allocates headroom to reserve products in the
// hierarchy order named above, each capped by the hour's plan target.
func ComputeAvailability(hourPlan Plan, hour int, h Headroom) Availability {
	var a Availability

	a.FCRUpMW = math.Min(hourPlan.FCRUpMW[hour], h.HydroUpMW)
	a.FCRDownMW = math.Min(hourPlan.FCRDownMW[hour], h.HydroDownMW)

	hydroUpLeft := h.HydroUpMW - a.FCRUpMW
	hydroDownLeft := h.HydroDownMW - a.FCRDownMW

	a.AFRRUpMW = math.Min(hourPlan.AFRRUpMW[hour], hydroUpLeft+h.ImportUpMW)
	a.AFRRDownMW = math.Min(hourPlan.AFRRDownMW[hour], hydroDownLeft+h.ImportDownMW)

	a.MFRRUpMW = math.Min(hourPlan.MFRRUpMW[hour], h.PeakersUpMW+h.ImportUpMW+h.DRUpMW)
	a.MFRRDownMW = math.Min(hourPlan.MFRRDownMW[hour], h.ImportDownMW)

	return a
}
