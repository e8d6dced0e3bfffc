package dispatcher

import "github.com/nordvolt/gridcore/internal/gridcore"

// Capability bounds the real-time corrections and ramps of §4.6.
type Capability struct {
	HydroMaxMW    float64
	ImportCapMW   float64
	ExportCapMW   float64
	PeakersMaxMW  float64
	DRShedMaxMW   float64

	HydroRampMWPerS   float64
	ImportRampMWPerS  float64
	PeakersRampMWPerS float64
	NuclearRampMWPerS float64
	DRRampMWPerS      float64
}

// Setpoints are the real-time, ramp-limited dispatch targets actually
// handed to the fleets each tick.
type Setpoints struct {
	NuclearMW        float64
	HydroReservoirMW float64
	NetImportMW      float64
	PeakersMW        float64
	DRShedMW         float64
	Escalated        bool
}

// RealTime tracks the ramp-limited setpoints between ticks so each call
// to Step only moves them by at most the capability's ramp rate.
type RealTime struct {
	Setpoints Setpoints
}

// NewRealTime returns a real-time corrector starting from zero output.
func NewRealTime() *RealTime { return &RealTime{} }

// Step applies the hour's plan, the proportional frequency corrections,
// and escalation triggers of §4.6's real-time pass, then ramps the
// tracked setpoints toward the new targets.
func (r *RealTime) Step(hourPlan Plan, hour int, frequencyHz, fcrUpSaturation01, afrrUpSaturation01 float64, cap Capability) Setpoints {
	df := 50.0 - frequencyHz

	hydroTarget := gridcore.Clamp(hourPlan.HydroReservoirMW[hour]+3500*df, 0, cap.HydroMaxMW)
	importTarget := gridcore.Clamp(hourPlan.NetImportMW[hour]+1500*df, -cap.ExportCapMW, cap.ImportCapMW)

	escalate := frequencyHz <= 49.70 || fcrUpSaturation01 >= 0.85 || afrrUpSaturation01 >= 0.85

	peakersTarget := hourPlan.PeakersMW[hour]
	drTarget := 0.0
	if escalate {
		if frequencyHz <= 49.70 {
			peakersTarget = cap.PeakersMaxMW
		}
		if frequencyHz <= 49.75 {
			drTarget = cap.DRShedMaxMW
		}
	}

	r.Setpoints.NuclearMW = gridcore.RampToward(r.Setpoints.NuclearMW, hourPlan.NuclearMW[hour], cap.NuclearRampMWPerS)
	r.Setpoints.HydroReservoirMW = gridcore.RampToward(r.Setpoints.HydroReservoirMW, hydroTarget, cap.HydroRampMWPerS)
	r.Setpoints.NetImportMW = gridcore.RampToward(r.Setpoints.NetImportMW, importTarget, cap.ImportRampMWPerS)
	r.Setpoints.PeakersMW = gridcore.RampToward(r.Setpoints.PeakersMW, peakersTarget, cap.PeakersRampMWPerS)
	r.Setpoints.DRShedMW = gridcore.RampToward(r.Setpoints.DRShedMW, drTarget, cap.DRRampMWPerS)
	r.Setpoints.Escalated = escalate

	return r.Setpoints
}
