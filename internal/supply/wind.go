package supply

import (
	"github.com/nordvolt/gridcore/internal/gridcore"
	"github.com/nordvolt/gridcore/internal/weather"
)

const (
	gustTripMps    = 50.0
	gustRestartMps = 45.0
	gustMinDownS   = 60.0
	windTauS       = 900.0
	windLowPass1TauS = 180.0
	windLowPass2TauS = 120.0
	windIcingMaxDerate = 0.35
)

// WindRegionState is one region's gust-hysteresis and smoothing state.
type WindRegionState struct {
	SmoothedWindMps float64
	Tripped         bool
	DownTimerS      float64

	lowPass1 float64
	lowPass2 float64

	CapacityShare float64
	CapacityMW    float64
	OutputMW      float64
}

// WindFleetReport is the aggregated per-tick wind output.
type WindFleetReport struct {
	Regions  [weather.NumWindRegions]WindRegionState
	TotalMW  float64
}

// WindFleet is the 8-region wind fleet of §4.5.
type WindFleet struct {
	InstalledMW float64
	Regions     [weather.NumWindRegions]WindRegionState
}

// NewWindFleet creates a wind fleet of the given total installed
// capacity, split across regions by the given capacity shares.
func NewWindFleet(installedMW float64, shares [weather.NumWindRegions]float64) *WindFleet {
	f := &WindFleet{InstalledMW: installedMW}
	for i, s := range shares {
		f.Regions[i].CapacityShare = s
		f.Regions[i].CapacityMW = installedMW * s
	}
	return f
}

// Step advances every region by one second from the weather model's
// regional wind state.
func (f *WindFleet) Step(regions [weather.NumWindRegions]weather.WindRegion) WindFleetReport {
	var report WindFleetReport
	var total float64

	for i := range f.Regions {
		r := &f.Regions[i]
		w := regions[i]

		r.SmoothedWindMps += (w.WindSpeed100mMps - r.SmoothedWindMps) * (dt / windTauS)

		f.stepGustHysteresis(r, w.WindGustMps)

		fraction := windPowerCurve(r.SmoothedWindMps)
		if r.Tripped {
			fraction = 0
		}

		derate := icingDerate(w.IcingRisk01)
		fraction *= 1 - derate

		r.lowPass1 += (fraction - r.lowPass1) * (dt / windLowPass1TauS)
		r.lowPass2 += (r.lowPass1 - r.lowPass2) * (dt / windLowPass2TauS)

		r.OutputMW = gridcore.Clamp01(r.lowPass2) * r.CapacityMW
		total += r.OutputMW

		report.Regions[i] = *r
	}

	report.TotalMW = total
	return report
}

func (f *WindFleet) stepGustHysteresis(r *WindRegionState, gustMps float64) {
	if r.Tripped {
		r.DownTimerS += dt
		if gustMps <= gustRestartMps && r.DownTimerS >= gustMinDownS {
			r.Tripped = false
			r.DownTimerS = 0
		}
		return
	}
	if gustMps >= gustTripMps {
		r.Tripped = true
		r.DownTimerS = 0
	}
}

// windPowerCurve implements the fleet power curve of §4.5: zero below
// 3 m/s, quadratic ramp to rated at 12 m/s, flat to 25 m/s, zero above.
func windPowerCurve(windMps float64) float64 {
	switch {
	case windMps < 3:
		return 0
	case windMps < 12:
		v := (windMps - 3) / 9
		return v * v
	case windMps <= 25:
		return 1
	default:
		return 0
	}
}

// icingDerate returns a fractional capacity derate up to
// windIcingMaxDerate, scaling with icing risk.
func icingDerate(icingRisk01 float64) float64 {
	return windIcingMaxDerate * gridcore.Clamp01(icingRisk01)
}
