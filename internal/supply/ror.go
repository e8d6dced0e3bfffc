package supply

import "github.com/nordvolt/gridcore/internal/gridcore"

// RunOfRiverConfig is the run-of-river fleet's static envelope.
type RunOfRiverConfig struct {
	InstalledMW      float64 // 2500 MW
	PondageHours      float64 // 0.5 h of full-power bank
	EcologicalMinFrac float64 // minimum fraction of inflow that must pass through regardless of pondage
}

// DefaultRunOfRiverConfig returns the values named in §4.5.
func DefaultRunOfRiverConfig() RunOfRiverConfig {
	return RunOfRiverConfig{
		InstalledMW:       2500,
		PondageHours:      0.5,
		EcologicalMinFrac: 0.25,
	}
}

// RunOfRiver is the pondage-banked run-of-river fleet.
type RunOfRiver struct {
	Config RunOfRiverConfig

	PondageMWh float64
	OutputMW   float64
}

// NewRunOfRiver creates a run-of-river fleet with an empty pondage bank.
func NewRunOfRiver(cfg RunOfRiverConfig) *RunOfRiver {
	return &RunOfRiver{Config: cfg}
}

// Step advances the fleet by one second. inflowMW is the river's raw
// hydraulic potential before availability/loss derating; availability01
// and loss01 scale it down to the dispatchable ceiling for this tick.
// The ecological minimum fraction of inflow always passes straight
// through (it cannot be banked). targetMW lets the dispatcher ask for
// more than instantaneous inflow, drawn from the pondage bank, or less,
// in which case the surplus tops up the bank up to its capacity.
func (r *RunOfRiver) Step(inflowMW, targetMW, availability01, loss01 float64) float64 {
	dispatchableInflow := inflowMW * gridcore.Clamp01(availability01) * (1 - gridcore.Clamp01(loss01))

	ecoMW := dispatchableInflow * r.Config.EcologicalMinFrac
	freeInflow := dispatchableInflow - ecoMW

	maxPondageMWh := r.Config.InstalledMW * r.Config.PondageHours
	releaseCapMW := r.Config.InstalledMW - ecoMW
	if releaseCapMW < 0 {
		releaseCapMW = 0
	}

	desiredFromFree := gridcore.Clamp(targetMW-ecoMW, 0, releaseCapMW)

	var released float64
	if freeInflow >= desiredFromFree {
		surplus := freeInflow - desiredFromFree
		r.PondageMWh += surplus * dt / 3600.0
		if r.PondageMWh > maxPondageMWh {
			r.PondageMWh = maxPondageMWh
		}
		released = desiredFromFree
	} else {
		deficit := desiredFromFree - freeInflow
		fromBankMW := gridcore.SafeDiv(r.PondageMWh*3600.0, dt, 1.0)
		if fromBankMW > deficit {
			fromBankMW = deficit
		}
		r.PondageMWh -= fromBankMW * dt / 3600.0
		if r.PondageMWh < 0 {
			r.PondageMWh = 0
		}
		released = freeInflow + fromBankMW
	}

	r.OutputMW = ecoMW + released
	if r.OutputMW > r.Config.InstalledMW {
		r.OutputMW = r.Config.InstalledMW
	}
	return r.OutputMW
}
