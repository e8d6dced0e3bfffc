package supply

import "github.com/nordvolt/gridcore/internal/gridcore"

// HydroReservoirConfig is the single aggregated reservoir fleet's
// static envelope, per §4.5.
type HydroReservoirConfig struct {
	InstalledMW       float64 // 16.2 GW
	ReservoirFraction float64 // 0.90 of installed -> 14580 MW max
	StorageMWh        float64 // 34 TWh
	TurbineEfficiency float64 // 0.92
	MustRunMinMW      float64
	RampMWPerS        float64
}

// DefaultHydroReservoirConfig returns the values named in §4.5.
func DefaultHydroReservoirConfig() HydroReservoirConfig {
	return HydroReservoirConfig{
		InstalledMW:       16200,
		ReservoirFraction: 0.90,
		StorageMWh:        34_000_000,
		TurbineEfficiency: 0.92,
		MustRunMinMW:      0,
		RampMWPerS:        120,
	}
}

// MaxMW returns the reservoir fleet's dispatchable ceiling.
func (c HydroReservoirConfig) MaxMW() float64 { return c.InstalledMW * c.ReservoirFraction }

// HydroReservoir is the aggregated reservoir hydro fleet.
type HydroReservoir struct {
	Config HydroReservoirConfig

	StoredMWh float64
	OutputMW  float64
}

// NewHydroReservoir creates a reservoir fleet at the given initial
// fraction of total storage.
func NewHydroReservoir(cfg HydroReservoirConfig, initialStorageFraction float64) *HydroReservoir {
	return &HydroReservoir{
		Config:    cfg,
		StoredMWh: cfg.StorageMWh * gridcore.Clamp01(initialStorageFraction),
	}
}

// Step advances the reservoir by one second: refills from inflow,
// computes the energy-limited power ceiling given the remaining day,
// clamps the target between must-run minimum and the lesser of
// available capacity and energy-limited power, ramps toward it, then
// spends the corresponding energy from the reservoir.
func (h *HydroReservoir) Step(inflowMW, targetMW float64, remainingDaySeconds float64) float64 {
	h.StoredMWh += inflowMW * dt / 3600.0
	if h.StoredMWh > h.Config.StorageMWh {
		h.StoredMWh = h.Config.StorageMWh
	}

	energyLimitedMW := gridcore.SafeDiv(h.StoredMWh*3600.0, remainingDaySeconds, 1.0)
	availableMW := h.Config.MaxMW()
	ceiling := availableMW
	if energyLimitedMW < ceiling {
		ceiling = energyLimitedMW
	}
	if ceiling < h.Config.MustRunMinMW {
		ceiling = h.Config.MustRunMinMW
	}

	clampedTarget := gridcore.Clamp(targetMW, h.Config.MustRunMinMW, ceiling)
	h.OutputMW = rampToward(h.OutputMW, clampedTarget, h.Config.RampMWPerS)

	spentMWh := h.OutputMW * dt / (3600.0 * h.Config.TurbineEfficiency)
	h.StoredMWh -= spentMWh
	if h.StoredMWh < 0 {
		h.StoredMWh = 0
	}

	return h.OutputMW
}

// StorageFraction reports current storage as a fraction of capacity.
func (h *HydroReservoir) StorageFraction() float64 {
	return gridcore.SafeDiv(h.StoredMWh, h.Config.StorageMWh, 1e-6)
}
