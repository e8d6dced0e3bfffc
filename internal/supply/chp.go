package supply

import "github.com/nordvolt/gridcore/internal/gridcore"

// BiofuelWasteCHPConfig configures the heat-led biofuel/waste CHP
// subsystem of §4.5. Waste is the larger, must-run component; biofuel
// is smaller, has a minimum load, and can add condensing generation
// when the heat-load fraction is low.
type BiofuelWasteCHPConfig struct {
	WasteHeatCapMW     float64
	WasteMustRunFrac   float64 // 0.55
	BiofuelHeatCapMW   float64
	BiofuelMinLoadFrac float64 // 0.20
	BiofuelCondensingMaxMW float64
	CondensingHeatFracThreshold float64 // 0.35

	PowerToHeatRatio float64 // electric = heat * P/H
	ElectricCapMW    float64
	RampMWPerS       float64
}

// DefaultBiofuelWasteCHPConfig returns the values named in §4.5.
func DefaultBiofuelWasteCHPConfig() BiofuelWasteCHPConfig {
	return BiofuelWasteCHPConfig{
		WasteHeatCapMW:     1800,
		WasteMustRunFrac:   0.55,
		BiofuelHeatCapMW:   900,
		BiofuelMinLoadFrac: 0.20,
		BiofuelCondensingMaxMW: 250,
		CondensingHeatFracThreshold: 0.35,
		PowerToHeatRatio:   0.55,
		ElectricCapMW:      1500,
		RampMWPerS:         15,
	}
}

// BiofuelWasteCHP is the heat-led biofuel/waste CHP fleet.
type BiofuelWasteCHP struct {
	Config BiofuelWasteCHPConfig

	OutputMW float64
}

// NewBiofuelWasteCHP creates a biofuel/waste CHP fleet.
func NewBiofuelWasteCHP(cfg BiofuelWasteCHPConfig) *BiofuelWasteCHP {
	return &BiofuelWasteCHP{Config: cfg}
}

// Step advances the fleet by one second. heatLoadFraction01 is the
// district-heat demand as a fraction of the combined heat capacity.
func (c *BiofuelWasteCHP) Step(heatLoadFraction01 float64) float64 {
	frac := gridcore.Clamp01(heatLoadFraction01)

	wasteHeat := gridcore.Clamp(frac*c.Config.WasteHeatCapMW, c.Config.WasteMustRunFrac*c.Config.WasteHeatCapMW, c.Config.WasteHeatCapMW)
	biofuelHeat := gridcore.Clamp(frac*c.Config.BiofuelHeatCapMW, c.Config.BiofuelMinLoadFrac*c.Config.BiofuelHeatCapMW, c.Config.BiofuelHeatCapMW)

	totalHeat := wasteHeat + biofuelHeat
	electric := totalHeat * c.Config.PowerToHeatRatio

	if frac <= c.Config.CondensingHeatFracThreshold {
		// Low heat demand frees biofuel capacity for pure condensing power.
		headroomFrac := (c.Config.CondensingHeatFracThreshold - frac) / c.Config.CondensingHeatFracThreshold
		electric += c.Config.BiofuelCondensingMaxMW * gridcore.Clamp01(headroomFrac)
	}

	electric = gridcore.Clamp(electric, 0, c.Config.ElectricCapMW)
	c.OutputMW = rampToward(c.OutputMW, electric, c.Config.RampMWPerS)
	return c.OutputMW
}

// IndustrialCHPConfig configures industrial combined heat and power,
// treated as must-take alongside wind/solar/RoR/nuclear per §4.6.
type IndustrialCHPConfig struct {
	CapacityMW    float64
	BaseLoadFrac  float64
	RampMWPerS    float64
}

// DefaultIndustrialCHPConfig returns illustrative fleet-scale values.
func DefaultIndustrialCHPConfig() IndustrialCHPConfig {
	return IndustrialCHPConfig{CapacityMW: 1200, BaseLoadFrac: 0.70, RampMWPerS: 10}
}

// IndustrialCHP is a simpler must-take fleet driven by industrial
// process heat demand rather than district heating.
type IndustrialCHP struct {
	Config   IndustrialCHPConfig
	OutputMW float64
}

// NewIndustrialCHP creates an industrial CHP fleet at its base load.
func NewIndustrialCHP(cfg IndustrialCHPConfig) *IndustrialCHP {
	return &IndustrialCHP{Config: cfg, OutputMW: cfg.BaseLoadFrac * cfg.CapacityMW}
}

// Step advances the fleet by one second toward a process-heat-driven
// target fraction of capacity.
func (c *IndustrialCHP) Step(processLoadFraction01 float64) float64 {
	target := gridcore.Clamp(processLoadFraction01, c.Config.BaseLoadFrac, 1.0) * c.Config.CapacityMW
	c.OutputMW = rampToward(c.OutputMW, target, c.Config.RampMWPerS)
	return c.OutputMW
}
