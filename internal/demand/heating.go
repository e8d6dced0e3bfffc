package demand

import "github.com/nordvolt/gridcore/internal/gridcore"

// HeatPumpShares weights the COP model across heat source types.
type HeatPumpShares struct {
	AirShare     float64
	ExhaustShare float64
	GroundShare  float64
}

// HeatingConfig configures the residential heating model.
type HeatingConfig struct {
	DesignThermalMW float64 // 25 GW thermal design capacity
	BuildingTauS    float64 // outdoor temperature smoothing, 2h
	ScheduleTauS    float64 // schedule factor smoothing, 30min
	Shares          HeatPumpShares
	AuxResistiveCapMW float64
	DirectElectricCapMW float64
	MinCurtailmentFactor float64
}

// DefaultHeatingConfig matches the values named in spec §4.4.
func DefaultHeatingConfig() HeatingConfig {
	return HeatingConfig{
		DesignThermalMW: 25000,
		BuildingTauS:    2 * 3600,
		ScheduleTauS:    30 * 60,
		Shares:          HeatPumpShares{AirShare: 0.55, ExhaustShare: 0.30, GroundShare: 0.15},
		AuxResistiveCapMW:   1500,
		DirectElectricCapMW: 800,
		MinCurtailmentFactor: 0.25,
	}
}

// heatingScheduleTable is an illustrative weekday heating-need shape: higher
// overnight and morning, lower mid-afternoon.
var heatingScheduleTable = [24]float64{
	0.95, 0.95, 0.92, 0.90, 0.90, 0.95, 1.0, 1.0,
	0.9, 0.8, 0.75, 0.72, 0.70, 0.70, 0.72, 0.78,
	0.85, 0.92, 0.97, 1.0, 1.0, 0.98, 0.97, 0.96,
}

// Heating is the residential heating demand model (spec §4.4).
type Heating struct {
	cfg HeatingConfig

	outdoorTemp Smoother
	scheduleF   Smoother
}

// NewHeating creates a residential heating model initialised at the
// given outdoor temperature.
func NewHeating(cfg HeatingConfig, initialOutdoorTempC float64) *Heating {
	return &Heating{
		cfg:         cfg,
		outdoorTemp: Smoother{Value: initialOutdoorTempC, Tau: cfg.BuildingTauS},
		scheduleF:   Smoother{Value: 1, Tau: cfg.ScheduleTauS},
	}
}

// HeatingBreakdown is the output of one Step.
type HeatingBreakdown struct {
	ThermalDemandMW float64
	COP             float64
	ConsumptionMW   float64
}

// Step advances the model by one second.
func (h *Heating) Step(outdoorTempC, windMps, fracHour, curtailment01 float64) HeatingBreakdown {
	smoothedTemp := h.outdoorTemp.Step(outdoorTempC)

	scheduleRaw := HourFraction(heatingScheduleTable, fracHour)
	scheduleSmoothed := h.scheduleF.Step(scheduleRaw)

	// Heating-degree factor: 0 at 18C, scaling to 1 around -15C.
	hdFactor := gridcore.Clamp01((18 - smoothedTemp) / 33)
	windFactor := 1 + gridcore.Clamp(windMps, 0, 25)*0.01

	thermalMW := h.cfg.DesignThermalMW * hdFactor * windFactor * scheduleSmoothed
	thermalMW = ApplyCurtailment(thermalMW, curtailment01, h.cfg.MinCurtailmentFactor)
	if thermalMW < 0 {
		thermalMW = 0
	}

	cop := h.weightedCOP(smoothedTemp)

	electricFromHP := thermalMW / cop
	auxMW := 0.0
	if hdFactor > 0.85 {
		// Deep cold snaps lean on resistive backup beyond the heat pump's envelope.
		auxMW = gridcore.Clamp((hdFactor-0.85)/0.15*h.cfg.AuxResistiveCapMW, 0, h.cfg.AuxResistiveCapMW)
	}

	consumption := electricFromHP + auxMW
	if cap := h.cfg.DirectElectricCapMW; cap > 0 {
		consumption = gridcore.Clamp(consumption, 0, electricFromHP+auxMW+cap)
	}

	return HeatingBreakdown{
		ThermalDemandMW: thermalMW,
		COP:             cop,
		ConsumptionMW:   consumption,
	}
}

// weightedCOP blends air/exhaust/ground source heat pump efficiency
// curves by their fleet share, each degrading roughly linearly as the
// outdoor temperature drops, with ground-source staying flattest.
func (h *Heating) weightedCOP(outdoorTempC float64) float64 {
	airCOP := 3.8 + 0.05*outdoorTempC
	exhaustCOP := 3.3 + 0.02*outdoorTempC
	groundCOP := 4.2 + 0.01*outdoorTempC

	airCOP = gridcore.Clamp(airCOP, 1.2, 5.5)
	exhaustCOP = gridcore.Clamp(exhaustCOP, 1.5, 4.5)
	groundCOP = gridcore.Clamp(groundCOP, 2.5, 5.5)

	s := h.cfg.Shares
	total := s.AirShare + s.ExhaustShare + s.GroundShare
	if total <= 0 {
		return 3.0
	}
	return (airCOP*s.AirShare + exhaustCOP*s.ExhaustShare + groundCOP*s.GroundShare) / total
}
