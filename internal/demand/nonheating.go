package demand

import "github.com/nordvolt/gridcore/internal/gridcore"

// NonHeatingConfig configures the residential non-heating demand model
// (appliances, lighting, cooking, laundry, domestic hot water, EV
// charging at home).
type NonHeatingConfig struct {
	BaseloadMW     float64
	LightingPeakMW float64
	CookingPeakMW  float64
	LaundryPeakMW  float64
	DHWPeakMW      float64
	HomeEVPeakMW   float64
	MinCurtailmentFactor float64
}

// DefaultNonHeatingConfig returns the illustrative fleet-scale values.
func DefaultNonHeatingConfig() NonHeatingConfig {
	return NonHeatingConfig{
		BaseloadMW:     4200,
		LightingPeakMW: 2600,
		CookingPeakMW:  1400,
		LaundryPeakMW:  900,
		DHWPeakMW:      1300,
		HomeEVPeakMW:   1800,
		MinCurtailmentFactor: 0.4,
	}
}

// lightingDarknessTable approximates winter-darkness-by-hour as a
// fraction of residents awake in the dark; peaks before dawn/after dusk
// in winter, near zero at midday.
var lightingDarknessTable = [24]float64{
	0.9, 0.85, 0.8, 0.75, 0.7, 0.8, 0.95, 0.9,
	0.5, 0.2, 0.1, 0.05, 0.05, 0.05, 0.1, 0.25,
	0.55, 0.8, 0.95, 1.0, 1.0, 1.0, 0.98, 0.95,
}

var laundryScheduleTable = [24]float64{
	0.1, 0.05, 0.05, 0.05, 0.05, 0.1, 0.3, 0.6,
	0.7, 0.65, 0.55, 0.5, 0.45, 0.45, 0.5, 0.55,
	0.65, 0.8, 1.0, 0.9, 0.7, 0.5, 0.3, 0.15,
}

// NonHeating is the residential non-heating demand model.
type NonHeating struct {
	cfg NonHeatingConfig
}

// NewNonHeating creates a non-heating demand model.
func NewNonHeating(cfg NonHeatingConfig) *NonHeating {
	return &NonHeating{cfg: cfg}
}

// NonHeatingBreakdown is the output of one Step.
type NonHeatingBreakdown struct {
	LightingMW float64
	CookingMW  float64
	LaundryMW  float64
	DHWMW      float64
	HomeEVMW   float64
	TotalMW    float64
}

// Step advances the model by one second.
func (n *NonHeating) Step(fracHour, cloud01, curtailment01 float64, isWeekend bool) NonHeatingBreakdown {
	darkness := HourFraction(lightingDarknessTable, fracHour)
	// overcast days pull lighting demand forward even near midday
	darkness = gridcore.Clamp01(darkness + 0.15*cloud01)
	lighting := n.cfg.LightingPeakMW * darkness

	breakfast := Gaussian(fracHour, 7.5, 1.0, n.cfg.CookingPeakMW*0.6)
	dinner := Gaussian(fracHour, 18.5, 1.3, n.cfg.CookingPeakMW)
	cooking := breakfast + dinner

	laundryFactor := HourFraction(laundryScheduleTable, fracHour)
	if isWeekend {
		laundryFactor *= 1.35
	}
	laundry := n.cfg.LaundryPeakMW * gridcore.Clamp01(laundryFactor)

	dhwMorning := Gaussian(fracHour, 7, 1.5, n.cfg.DHWPeakMW*0.8)
	dhwEvening := Gaussian(fracHour, 21, 1.8, n.cfg.DHWPeakMW)
	dhw := dhwMorning + dhwEvening

	evFactor := HourFraction([24]float64{
		0.9, 0.95, 1.0, 1.0, 0.95, 0.8, 0.5, 0.3,
		0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.25, 0.3,
		0.4, 0.5, 0.65, 0.8, 0.85, 0.9, 0.9, 0.9,
	}, fracHour)
	homeEV := n.cfg.HomeEVPeakMW * evFactor

	total := n.cfg.BaseloadMW + lighting + cooking + laundry + dhw + homeEV
	total = ApplyCurtailment(total, curtailment01, n.cfg.MinCurtailmentFactor)

	return NonHeatingBreakdown{
		LightingMW: lighting,
		CookingMW:  cooking,
		LaundryMW:  laundry,
		DHWMW:      dhw,
		HomeEVMW:   homeEV,
		TotalMW:    total,
	}
}
