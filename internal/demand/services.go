package demand

import "github.com/nordvolt/gridcore/internal/gridcore"

// ServicesConfig configures the commercial/public services demand model
// (offices, retail, schools, hospitals and other continuously-occupied
// buildings).
type ServicesConfig struct {
	BaseloadMW        float64
	OccupancyPeakMW   float64
	HeatingPeakMW     float64
	ServiceHeatTauS   float64 // 30 min smoothing
	MinCurtailmentFactor float64
}

// DefaultServicesConfig returns illustrative fleet-scale values.
func DefaultServicesConfig() ServicesConfig {
	return ServicesConfig{
		BaseloadMW:      2200,
		OccupancyPeakMW: 5200,
		HeatingPeakMW:   3600,
		ServiceHeatTauS: 30 * 60,
		MinCurtailmentFactor: 0.35,
	}
}

var weekdayOccupancyTable = [24]float64{
	0.1, 0.08, 0.08, 0.08, 0.08, 0.1, 0.2, 0.45,
	0.85, 1.0, 1.0, 0.95, 0.8, 0.9, 1.0, 1.0,
	0.9, 0.6, 0.3, 0.2, 0.15, 0.12, 0.1, 0.1,
}

var weekendOccupancyTable = [24]float64{
	0.08, 0.07, 0.07, 0.07, 0.07, 0.08, 0.1, 0.15,
	0.3, 0.5, 0.65, 0.7, 0.7, 0.68, 0.65, 0.6,
	0.5, 0.4, 0.3, 0.22, 0.18, 0.14, 0.1, 0.08,
}

// Services is the commercial/public services demand model.
type Services struct {
	cfg       ServicesConfig
	heatSmoother Smoother
}

// NewServices creates a services demand model.
func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		cfg:          cfg,
		heatSmoother: Smoother{Value: 0, Tau: cfg.ServiceHeatTauS},
	}
}

// ServicesBreakdown is the output of one Step.
type ServicesBreakdown struct {
	OccupancyMW float64
	HeatingMW   float64
	TotalMW     float64
}

// Step advances the model by one second. isHoliday reduces occupancy
// toward the weekend table even on a nominal weekday.
func (s *Services) Step(fracHour, outdoorTempC, curtailment01 float64, isWeekend, isHoliday bool) ServicesBreakdown {
	weekdayOcc := HourFraction(weekdayOccupancyTable, fracHour)
	weekendOcc := HourFraction(weekendOccupancyTable, fracHour)

	var occFactor float64
	switch {
	case isWeekend:
		occFactor = weekendOcc
	case isHoliday:
		occFactor = 0.6*weekendOcc + 0.4*weekdayOcc
	default:
		occFactor = weekdayOcc
	}
	occupancy := s.cfg.OccupancyPeakMW * occFactor

	hdFactor := gridcore.Clamp01((19 - outdoorTempC) / 30)
	heatRaw := s.cfg.HeatingPeakMW * hdFactor * (0.3 + 0.7*occFactor)
	heat := s.heatSmoother.Step(heatRaw)

	total := s.cfg.BaseloadMW + occupancy + heat
	total = ApplyCurtailment(total, curtailment01, s.cfg.MinCurtailmentFactor)

	return ServicesBreakdown{
		OccupancyMW: occupancy,
		HeatingMW:   heat,
		TotalMW:     total,
	}
}
