package supply

import (
	"github.com/nordvolt/gridcore/internal/gridcore"
	"github.com/nordvolt/gridcore/internal/weather"
)

const (
	solarTempCoeffPerC = -0.004
	solarNOCT          = 45.0 // deg C, nominal operating cell temperature at 800 W/m2, 20C ambient, 1 m/s
	solarSnowMeltCoeffPerWm2 = 0.0006
	solarSnowMeltCoeffPerC   = 0.02
	solarSnowColdBoost       = 1.5 // below 1C, precipitation accumulates snow faster
)

// SolarSiteState is one site's panel and snow-cover state.
type SolarSiteState struct {
	SnowCover01 float64
	DCOutputMW  float64
	ACOutputMW  float64

	CapacityShare float64
	CapacityMW    float64
}

// SolarFleetReport is the aggregated per-tick solar output.
type SolarFleetReport struct {
	Sites   [weather.NumSolarSites]SolarSiteState
	TotalMW float64
}

// SolarFleet is the 2-site solar fleet of §4.5.
type SolarFleet struct {
	InstalledMW float64
	Sites       [weather.NumSolarSites]SolarSiteState
}

// NewSolarFleet creates a solar fleet split across sites by the given
// capacity shares.
func NewSolarFleet(installedMW float64, shares [weather.NumSolarSites]float64) *SolarFleet {
	f := &SolarFleet{InstalledMW: installedMW}
	for i, s := range shares {
		f.Sites[i].CapacityShare = s
		f.Sites[i].CapacityMW = installedMW * s
	}
	return f
}

// Step advances every site by one second from the weather model's
// per-site solar state.
func (f *SolarFleet) Step(sites [weather.NumSolarSites]weather.SolarSite) SolarFleetReport {
	var report SolarFleetReport
	var total float64

	for i := range f.Sites {
		s := &f.Sites[i]
		site := sites[i]

		f.stepSnowCover(s, site)

		snowDerate := 1 - s.SnowCover01
		cellTemp := site.TemperatureC + (solarNOCT-20)*(site.IrradianceWm2/800.0)
		tempDerate := 1 + solarTempCoeffPerC*(cellTemp-25)
		if tempDerate < 0 {
			tempDerate = 0
		}

		dcFraction := gridcore.Clamp01((site.IrradianceWm2 / 1000.0) * tempDerate * snowDerate)
		s.DCOutputMW = dcFraction * s.CapacityMW
		s.ACOutputMW = s.DCOutputMW // clipping at 1 means DC already capped at rated
		if s.ACOutputMW > s.CapacityMW {
			s.ACOutputMW = s.CapacityMW
		}

		total += s.ACOutputMW
		report.Sites[i] = *s
	}

	report.TotalMW = total
	return report
}

func (f *SolarFleet) stepSnowCover(s *SolarSiteState, site weather.SolarSite) {
	accumRate := site.PrecipitationSnowMmph * 0.01
	if site.TemperatureC <= 1 {
		accumRate *= solarSnowColdBoost
	}
	meltRate := 0.0
	if site.TemperatureC > 0 {
		meltRate += site.TemperatureC * solarSnowMeltCoeffPerC
	}
	meltRate += site.IrradianceWm2 * solarSnowMeltCoeffPerWm2

	s.SnowCover01 = gridcore.Clamp01(s.SnowCover01 + (accumRate-meltRate)*dt)
}
