package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nordvolt/gridcore/internal/weather"
)

func evenSolarShares() [weather.NumSolarSites]float64 {
	var s [weather.NumSolarSites]float64
	for i := range s {
		s[i] = 1.0 / float64(len(s))
	}
	return s
}

func TestSolarZeroAtNight(t *testing.T) {
	f := NewSolarFleet(2000, evenSolarShares())
	var sites [weather.NumSolarSites]weather.SolarSite
	for i := range sites {
		sites[i] = weather.SolarSite{IrradianceWm2: 0, TemperatureC: 5}
	}
	report := f.Step(sites)
	assert.Zero(t, report.TotalMW, "zero irradiance should produce zero output")
}

func TestSolarOutputScalesWithIrradiance(t *testing.T) {
	f := NewSolarFleet(2000, evenSolarShares())
	var bright, dim [weather.NumSolarSites]weather.SolarSite
	for i := range bright {
		bright[i] = weather.SolarSite{IrradianceWm2: 900, TemperatureC: 20}
		dim[i] = weather.SolarSite{IrradianceWm2: 200, TemperatureC: 20}
	}
	brightReport := f.Step(bright)
	f2 := NewSolarFleet(2000, evenSolarShares())
	dimReport := f2.Step(dim)
	assert.Greater(t, brightReport.TotalMW, dimReport.TotalMW, "higher irradiance should yield higher output")
}

func TestSolarSnowCoverAccumulatesAndMelts(t *testing.T) {
	f := NewSolarFleet(2000, evenSolarShares())
	var snowy [weather.NumSolarSites]weather.SolarSite
	for i := range snowy {
		snowy[i] = weather.SolarSite{IrradianceWm2: 0, TemperatureC: -5, PrecipitationSnowMmph: 5}
	}
	for i := 0; i < 5000; i++ {
		f.Step(snowy)
	}
	assert.Greater(t, f.Sites[0].SnowCover01, 0.0, "sustained snowfall at sub-zero temperature should accumulate snow cover")

	var sunny [weather.NumSolarSites]weather.SolarSite
	for i := range sunny {
		sunny[i] = weather.SolarSite{IrradianceWm2: 900, TemperatureC: 15}
	}
	before := f.Sites[0].SnowCover01
	for i := 0; i < 5000; i++ {
		f.Step(sunny)
	}
	assert.Less(t, f.Sites[0].SnowCover01, before, "warm sunny conditions should melt accumulated snow cover")
}

func TestSolarOutputNeverExceedsCapacity(t *testing.T) {
	f := NewSolarFleet(2000, evenSolarShares())
	var extreme [weather.NumSolarSites]weather.SolarSite
	for i := range extreme {
		extreme[i] = weather.SolarSite{IrradianceWm2: 2000, TemperatureC: 40}
	}
	report := f.Step(extreme)
	assert.LessOrEqual(t, report.TotalMW, 2000+1e-6)
}
