// Package weather implements the stochastic synoptic and regional
// weather fields of spec §4.2: Ornstein-Uhlenbeck mean-reverting
// processes for temperature/wind/cloud, a two-state Markov snow
// process, and the eight wind regions / two solar sites derived from
// the synoptic state each tick.
//
// Every process takes an explicit rngstream.Stream (spec §9's
// determinism requirement) instead of reading a package-global source.
package weather

import (
	"math"

	"github.com/nordvolt/gridcore/internal/gridcore"
	"github.com/nordvolt/gridcore/internal/rngstream"
)

const (
	numWindRegions = 8
	numSolarSites  = 2
	dt             = 1.0 // seconds, one tick
)

// SynopticState is the nation-wide weather state (spec §3).
type SynopticState struct {
	TemperatureC       float64
	FrontOffsetC       float64
	WindMps            float64
	CloudCover01       float64
	IsSnowing          bool
	SnowIntensityMmph  float64
}

// WindRegion is a per-region derived state (spec §3).
type WindRegion struct {
	WindSpeed100mMps float64
	WindGustMps      float64
	TemperatureC     float64
	IcingRisk01      float64
}

// SolarSite is a per-site derived state (spec §3).
type SolarSite struct {
	IrradianceWm2        float64
	TemperatureC         float64
	CloudCover01         float64
	PrecipitationSnowMmph float64
}

// RegionConfig describes one wind region's share of synoptic deviation.
type RegionConfig struct {
	WindMultiplier float64
	CapacityShare  float64 // share of national wind capacity, sums to 1 across regions
}

// ouState is one Ornstein-Uhlenbeck variable's running value.
type ouState struct {
	value float64
}

// step applies one forward-Euler OU update: x += (target-x)*(dt/tau) + sigma*sqrt(dt)*N(0,1).
func (o *ouState) step(target, tau, sigma float64, rng rngstream.Stream) {
	o.value += (target - o.value) * (dt / tau)
	o.value += sigma * math.Sqrt(dt) * rng.Normal()
}

// Model owns all weather state for one simulated day and advances it
// one tick at a time.
type Model struct {
	rng       rngstream.Stream
	dayOfYear int

	temp  ouState
	front ouState
	wind  ouState
	cloud ouState

	snowing   bool
	snowInten ouState
	snowRNG   rngstream.Stream

	regionWindDev [numWindRegions]ouState
	regionTempDev [numWindRegions]ouState
	regionRNG     [numWindRegions]rngstream.Stream
	regions       [numWindRegions]RegionConfig

	siteCloudDev [numSolarSites]ouState
	siteSnowDev  [numSolarSites]ouState
	siteRNG      [numSolarSites]rngstream.Stream

	gustRNG rngstream.Stream
}

// DefaultRegions returns 8 regions whose capacity shares sum to 1, a
// reasonable default for a north-south, coastal-to-inland spread.
func DefaultRegions() [numWindRegions]RegionConfig {
	return [numWindRegions]RegionConfig{
		{WindMultiplier: 1.15, CapacityShare: 0.22}, // coastal north
		{WindMultiplier: 1.05, CapacityShare: 0.16},
		{WindMultiplier: 0.95, CapacityShare: 0.14},
		{WindMultiplier: 0.90, CapacityShare: 0.12},
		{WindMultiplier: 1.10, CapacityShare: 0.14}, // coastal south
		{WindMultiplier: 0.85, CapacityShare: 0.08},
		{WindMultiplier: 0.80, CapacityShare: 0.08},
		{WindMultiplier: 0.75, CapacityShare: 0.06}, // inland
	}
}

// New creates a weather model seeded from root for the given day of
// year, with synoptic state initialised at the seasonal targets (the
// temperature target taken at hour 5) so the model doesn't need a warm-up transient to look
// reasonable (the orchestrator's 12h warm-up, spec §4.1, still runs
// to let OU variance settle).
func New(root rngstream.Stream, dayOfYear int) *Model {
	m := &Model{
		rng:       root.Split("weather.synoptic"),
		snowRNG:   root.Split("weather.snow"),
		gustRNG:   root.Split("weather.gust"),
		dayOfYear: dayOfYear,
		regions:   DefaultRegions(),
	}
	for i := range m.regionRNG {
		m.regionRNG[i] = root.Split("weather.region")
	}
	for i := range m.siteRNG {
		m.siteRNG[i] = root.Split("weather.site")
	}
	m.temp.value = seasonalTemperatureTarget(dayOfYear, 5)
	m.wind.value = seasonalWindTarget(dayOfYear)
	m.cloud.value = seasonalCloudTarget(dayOfYear)
	m.snowInten.value = 0
	return m
}

// seasonalTemperatureTarget follows a cosine-of-day-of-year curve for
// the seasonal component plus a diurnal sine centred on hour, per §4.2.
func seasonalTemperatureTarget(dayOfYear int, hour float64) float64 {
	seasonal := 7.0 - 15.0*math.Cos(2*math.Pi*float64(dayOfYear-20)/365.0)
	diurnal := 4.0 * math.Sin(2*math.Pi*(hour-5)/24.0)
	return seasonal + diurnal
}

func seasonalWindTarget(dayOfYear int) float64 {
	return 6.5 + 2.0*math.Cos(2*math.Pi*float64(dayOfYear-15)/365.0)
}

func seasonalCloudTarget(dayOfYear int) float64 {
	return 0.55 + 0.15*math.Cos(2*math.Pi*float64(dayOfYear-1)/365.0)
}

const (
	snowStartProb = 2e-5 // per second probability of starting
	snowStopProb  = 2e-4 // per second probability of stopping
)

// Step advances the weather by one second, given the current hour of
// day (for the diurnal temperature target).
func (m *Model) Step(fractionalHour float64) {
	tempTarget := seasonalTemperatureTarget(m.dayOfYear, fractionalHour)
	m.temp.step(tempTarget, 3*3600, 0.08, m.rng)
	m.front.step(0, 6*3600, 0.05, m.rng)

	windTarget := seasonalWindTarget(m.dayOfYear)
	m.wind.step(windTarget, 2*3600, 0.15, m.rng)
	m.wind.value = gridcore.Clamp(m.wind.value, 0, 35)

	cloudTarget := seasonalCloudTarget(m.dayOfYear)
	m.cloud.step(cloudTarget, 4*3600, 0.05, m.rng)
	m.cloud.value = gridcore.Clamp01(m.cloud.value)

	m.stepSnow()

	for i := range m.regionWindDev {
		m.regionWindDev[i].step(0, 900, 0.4, m.regionRNG[i])
		m.regionTempDev[i].step(0, 3600, 0.3, m.regionRNG[i])
	}
	for i := range m.siteCloudDev {
		m.siteCloudDev[i].step(0, 1800, 0.03, m.siteRNG[i])
		if m.snowing {
			m.siteSnowDev[i].step(m.snowInten.value, 600, 0.05, m.siteRNG[i])
		} else {
			m.siteSnowDev[i].step(0, 600, 0.01, m.siteRNG[i])
		}
		if m.siteSnowDev[i].value < 0 {
			m.siteSnowDev[i].value = 0
		}
	}
}

func (m *Model) stepSnow() {
	if m.snowing {
		if m.snowRNG.Float64() < snowStopProb {
			m.snowing = false
			m.snowInten.value = 0
			return
		}
		m.snowInten.step(0.7, 1800, 0.05, m.snowRNG)
		m.snowInten.value = gridcore.Clamp(m.snowInten.value, 0.1, 2.0)
	} else {
		// Snow can only start when it's plausibly cold.
		if m.temp.value < 2.0 && m.snowRNG.Float64() < snowStartProb {
			m.snowing = true
			m.snowInten.value = 0.1
		}
	}
}

// Synoptic returns the current national weather state.
func (m *Model) Synoptic() SynopticState {
	return SynopticState{
		TemperatureC:      m.temp.value + m.front.value,
		FrontOffsetC:      m.front.value,
		WindMps:           m.wind.value,
		CloudCover01:      m.cloud.value,
		IsSnowing:         m.snowing,
		SnowIntensityMmph: m.snowInten.value,
	}
}

// WindRegions returns the 8 derived regional wind states for this tick.
func (m *Model) WindRegions() [numWindRegions]WindRegion {
	syn := m.Synoptic()
	var out [numWindRegions]WindRegion
	for i := range out {
		speed := syn.WindMps*m.regions[i].WindMultiplier + m.regionWindDev[i].value
		speed = gridcore.Clamp(speed, 0, 35)

		gustBase := speed + 1 + 0.35*speed
		gust := gustBase + m.gustRNG.NormalF(0, 0.7)
		gust = gridcore.Clamp(gust, speed, 45)

		temp := syn.TemperatureC + m.regionTempDev[i].value

		icing := 0.0
		if syn.IsSnowing || temp <= 1.0 {
			// Gaussian-in-temperature risk centred at -2C, widest near freezing.
			d := temp + 2.0
			icing = math.Exp(-d * d / 18.0)
			icing = gridcore.Clamp01(icing)
		}

		out[i] = WindRegion{
			WindSpeed100mMps: speed,
			WindGustMps:      gust,
			TemperatureC:     temp,
			IcingRisk01:      icing,
		}
	}
	return out
}

// SolarSites returns the 2 derived solar-site states for this tick.
// elevationRad is the sun's elevation angle (radians) at each site,
// supplied by the caller (internal/world derives it via
// suncalc so this package stays free of a location/time dependency).
func (m *Model) SolarSites(elevationRad [numSolarSites]float64) [numSolarSites]SolarSite {
	syn := m.Synoptic()
	var out [numSolarSites]SolarSite
	for i := range out {
		cloud := gridcore.Clamp01(syn.CloudCover01 + m.siteCloudDev[i].value)
		temp := syn.TemperatureC + m.regionTempDev[i%numWindRegions].value*0.5

		attenuation := 1 - 0.75*math.Pow(cloud, 1.3)
		const i0 = 1000.0 // W/m^2 extraterrestrial-ish reference
		const tau = 0.75  // atmospheric transmittance
		elevFactor := math.Max(0, math.Sin(elevationRad[i]))
		irr := i0 * tau * elevFactor * attenuation
		if irr < 0 {
			irr = 0
		}

		precip := 0.0
		if syn.IsSnowing {
			precip = syn.SnowIntensityMmph
			if temp <= 1.0 {
				precip *= 1.5
			}
		}

		out[i] = SolarSite{
			IrradianceWm2:         irr,
			TemperatureC:          temp,
			CloudCover01:          cloud,
			PrecipitationSnowMmph: precip,
		}
	}
	return out
}

// NumWindRegions and NumSolarSites expose the fixed fleet sizes.
const (
	NumWindRegions = numWindRegions
	NumSolarSites  = numSolarSites
)
