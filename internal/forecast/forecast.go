// Package forecast implements the 24h mean-reverting forecast arrays
// of spec §4.3: recomputed every 60s, with √h-growing uncertainty.
// Between recomputes, callers read by linear interpolation.
package forecast

import (
	"math"

	"github.com/nordvolt/gridcore/internal/weather"
)

const (
	horizonPoints = 1441 // 24h at 60s resolution, inclusive of both ends
	resolutionS   = 60
)

// Arrays holds the recomputed forecast sequences, spec §3.
type Arrays struct {
	TemperatureC []float64
	WindMps      []float64
	CloudCover01 []float64
	SnowMmph     []float64
	SolarWm2     []float64
	Icing01      []float64

	TemperatureSigma []float64
	WindSigma        []float64
	CloudSigma       []float64
}

// Len returns the number of points in every sequence (always horizonPoints).
func (a *Arrays) Len() int { return horizonPoints }

// Forecaster owns the current forecast and recomputes it on a 60s cadence.
type Forecaster struct {
	dayOfYear      int
	lastRecomputeS int
	hasRecomputed  bool
	current        Arrays

	// Forecast time constant for reversion toward the seasonal target
	// (4h, against the weather model's own 2-4h time constants).
	tau float64

	sigma0Temp, kTemp   float64
	sigma0Wind, kWind   float64
	sigma0Cloud, kCloud float64
}

// New creates a forecaster for the given day of year with default
// uncertainty-growth coefficients.
func New(dayOfYear int) *Forecaster {
	return &Forecaster{
		dayOfYear:  dayOfYear,
		tau:        4 * 3600,
		sigma0Temp: 0.3, kTemp: 0.35,
		sigma0Wind: 0.2, kWind: 0.5,
		sigma0Cloud: 0.03, kCloud: 0.04,
	}
}

// MaybeRecompute recomputes the forecast if 60s have elapsed since the
// last recompute, or unconditionally on a day change (dayOfYear differs
// from the forecaster's stored day), per §4.3.
func (f *Forecaster) MaybeRecompute(timeS, dayOfYear int, current weather.SynopticState) {
	dayChanged := dayOfYear != f.dayOfYear
	due := !f.hasRecomputed || timeS-f.lastRecomputeS >= resolutionS
	if !due && !dayChanged {
		return
	}
	f.dayOfYear = dayOfYear
	f.lastRecomputeS = timeS
	f.hasRecomputed = true
	f.recompute(current)
}

func (f *Forecaster) recompute(current weather.SynopticState) {
	a := Arrays{
		TemperatureC:     make([]float64, horizonPoints),
		WindMps:          make([]float64, horizonPoints),
		CloudCover01:     make([]float64, horizonPoints),
		SnowMmph:         make([]float64, horizonPoints),
		SolarWm2:         make([]float64, horizonPoints),
		Icing01:          make([]float64, horizonPoints),
		TemperatureSigma: make([]float64, horizonPoints),
		WindSigma:        make([]float64, horizonPoints),
		CloudSigma:       make([]float64, horizonPoints),
	}

	temp, wind, cloud := current.TemperatureC, current.WindMps, current.CloudCover01
	snow := current.SnowIntensityMmph
	if !current.IsSnowing {
		snow = 0
	}

	for i := 0; i < horizonPoints; i++ {
		hSec := float64(i * resolutionS)
		hours := hSec / 3600

		dayOffset := f.dayOfYear + int(hours)/24
		fracHour := math.Mod(hours, 24)

		tempTarget := seasonalTemperatureTarget(dayOffset, fracHour)
		windTarget := seasonalWindTarget(dayOffset)
		cloudTarget := seasonalCloudTarget(dayOffset)

		decay := math.Exp(-hSec / f.tau)
		a.TemperatureC[i] = tempTarget + (temp-tempTarget)*decay
		a.WindMps[i] = windTarget + (wind-windTarget)*decay
		a.CloudCover01[i] = cloudTarget + (cloud-cloudTarget)*decay
		a.SnowMmph[i] = snow * decay

		sqrtH := math.Sqrt(hours + 1e-9)
		a.TemperatureSigma[i] = f.sigma0Temp + f.kTemp*sqrtH
		a.WindSigma[i] = f.sigma0Wind + f.kWind*sqrtH
		a.CloudSigma[i] = f.sigma0Cloud + f.kCloud*sqrtH

		a.Icing01[i] = icingFromTemp(a.TemperatureC[i])
		a.SolarWm2[i] = clearSkyApprox(fracHour, a.CloudCover01[i])
	}

	f.current = a
}

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

func icingFromTemp(tempC float64) float64 {
	if tempC > 1 {
		return 0
	}
	d := tempC + 2
	v := math.Exp(-d * d / 18.0)
	if v < 0 {
		v = 0
	}
	return v
}

// clearSkyApprox is a coarse sun-elevation-free daylight bell used only
// for the forecast horizon (the live supply model uses the precise
// suncalc-derived elevation; the forecast is explicitly approximate).
func clearSkyApprox(hour float64, cloud float64) float64 {
	if hour < 5 || hour > 21 {
		return 0
	}
	bell := math.Sin(math.Pi * (hour - 5) / 16)
	if bell < 0 {
		bell = 0
	}
	return 900 * bell * (1 - 0.75*math.Pow(cloud, 1.3))
}

// Current returns the most recently computed arrays.
func (f *Forecaster) Current() Arrays { return f.current }

// interpolate does linear interpolation between array points at a
// fractional horizon position measured in 60s steps.
func interpolate(arr []float64, posSeconds float64) float64 {
	if len(arr) == 0 {
		return 0
	}
	idx := posSeconds / resolutionS
	if idx < 0 {
		idx = 0
	}
	maxIdx := float64(len(arr) - 1)
	if idx > maxIdx {
		idx = maxIdx
	}
	lo := int(math.Floor(idx))
	hi := lo + 1
	if hi > len(arr)-1 {
		hi = len(arr) - 1
	}
	frac := idx - float64(lo)
	return arr[lo]*(1-frac) + arr[hi]*frac
}

// TemperatureAt returns the forecast temperature at a horizon offset in seconds.
func (f *Forecaster) TemperatureAt(horizonS float64) float64 {
	return interpolate(f.current.TemperatureC, horizonS)
}

// WindAt returns the forecast wind speed at a horizon offset in seconds.
func (f *Forecaster) WindAt(horizonS float64) float64 {
	return interpolate(f.current.WindMps, horizonS)
}

// CloudAt returns the forecast cloud cover at a horizon offset in seconds.
func (f *Forecaster) CloudAt(horizonS float64) float64 {
	return interpolate(f.current.CloudCover01, horizonS)
}
