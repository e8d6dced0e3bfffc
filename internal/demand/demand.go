// Package demand implements the six parallel consumer models of spec
// §4.4: residential heating, residential non-heating, services,
// transport, industry, and grid losses. Every model runs at 1 Hz,
// accepts an optional curtailment factor clamped to a documented
// minimum, and reads schedule tables indexed by local hour.
package demand

import (
	"math"

	"github.com/nordvolt/gridcore/internal/gridcore"
)

const dt = 1.0 // seconds

// Smoother is a first-order exponential smoother with time constant tau.
type Smoother struct {
	Value float64
	Tau   float64
}

// Step advances the smoother toward target by one tick.
func (s *Smoother) Step(target float64) float64 {
	if s.Tau <= 0 {
		s.Value = target
		return s.Value
	}
	s.Value += (target - s.Value) * (dt / s.Tau)
	return s.Value
}

// ApplyCurtailment scales a demand value by (1-curtailment), floored at
// minFactor, per the shared curtailment rule in §4.4.
func ApplyCurtailment(demandMW, curtailment01, minFactor float64) float64 {
	curtailment01 = gridcore.Clamp01(curtailment01)
	factor := 1 - curtailment01
	if factor < minFactor {
		factor = minFactor
	}
	return demandMW * factor
}

// HourFraction returns an interpolated value from a 24-entry hourly
// schedule table for a fractional local hour.
func HourFraction(table [24]float64, fracHour float64) float64 {
	for fracHour < 0 {
		fracHour += 24
	}
	for fracHour >= 24 {
		fracHour -= 24
	}
	lo := int(math.Floor(fracHour)) % 24
	hi := (lo + 1) % 24
	frac := fracHour - math.Floor(fracHour)
	return table[lo]*(1-frac) + table[hi]*frac
}

// Gaussian returns a bell-curve pulse of the given peak height centred
// at centerHour with the given standard deviation (hours).
func Gaussian(fracHour, centerHour, stddevHours, peak float64) float64 {
	d := fracHour - centerHour
	// wrap to shortest distance around the 24h clock
	if d > 12 {
		d -= 24
	} else if d < -12 {
		d += 24
	}
	return peak * math.Exp(-(d*d)/(2*stddevHours*stddevHours))
}
