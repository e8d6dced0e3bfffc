package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordvolt/gridcore/internal/weather"
)

func TestArrayLength(t *testing.T) {
	f := New(100)
	f.MaybeRecompute(0, 100, weather.SynopticState{TemperatureC: 5, WindMps: 6, CloudCover01: 0.5})
	a := f.Current()
	require.Equal(t, horizonPoints, a.Len())
	assert.Len(t, a.TemperatureC, horizonPoints)
	assert.Len(t, a.WindMps, horizonPoints)
	assert.Len(t, a.CloudCover01, horizonPoints)
}

func TestRecomputeCadence(t *testing.T) {
	f := New(10)
	f.MaybeRecompute(0, 10, weather.SynopticState{TemperatureC: 1})
	first := f.Current()

	// Within 60s, no recompute should occur even with very different input.
	f.MaybeRecompute(30, 10, weather.SynopticState{TemperatureC: 99})
	assert.Equal(t, first.TemperatureC[0], f.Current().TemperatureC[0], "recomputed before 60s elapsed")

	f.MaybeRecompute(60, 10, weather.SynopticState{TemperatureC: 99})
	assert.NotEqual(t, first.TemperatureC[0], f.Current().TemperatureC[0], "did not recompute at 60s cadence")
}

func TestRecomputeOnDayChange(t *testing.T) {
	f := New(10)
	f.MaybeRecompute(0, 10, weather.SynopticState{TemperatureC: 1})
	first := f.Current()
	f.MaybeRecompute(5, 11, weather.SynopticState{TemperatureC: 50})
	assert.NotEqual(t, first.TemperatureC[0], f.Current().TemperatureC[0], "did not recompute on day change despite <60s elapsed")
}

func TestUncertaintyGrowsWithHorizon(t *testing.T) {
	f := New(10)
	f.MaybeRecompute(0, 10, weather.SynopticState{TemperatureC: 5})
	a := f.Current()
	assert.Greater(t, a.TemperatureSigma[horizonPoints-1], a.TemperatureSigma[0], "sigma should grow with horizon")
}

func TestInterpolationMonotonicHorizon(t *testing.T) {
	f := New(10)
	f.MaybeRecompute(0, 10, weather.SynopticState{TemperatureC: 5, WindMps: 10})
	v0 := f.TemperatureAt(0)
	v30 := f.TemperatureAt(30)
	v60 := f.TemperatureAt(60)
	// v30 should be between v0 and v60 (linear interpolation).
	lo, hi := v0, v60
	if lo > hi {
		lo, hi = hi, lo
	}
	assert.GreaterOrEqual(t, v30, lo-1e-9)
	assert.LessOrEqual(t, v30, hi+1e-9)
}
