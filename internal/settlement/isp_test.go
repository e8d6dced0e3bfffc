package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolloverAfterOneFullISP(t *testing.T) {
	s := New(DefaultFeeConfig())
	s.SetPrices(Prices{DAReferenceEUR: 40, UpPriceEUR: 60, DownPriceEUR: 20})

	for i := 0; i < 900; i++ {
		s.Step(0, 0, 20, 0, 50) // constant 20 MW actual, 0 DA schedule, balanced system/frequency
	}
	// Crossing into the next ISP triggers rollover of the first.
	s.Step(1, 0, 20, 0, 50)

	require.InDelta(t, 5.0, s.Last.DeviationMWh, 1e-6)
}

func TestNoRegulationWhenWithinDeadbands(t *testing.T) {
	s := New(DefaultFeeConfig())
	s.SetPrices(Prices{DAReferenceEUR: 40, UpPriceEUR: 60, DownPriceEUR: 20})
	for i := 0; i < 900; i++ {
		s.Step(0, 0, 0, 50, 50) // imbalance within deadband, frequency nominal
	}
	s.Step(1, 0, 0, 50, 50)
	assert.Equal(t, NoRegulation, s.Last.Direction)
}

func TestUpRegulatingFromSustainedDeficitImbalance(t *testing.T) {
	s := New(DefaultFeeConfig())
	s.SetPrices(Prices{DAReferenceEUR: 40, UpPriceEUR: 60, DownPriceEUR: 20})
	for i := 0; i < 900; i++ {
		s.Step(0, 0, 0, -500, 50)
	}
	s.Step(1, 0, 0, -500, 50)
	assert.Equal(t, UpRegulating, s.Last.Direction)
}

func TestZeroDeviationWithNoBidsAndNoActualPower(t *testing.T) {
	s := New(DefaultFeeConfig())
	for i := 0; i < 86400; i++ {
		s.Step(i/900, 0, 0, 0, 50)
	}
	assert.Zero(t, s.CumulativeDeviationMWh)
	assert.Zero(t, s.CumulativeNetCashEur)
}
