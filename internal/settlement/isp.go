// Package settlement implements the 15-minute imbalance settlement
// period (ISP) of spec §4.9: per-ISP accumulation of scheduled/actual/
// system-imbalance energy, direction classification at rollover, and
// eSett-style imbalance cashflow and fees.
package settlement

import "math"

const (
	ispSeconds          = 900
	dt                  = 1.0
	imbalanceDeadbandMW = 150
	freqDeadbandHz      = 0.01
)

// Direction classifies the system's regulation need at ISP rollover.
type Direction int

const (
	NoRegulation Direction = iota
	UpRegulating
	DownRegulating
)

// Prices are the ISP's settlement reference prices, read from the
// external bidding/price interface (spec §6's prices.csv in replay).
type Prices struct {
	DAReferenceEUR float64
	UpPriceEUR     float64
	DownPriceEUR   float64
}

// FeeConfig configures eSett-style per-MWh and weekly fees, spec §4.9.
type FeeConfig struct {
	Enabled            bool
	PerMWhFeeEUR       float64 // 2.0
	PerDeviationMWhEUR float64 // 1.15
	WeeklyFeeEUR       float64
}

// DefaultFeeConfig returns the values named in §4.9.
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{Enabled: true, PerMWhFeeEUR: 2.0, PerDeviationMWhEUR: 1.15, WeeklyFeeEUR: 0}
}

// LastSettlement is the most recently rolled-over ISP's outcome.
type LastSettlement struct {
	Direction           Direction
	ScheduledMWh        float64
	ActualMWh           float64
	DeviationMWh        float64
	PriceEUR            float64
	ImbalanceCashflowEUR float64
	FeesEUR             float64
	NetCashflowEUR      float64
}

// Settlement accumulates the current ISP and tracks cumulative totals.
type Settlement struct {
	FeeConfig FeeConfig

	haveISP      bool
	lastISPIndex int

	scheduledMWh       float64
	actualMWh          float64
	systemImbalanceMWh float64
	sumImbalanceMW     float64
	sumFreqDevHz       float64
	ticksThisISP       int

	lastPrices Prices

	Last                  LastSettlement
	CumulativeNetCashEur  float64
	CumulativeDeviationMWh float64
}

// New creates a settlement accumulator.
func New(feeCfg FeeConfig) *Settlement {
	return &Settlement{FeeConfig: feeCfg}
}

// Step accumulates one tick into the current ISP, rolling over the
// previous ISP first if ispIndex has advanced. daBidMW is the current
// hour's day-ahead bid (signed); actualNetPowerMW is the BESS fleet's
// actual net power; systemImbalanceMW is the grid-wide raw imbalance;
// frequencyHz is the current tick's frequency.
func (s *Settlement) Step(ispIndex int, daBidMW, actualNetPowerMW, systemImbalanceMW, frequencyHz float64) {
	if s.haveISP && ispIndex != s.lastISPIndex {
		s.rollover()
	}
	s.haveISP = true
	s.lastISPIndex = ispIndex

	s.scheduledMWh += daBidMW * dt / 3600.0
	s.actualMWh += actualNetPowerMW * dt / 3600.0
	s.systemImbalanceMWh += systemImbalanceMW * dt / 3600.0
	s.sumImbalanceMW += systemImbalanceMW
	s.sumFreqDevHz += frequencyHz - 50.0
	s.ticksThisISP++
}

func (s *Settlement) rollover() {
	n := s.ticksThisISP
	if n == 0 {
		return
	}
	avgImbalanceMW := s.sumImbalanceMW / float64(n)
	avgFreqDevHz := s.sumFreqDevHz / float64(n)

	dir := classifyDirection(avgImbalanceMW, avgFreqDevHz)

	deviationMWh := s.actualMWh - s.scheduledMWh

	var priceEUR float64
	switch dir {
	case UpRegulating:
		priceEUR = s.lastPrices.UpPriceEUR
	case DownRegulating:
		priceEUR = s.lastPrices.DownPriceEUR
	default:
		priceEUR = s.lastPrices.DAReferenceEUR
	}

	imbalanceCashflow := deviationMWh * priceEUR

	var fees float64
	if s.FeeConfig.Enabled {
		fees = s.FeeConfig.PerMWhFeeEUR*math.Abs(s.actualMWh) + s.FeeConfig.PerDeviationMWhEUR*math.Abs(deviationMWh)
		fees += s.FeeConfig.WeeklyFeeEUR / (7 * 96)
	}

	net := imbalanceCashflow - fees

	s.Last = LastSettlement{
		Direction:            dir,
		ScheduledMWh:         s.scheduledMWh,
		ActualMWh:            s.actualMWh,
		DeviationMWh:         deviationMWh,
		PriceEUR:             priceEUR,
		ImbalanceCashflowEUR: imbalanceCashflow,
		FeesEUR:              fees,
		NetCashflowEUR:       net,
	}
	s.CumulativeNetCashEur += net
	s.CumulativeDeviationMWh += deviationMWh

	s.scheduledMWh = 0
	s.actualMWh = 0
	s.systemImbalanceMWh = 0
	s.sumImbalanceMW = 0
	s.sumFreqDevHz = 0
	s.ticksThisISP = 0
}

// SetPrices updates the prices used at the next rollover (read from
// the current hour's price row, spec §6).
func (s *Settlement) SetPrices(p Prices) { s.lastPrices = p }

func classifyDirection(avgImbalanceMW, avgFreqDevHz float64) Direction {
	switch {
	case avgImbalanceMW > imbalanceDeadbandMW:
		return DownRegulating
	case avgImbalanceMW < -imbalanceDeadbandMW:
		return UpRegulating
	case avgFreqDevHz > freqDeadbandHz:
		return DownRegulating
	case avgFreqDevHz < -freqDeadbandHz:
		return UpRegulating
	default:
		return NoRegulation
	}
}
