package demand

import (
	"math"

	"github.com/nordvolt/gridcore/internal/gridcore"
)

// TransportConfig configures rail traction plus public EV charging.
type TransportConfig struct {
	RailPeakMW        float64
	RailBaseMW        float64
	EVFleetCount      float64 // number of EVs modeled as a single budget
	AvgDailyKm        float64
	KwhPerKmSummer    float64
	WinterPenalty     float64 // multiplier on kWh/km below freezing
	ChargerFleetCapMW float64
	MinCurtailmentFactor float64
}

// DefaultTransportConfig returns illustrative fleet-scale values.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		RailPeakMW:     900,
		RailBaseMW:     250,
		EVFleetCount:   2_000_000,
		AvgDailyKm:     35,
		KwhPerKmSummer: 0.18,
		WinterPenalty:  1.35,
		ChargerFleetCapMW: 6000,
		MinCurtailmentFactor: 0.0, // public charging is fully deferrable
	}
}

// Transport models rail traction demand and EV public/overnight
// charging against a daily energy budget that refills at midnight.
type Transport struct {
	cfg TransportConfig

	remainingEVEnergyMWh float64
	lastDayOfYear        int
	initialized          bool
}

// NewTransport creates a transport demand model.
func NewTransport(cfg TransportConfig) *Transport {
	return &Transport{cfg: cfg}
}

var railScheduleTable = [24]float64{
	0.2, 0.15, 0.1, 0.1, 0.15, 0.4, 0.8, 1.0,
	0.9, 0.6, 0.5, 0.5, 0.55, 0.55, 0.6, 0.75,
	0.95, 1.0, 0.85, 0.6, 0.45, 0.35, 0.3, 0.25,
}

// TransportBreakdown is the output of one Step.
type TransportBreakdown struct {
	RailMW float64
	EVMW   float64
	TotalMW float64
}

// Step advances the model by one second. gridStress01 is the
// dispatcher's current stress signal (0 relaxed, 1 tight), which
// throttles smart EV charging. outdoorTempC drives the winter energy
// penalty on the daily EV budget.
func (tr *Transport) Step(dayOfYear int, fracHour, outdoorTempC, gridStress01, curtailment01 float64) TransportBreakdown {
	if !tr.initialized || dayOfYear != tr.lastDayOfYear {
		tr.refillEVBudget(outdoorTempC)
		tr.lastDayOfYear = dayOfYear
		tr.initialized = true
	}

	railFactor := HourFraction(railScheduleTable, fracHour)
	rail := tr.cfg.RailBaseMW + (tr.cfg.RailPeakMW-tr.cfg.RailBaseMW)*railFactor

	evMW := tr.stepEVCharging(gridStress01)

	total := rail + evMW
	total = ApplyCurtailment(total, curtailment01, tr.cfg.MinCurtailmentFactor)

	return TransportBreakdown{RailMW: rail, EVMW: evMW, TotalMW: total}
}

func (tr *Transport) refillEVBudget(outdoorTempC float64) {
	penalty := 1.0
	if outdoorTempC < 0 {
		penalty = tr.cfg.WinterPenalty
	} else if outdoorTempC < 10 {
		// linear blend between summer and winter penalty down to freezing
		penalty = 1 + (tr.cfg.WinterPenalty-1)*((10-outdoorTempC)/10)
	}
	kwhPerKm := tr.cfg.KwhPerKmSummer * penalty
	tr.remainingEVEnergyMWh = tr.cfg.EVFleetCount * tr.cfg.AvgDailyKm * kwhPerKm / 1000.0
}

func (tr *Transport) stepEVCharging(gridStress01 float64) float64 {
	if tr.remainingEVEnergyMWh <= 0 {
		return 0
	}
	stress := gridcore.Clamp01(gridStress01)
	throttle := gridcore.Clamp(1-math.Pow(stress, 1.6), 0.05, 1.0)
	targetMW := tr.cfg.ChargerFleetCapMW * throttle

	energyThisTickMWh := targetMW * dt / 3600.0
	if energyThisTickMWh > tr.remainingEVEnergyMWh {
		energyThisTickMWh = tr.remainingEVEnergyMWh
		targetMW = energyThisTickMWh * 3600.0 / dt
	}
	tr.remainingEVEnergyMWh -= energyThisTickMWh
	return targetMW
}
