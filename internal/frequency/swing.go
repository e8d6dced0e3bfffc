package frequency

import "github.com/nordvolt/gridcore/internal/gridcore"

// Band classifies the instantaneous frequency per the intervals named
// in §4.7.
type Band int

const (
	BandNormal Band = iota
	BandOffNormal
	BandAlert
	BandEmergency
	BandBlackout
)

// String returns the band's lower-case name, used by telemetry and the
// ws streaming layer.
func (b Band) String() string {
	switch b {
	case BandNormal:
		return "normal"
	case BandOffNormal:
		return "off_normal"
	case BandAlert:
		return "alert"
	case BandEmergency:
		return "emergency"
	default:
		return "blackout"
	}
}

// ClassifyBand returns the operating band for a frequency in Hz.
func ClassifyBand(f float64) Band {
	switch {
	case f >= 49.9 && f <= 50.1:
		return BandNormal
	case f >= 49.8 && f <= 50.2:
		return BandOffNormal
	case f >= 49.5 && f <= 50.5:
		return BandAlert
	case f >= 49.0 && f <= 51.0:
		return BandEmergency
	default:
		return BandBlackout
	}
}

// AutoShedRequestMW ramps 0 -> 3000 MW as frequency falls from 49.4 Hz
// to 49.0 Hz, per §4.7.
func AutoShedRequestMW(f float64) float64 {
	if f >= 49.4 {
		return 0
	}
	if f <= 49.0 {
		return 3000
	}
	frac := (49.4 - f) / (49.4 - 49.0)
	return 3000 * frac
}

// Config holds the swing model's static parameters.
type Config struct {
	DampingMWPerHz float64 // 450
	FCRDeadbandHz  float64 // 0.02
	FCRFullHz      float64 // 0.20
	FCRCapMW       float64
	MinHSeconds    float64 // 0.5
	MaxHSeconds    float64 // 12
}

// DefaultConfig returns the values named in §4.7.
func DefaultConfig() Config {
	return Config{
		DampingMWPerHz: 450,
		FCRDeadbandHz:  0.02,
		FCRFullHz:      0.20,
		FCRCapMW:       900,
		MinHSeconds:    0.5,
		MaxHSeconds:    12,
	}
}

// State is the frequency model's mutable state, spec §3.
type State struct {
	FrequencyHz                  float64
	RoCoFHzPerS                  float64
	IntegratedEnergyImbalanceMWh float64
}

// Model is the exactly-one writer of frequency state per §3.
type Model struct {
	Config Config
	State  State
}

// New creates a frequency model starting at nominal 50 Hz.
func New(cfg Config) *Model {
	return &Model{Config: cfg, State: State{FrequencyHz: 50.0}}
}

// InertiaSource is one generation or motor-load component's
// contribution to the inertial base, spec §4.7.
type InertiaSource struct {
	MW       float64
	HSeconds float64
}

// EquivH computes H_equiv = sum(MW_i*H_i)/S, clamped to [min, max].
func EquivH(sources []InertiaSource, minH, maxH float64) (hEquiv, sBaseMW float64) {
	var weighted, base float64
	for _, s := range sources {
		weighted += s.MW * s.HSeconds
		base += s.MW
	}
	hEquiv = gridcore.SafeDiv(weighted, base, 1e-6)
	hEquiv = gridcore.Clamp(hEquiv, minH, maxH)
	return hEquiv, base
}

// Step advances the swing equation by one second (spec §4.7):
//
//  1. raw imbalance = generation - consumption
//  2. add external controls (FFR, load shed)
//  3. subtract load damping D*(f-50)
//  4. add the internal FCR droop response
//  5. integrate df/dt = (50*P_damped)/(2*H_equiv*S), f clamped [45,55]
func (m *Model) Step(generationMW, consumptionMW, ffrMW, loadShedMW, hEquiv, sBaseMW float64) State {
	raw := generationMW - consumptionMW
	controlled := raw + ffrMW + loadShedMW

	damping := m.Config.DampingMWPerHz * (m.State.FrequencyHz - 50.0)
	pDamped := controlled - damping

	df := 50.0 - m.State.FrequencyHz
	droop := droopFraction(df, m.Config.FCRDeadbandHz, m.Config.FCRFullHz) * m.Config.FCRCapMW
	pFinal := pDamped + droop

	denom := 2 * hEquiv * sBaseMW
	rocof := gridcore.SafeDiv(50.0*pFinal, denom, 1e-3)

	m.State.RoCoFHzPerS = rocof
	m.State.FrequencyHz = gridcore.Clamp(m.State.FrequencyHz+rocof*dt, 45, 55)
	m.State.IntegratedEnergyImbalanceMWh += pFinal * dt / 3600.0

	return m.State
}
