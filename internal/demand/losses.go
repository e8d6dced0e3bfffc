package demand

// LossesConfig configures the grid transmission and distribution loss
// model: a fixed component plus a component quadratic in total flow.
type LossesConfig struct {
	FixedMW        float64
	QuadraticCoeff float64 // MW of loss per (GW of flow)^2
	InflowTauS     float64 // smoothing of the incoming flow signal, 30s
	LossTauS       float64 // smoothing of the resulting loss figure, 10s
}

// DefaultLossesConfig returns illustrative values for a system peaking
// around 45 GW of total flow.
func DefaultLossesConfig() LossesConfig {
	return LossesConfig{
		FixedMW:        350,
		QuadraticCoeff: 0.9,
		InflowTauS:     30,
		LossTauS:       10,
	}
}

// Losses models transmission and distribution losses as a function of
// total system flow, itself smoothed to avoid reacting to instantaneous
// per-tick noise in the producer/consumer totals.
type Losses struct {
	cfg LossesConfig

	inflow Smoother
	loss   Smoother
}

// NewLosses creates a losses model.
func NewLosses(cfg LossesConfig) *Losses {
	return &Losses{
		inflow: Smoother{Tau: cfg.InflowTauS},
		loss:   Smoother{Tau: cfg.LossTauS},
		cfg:    cfg,
	}
}

// Step advances the model by one second given the instantaneous total
// system flow in MW (typically total generation before losses).
func (l *Losses) Step(totalFlowMW float64) float64 {
	smoothFlow := l.inflow.Step(totalFlowMW)
	flowGW := smoothFlow / 1000.0
	raw := l.cfg.FixedMW + l.cfg.QuadraticCoeff*flowGW*flowGW
	if raw < 0 {
		raw = 0
	}
	return l.loss.Step(raw)
}
