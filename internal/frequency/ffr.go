package frequency

const (
	ffrTriggerFreqRoCoFHz   = 49.70
	ffrTriggerRoCoFHzPerS   = -0.01
	ffrTriggerFreqOnlyHz    = 49.60
	ffrRampUpS   = 1.0
	ffrHoldS     = 5.0
	ffrRampDownS = 10.0
	ffrCooldownS = 900.0
)

// ffrPhase is FFR's one-shot state machine.
type ffrPhase int

const (
	ffrIdle ffrPhase = iota
	ffrRampingUp
	ffrHolding
	ffrRampingDown
	ffrCoolingDown
)

// FFRConfig is the one-shot fast frequency reserve's static envelope.
type FFRConfig struct {
	PeakMW          float64
	EnergyBudgetMWh float64
}

// DefaultFFRConfig returns a representative FFR envelope.
func DefaultFFRConfig() FFRConfig {
	return FFRConfig{PeakMW: 1000, EnergyBudgetMWh: 10}
}

// FFRController is the fast frequency reserve of §4.7: triggers once
// per cooldown window on a severe RoCoF or frequency excursion, then
// runs a fixed 1s/5s/10s ramp-up/hold/ramp-down profile bounded by an
// energy budget.
type FFRController struct {
	Config FFRConfig

	phase        ffrPhase
	phaseTimerS  float64
	ActivationMW float64
	EnergyUsedMWh float64
}

// NewFFRController creates an armed, idle controller.
func NewFFRController(cfg FFRConfig) *FFRController {
	return &FFRController{Config: cfg}
}

// Step advances the controller by one second.
func (c *FFRController) Step(frequencyHz, rocofHzPerS float64) float64 {
	switch c.phase {
	case ffrIdle:
		if (frequencyHz <= ffrTriggerFreqRoCoFHz && rocofHzPerS <= ffrTriggerRoCoFHzPerS) || frequencyHz <= ffrTriggerFreqOnlyHz {
			c.phase = ffrRampingUp
			c.phaseTimerS = 0
			c.EnergyUsedMWh = 0
		}
		c.ActivationMW = 0
	case ffrRampingUp:
		c.phaseTimerS += dt
		frac := c.phaseTimerS / ffrRampUpS
		if frac > 1 {
			frac = 1
		}
		c.ActivationMW = c.Config.PeakMW * frac
		if c.phaseTimerS >= ffrRampUpS {
			c.phase = ffrHolding
			c.phaseTimerS = 0
		}
	case ffrHolding:
		c.phaseTimerS += dt
		c.ActivationMW = c.Config.PeakMW
		if c.phaseTimerS >= ffrHoldS {
			c.phase = ffrRampingDown
			c.phaseTimerS = 0
		}
	case ffrRampingDown:
		c.phaseTimerS += dt
		frac := 1 - c.phaseTimerS/ffrRampDownS
		if frac < 0 {
			frac = 0
		}
		c.ActivationMW = c.Config.PeakMW * frac
		if c.phaseTimerS >= ffrRampDownS {
			c.phase = ffrCoolingDown
			c.phaseTimerS = 0
		}
	case ffrCoolingDown:
		c.phaseTimerS += dt
		c.ActivationMW = 0
		if c.phaseTimerS >= ffrCooldownS {
			c.phase = ffrIdle
			c.phaseTimerS = 0
		}
	}

	c.EnergyUsedMWh += c.ActivationMW * dt / 3600.0
	if c.EnergyUsedMWh >= c.Config.EnergyBudgetMWh && (c.phase == ffrRampingUp || c.phase == ffrHolding) {
		c.phase = ffrRampingDown
		c.phaseTimerS = 0
	}

	return c.ActivationMW
}

// Active reports whether the controller is currently anywhere in its
// one-shot profile (not idle and not cooling down).
func (c *FFRController) Active() bool {
	return c.phase == ffrRampingUp || c.phase == ffrHolding || c.phase == ffrRampingDown
}
