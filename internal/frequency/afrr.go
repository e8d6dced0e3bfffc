package frequency

import "github.com/nordvolt/gridcore/internal/gridcore"

const (
	afrrFilterTauS  = 5.0
	afrrArmHz       = 0.03
	afrrArmDelayS   = 30.0
	afrrKp          = 5000.0 // MW/Hz
	afrrKi          = 120.0  // MW/(Hz*s)
	afrrImbalanceGain = 0.15
	afrrRampUpMWPerS   = 40
	afrrRampDownMWPerS = 60
	afrrIntegratorLeakPerS = 0.05
)

// AFRRController is the automatic frequency restoration reserve: a PI
// controller that only arms once |df| has persisted beyond a deadband
// for 30s, per §4.7.
type AFRRController struct {
	FilteredHz    float64
	persistS      float64
	Armed         bool
	Integrator    float64
	ActivationMW  float64
}

// NewAFRRController creates a controller pre-filtered at nominal.
func NewAFRRController() *AFRRController {
	return &AFRRController{FilteredHz: 50.0}
}

// Step advances the controller by one second. netImbalanceMW feeds an
// optional 0.15*(-imbalance) assist term.
func (c *AFRRController) Step(frequencyHz, netImbalanceMW, upCapMW, downCapMW float64) float64 {
	c.FilteredHz += (frequencyHz - c.FilteredHz) * (dt / afrrFilterTauS)
	df := 50.0 - c.FilteredHz

	if df < 0 {
		if -df >= afrrArmHz {
			c.persistS += dt
		} else {
			c.persistS = 0
		}
	} else if df >= afrrArmHz {
		c.persistS += dt
	} else {
		c.persistS = 0
	}
	c.Armed = c.persistS >= afrrArmDelayS

	if !c.Armed {
		// Leak the integrator back toward zero while inactive.
		c.Integrator -= c.Integrator * afrrIntegratorLeakPerS * dt
		c.ActivationMW = rampAsym(c.ActivationMW, 0, afrrRampUpMWPerS, afrrRampDownMWPerS)
		return c.ActivationMW
	}

	c.Integrator += df * afrrKi * dt
	maxIntegrator := upCapMW
	if downCapMW > maxIntegrator {
		maxIntegrator = downCapMW
	}
	c.Integrator = gridcore.Clamp(c.Integrator, -maxIntegrator, maxIntegrator)

	assist := afrrImbalanceGain * (-netImbalanceMW)
	target := afrrKp*df + c.Integrator + assist
	target = gridcore.Clamp(target, -downCapMW, upCapMW)

	c.ActivationMW = rampAsym(c.ActivationMW, target, afrrRampUpMWPerS, afrrRampDownMWPerS)
	return c.ActivationMW
}
