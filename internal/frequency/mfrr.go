package frequency

import "github.com/nordvolt/gridcore/internal/gridcore"

const (
	mfrrTriggerDelayS  = 180.0
	mfrrBlockMW        = 100.0
	mfrrMaxPendingBlocks = 5
	mfrrBlockDelayS    = 300.0
	mfrrRampUpMWPerS   = 10
	mfrrRampDownMWPerS = 15
	mfrrImbalanceTriggerMW = 500.0
	mfrrAFRRSaturationTrigger = 0.80
)

// mfrrBlock is one scheduled 100 MW block awaiting its activation delay.
type mfrrBlock struct {
	MW              float64
	RemainingDelayS float64
}

// MFRRController is the manual frequency restoration reserve: on a
// persistent trigger it schedules signed 100 MW blocks with a 300s
// activation delay (up to 5 pending at once), then ramps toward the
// sum of arrived blocks, per §4.7.
type MFRRController struct {
	pending      []mfrrBlock
	ArrivedMW    float64
	ActivationMW float64
	triggerS     float64
}

// NewMFRRController creates an idle controller.
func NewMFRRController() *MFRRController {
	return &MFRRController{}
}

// TriggerActive evaluates whether the persistent-trigger condition of
// §4.7 currently holds: off-normal-or-worse frequency band, or
// |imbalance| > 500 MW, or aFRR saturation >= 0.80.
func TriggerActive(band Band, imbalanceMW, afrrSaturation01 float64) bool {
	if band != BandNormal {
		return true
	}
	if imbalanceMW > mfrrImbalanceTriggerMW || imbalanceMW < -mfrrImbalanceTriggerMW {
		return true
	}
	return afrrSaturation01 >= mfrrAFRRSaturationTrigger
}

// Step advances the controller by one second. triggerActive is the
// instantaneous trigger condition (see TriggerActive); requestSignMW's
// sign picks the direction of newly scheduled blocks (positive = up).
func (c *MFRRController) Step(triggerActive bool, requestSignMW, upCapMW, downCapMW float64) float64 {
	if triggerActive {
		c.triggerS += dt
	} else {
		c.triggerS = 0
	}

	if c.triggerS >= mfrrTriggerDelayS && len(c.pending) < mfrrMaxPendingBlocks {
		blockMW := mfrrBlockMW
		if requestSignMW < 0 {
			blockMW = -mfrrBlockMW
		}
		c.pending = append(c.pending, mfrrBlock{MW: blockMW, RemainingDelayS: mfrrBlockDelayS})
	}

	var stillPending []mfrrBlock
	for _, b := range c.pending {
		b.RemainingDelayS -= dt
		if b.RemainingDelayS <= 0 {
			c.ArrivedMW += b.MW
			continue
		}
		stillPending = append(stillPending, b)
	}
	c.pending = stillPending

	c.ArrivedMW = gridcore.Clamp(c.ArrivedMW, -downCapMW, upCapMW)
	c.ActivationMW = rampAsym(c.ActivationMW, c.ArrivedMW, mfrrRampUpMWPerS, mfrrRampDownMWPerS)
	return c.ActivationMW
}

// PendingBlocks reports how many blocks are currently scheduled but not
// yet arrived.
func (c *MFRRController) PendingBlocks() int { return len(c.pending) }
