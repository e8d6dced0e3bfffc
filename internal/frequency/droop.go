// Package frequency implements the swing-equation model and the
// FCR/aFRR/mFRR/FFR reserve controllers of spec §4.7: the primary
// inertial response, the deadband/droop reserve products, and the
// classification of the system into normal/off-normal/alert/emergency/
// blackout bands.
package frequency

const dt = 1.0 // seconds

// droopFraction returns a signed response fraction in [-1, 1] for a
// frequency deviation df=50-f against a deadband/full-response pair:
// zero within the deadband, linear out to +-1 at fullHz, saturated
// beyond it. Positive means "need more generation" (f below 50).
func droopFraction(df, deadbandHz, fullHz float64) float64 {
	mag := df
	sign := 1.0
	if mag < 0 {
		mag = -mag
		sign = -1.0
	}
	switch {
	case mag <= deadbandHz:
		return 0
	case mag >= fullHz:
		return sign
	default:
		return sign * (mag - deadbandHz) / (fullHz - deadbandHz)
	}
}

// rampAsym moves current toward target by at most upStep per second
// when rising and downStep per second when falling.
func rampAsym(current, target, upStepPerS, downStepPerS float64) float64 {
	if target >= current {
		step := upStepPerS * dt
		if target-current < step {
			return target
		}
		return current + step
	}
	step := downStepPerS * dt
	if current-target < step {
		return target
	}
	return current - step
}
