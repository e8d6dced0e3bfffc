package frequency

const (
	fcrnFilterTauS  = 2.0
	fcrnDeadbandHz  = 0.02
	fcrnFullHz      = 0.20
	fcrnRampUpMWPerS   = 200
	fcrnRampDownMWPerS = 300
)

// FCRNController is the frequency-containment reserve (normal band)
// controller, distinct from the inline droop baked into the swing
// equation: it is a separately dispatched reserve product with its own
// filtered frequency and ramp rate, per §4.7.
type FCRNController struct {
	FilteredHz   float64
	ActivationMW float64
}

// NewFCRNController creates a controller pre-filtered at nominal.
func NewFCRNController() *FCRNController {
	return &FCRNController{FilteredHz: 50.0}
}

// Step advances the controller by one second. upCapMW/downCapMW bound
// the magnitude of upward (f<50) and downward (f>50) activation.
func (c *FCRNController) Step(frequencyHz, upCapMW, downCapMW float64) float64 {
	c.FilteredHz += (frequencyHz - c.FilteredHz) * (dt / fcrnFilterTauS)

	df := 50.0 - c.FilteredHz
	target := droopFraction(df, fcrnDeadbandHz, fcrnFullHz)

	var targetMW float64
	if target >= 0 {
		targetMW = target * upCapMW
	} else {
		targetMW = target * downCapMW
	}

	c.ActivationMW = rampAsym(c.ActivationMW, targetMW, fcrnRampUpMWPerS, fcrnRampDownMWPerS)
	return c.ActivationMW
}
