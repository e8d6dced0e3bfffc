package supply

import "github.com/nordvolt/gridcore/internal/gridcore"

// PeakersConfig configures the gas/oil peaking fleet.
type PeakersConfig struct {
	CapacityMW     float64
	MinStableMW    float64 // 300 MW
	ColdStartDelayS float64 // 600 s
	RampMWPerS     float64
}

// DefaultPeakersConfig returns the values named in §4.5.
func DefaultPeakersConfig() PeakersConfig {
	return PeakersConfig{CapacityMW: 4000, MinStableMW: 300, ColdStartDelayS: 600, RampMWPerS: 25}
}

// Peakers is the gas/oil peaking fleet: off, starting (cold-start
// delay running), or following a target above its minimum stable load.
type Peakers struct {
	Config PeakersConfig

	OutputMW    float64
	starting    bool
	startTimerS float64
}

// NewPeakers creates an off peaking fleet.
func NewPeakers(cfg PeakersConfig) *Peakers {
	return &Peakers{Config: cfg}
}

// Step advances the fleet by one second. targetMW <= 0 means off: the
// fleet ramps down and the start timer resets. targetMW > 0 first
// incurs the cold-start delay (while OutputMW stays at 0) before
// ramping from min-stable toward target.
func (p *Peakers) Step(targetMW float64) float64 {
	if targetMW <= 0 {
		p.starting = false
		p.startTimerS = 0
		p.OutputMW = rampToward(p.OutputMW, 0, p.Config.RampMWPerS)
		return p.OutputMW
	}

	if p.OutputMW == 0 && !p.starting {
		p.starting = true
		p.startTimerS = 0
	}

	if p.starting {
		p.startTimerS += dt
		if p.startTimerS < p.Config.ColdStartDelayS {
			return p.OutputMW
		}
		p.starting = false
		p.OutputMW = p.Config.MinStableMW
	}

	clampedTarget := gridcore.Clamp(targetMW, p.Config.MinStableMW, p.Config.CapacityMW)
	p.OutputMW = rampToward(p.OutputMW, clampedTarget, p.Config.RampMWPerS)
	return p.OutputMW
}
