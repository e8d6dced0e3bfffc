package supply

import "github.com/nordvolt/gridcore/internal/gridcore"

// InterconnectorMode selects whether the interconnector follows an
// explicit target or auto-balances against frequency and imbalance.
type InterconnectorMode int

const (
	InterconnectorFollowTarget InterconnectorMode = iota
	InterconnectorAutoBalance
)

// InterconnectorConfig configures one interconnector link.
type InterconnectorConfig struct {
	ImportCapMW float64 // positive = import
	ExportCapMW float64 // positive magnitude; actual flow negative when exporting
	RampMWPerS  float64 // 50 MW/s
	TargetTauS  float64 // 10 s smoothing of the target before ramping toward it

	Kp   float64 // proportional gain on (50 - f)
	Kimb float64 // gain on (-imbalance)
}

// DefaultInterconnectorConfig returns the values named in §4.5.
func DefaultInterconnectorConfig() InterconnectorConfig {
	return InterconnectorConfig{
		ImportCapMW: 3000,
		ExportCapMW: 3000,
		RampMWPerS:  50,
		TargetTauS:  10,
		Kp:          1500,
		Kimb:        0.1,
	}
}

// Interconnector is a single net-import link (positive = import).
type Interconnector struct {
	Config InterconnectorConfig

	smoothedTarget float64
	NetImportMW    float64

	// MarketDerateFrac scales both caps down to reflect a committed
	// cross-border market allocation below the link's physical rating.
	MarketDerateFrac float64
}

// NewInterconnector creates an interconnector starting at zero flow.
func NewInterconnector(cfg InterconnectorConfig) *Interconnector {
	return &Interconnector{Config: cfg, MarketDerateFrac: 1.0}
}

// Step advances the link by one second.
func (ic *Interconnector) Step(mode InterconnectorMode, targetMW, frequencyHz, systemImbalanceMW float64) float64 {
	derate := gridcore.Clamp01(ic.MarketDerateFrac)
	importCap := ic.Config.ImportCapMW * derate
	exportCap := ic.Config.ExportCapMW * derate

	var rawTarget float64
	switch mode {
	case InterconnectorFollowTarget:
		rawTarget = targetMW
	case InterconnectorAutoBalance:
		df := 50.0 - frequencyHz
		rawTarget = ic.Config.Kp*df + ic.Config.Kimb*(-systemImbalanceMW)
	}
	rawTarget = gridcore.Clamp(rawTarget, -exportCap, importCap)

	ic.smoothedTarget += (rawTarget - ic.smoothedTarget) * (dt / ic.Config.TargetTauS)
	ic.NetImportMW = rampToward(ic.NetImportMW, ic.smoothedTarget, ic.Config.RampMWPerS)
	return ic.NetImportMW
}

// HeadroomImportMW returns remaining import capability above current flow.
func (ic *Interconnector) HeadroomImportMW() float64 {
	cap := ic.Config.ImportCapMW * gridcore.Clamp01(ic.MarketDerateFrac)
	h := cap - ic.NetImportMW
	if h < 0 {
		return 0
	}
	return h
}

// HeadroomExportMW returns remaining export (negative-import) capability.
func (ic *Interconnector) HeadroomExportMW() float64 {
	cap := ic.Config.ExportCapMW * gridcore.Clamp01(ic.MarketDerateFrac)
	h := cap + ic.NetImportMW
	if h < 0 {
		return 0
	}
	return h
}
