// Package grid implements the grid aggregator of spec §2: it sums every
// producer and consumer update into a single per-tick snapshot used by
// the frequency model and telemetry. It owns no state of its own.
package grid

// Production is one tick's output from every supply subsystem, in MW.
type Production struct {
	NuclearMW      float64
	HydroMW        float64
	RunOfRiverMW   float64
	WindMW         float64
	SolarMW        float64
	BiofuelWasteMW float64
	IndustrialCHPMW float64
	PeakersMW      float64
	NetImportMW    float64
}

// TotalMW sums every production source, including net imports (which
// may be negative when exporting).
func (p Production) TotalMW() float64 {
	return p.NuclearMW + p.HydroMW + p.RunOfRiverMW + p.WindMW + p.SolarMW +
		p.BiofuelWasteMW + p.IndustrialCHPMW + p.PeakersMW + p.NetImportMW
}

// Consumption is one tick's demand from every sector, in MW.
type Consumption struct {
	HeatingMW    float64
	NonHeatingMW float64
	ServicesMW   float64
	TransportMW  float64
	IndustryMW   float64
	LossesMW     float64
}

// TotalMW sums every consumption sector.
func (c Consumption) TotalMW() float64 {
	return c.HeatingMW + c.NonHeatingMW + c.ServicesMW + c.TransportMW + c.IndustryMW + c.LossesMW
}

// Snapshot is the aggregated view of one tick, the input to the
// frequency model's raw imbalance and to telemetry/history.
type Snapshot struct {
	Production     Production
	Consumption    Consumption
	GenerationMW   float64
	ConsumptionMW  float64
	RawImbalanceMW float64
}

// Aggregate sums the tick's producer and consumer updates. RawImbalanceMW
// is generation minus consumption, the frequency model's P_raw.
func Aggregate(p Production, c Consumption) Snapshot {
	genMW := p.TotalMW()
	conMW := c.TotalMW()
	return Snapshot{
		Production:     p,
		Consumption:    c,
		GenerationMW:   genMW,
		ConsumptionMW:  conMW,
		RawImbalanceMW: genMW - conMW,
	}
}
