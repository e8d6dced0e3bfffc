package demand

import "github.com/nordvolt/gridcore/internal/gridcore"

// IndustrySector names one of the nine modeled industrial segments.
type IndustrySector int

const (
	SectorPulpAndPaper IndustrySector = iota
	SectorSteel
	SectorMining
	SectorChemicals
	SectorFoodProcessing
	SectorCement
	SectorDataCenters
	SectorManufacturing
	SectorOther
	numIndustrySectors
)

// IndustrySectorConfig configures one sector's baseload, schedule shape
// and demand-response participation.
type IndustrySectorConfig struct {
	Continuous   bool // runs flat around the clock (e.g. data centers, chemicals)
	BaseloadMW   float64
	DREligible   bool
	DRMaxDeferMW float64
}

// IndustryConfig configures the whole industrial sector model.
type IndustryConfig struct {
	Sectors [numIndustrySectors]IndustrySectorConfig
	// DRTriggerStress is the grid stress level above which DR-eligible
	// sectors start curtailing and banking deferred energy.
	DRTriggerStress float64
	// DRPaybackStress is the stress level at or below which banked
	// energy is paid back.
	DRPaybackStress float64
	MinCurtailmentFactor float64
}

// DefaultIndustryConfig returns illustrative fleet-scale values.
func DefaultIndustryConfig() IndustryConfig {
	cfg := IndustryConfig{
		DRTriggerStress:  0.65,
		DRPaybackStress:  0.35,
		MinCurtailmentFactor: 0.5,
	}
	cfg.Sectors[SectorPulpAndPaper] = IndustrySectorConfig{Continuous: true, BaseloadMW: 1800, DREligible: true, DRMaxDeferMW: 300}
	cfg.Sectors[SectorSteel] = IndustrySectorConfig{Continuous: true, BaseloadMW: 2200, DREligible: true, DRMaxDeferMW: 500}
	cfg.Sectors[SectorMining] = IndustrySectorConfig{Continuous: true, BaseloadMW: 1600, DREligible: true, DRMaxDeferMW: 400}
	cfg.Sectors[SectorChemicals] = IndustrySectorConfig{Continuous: true, BaseloadMW: 1400, DREligible: false}
	cfg.Sectors[SectorFoodProcessing] = IndustrySectorConfig{Continuous: false, BaseloadMW: 700, DREligible: true, DRMaxDeferMW: 150}
	cfg.Sectors[SectorCement] = IndustrySectorConfig{Continuous: true, BaseloadMW: 600, DREligible: true, DRMaxDeferMW: 150}
	cfg.Sectors[SectorDataCenters] = IndustrySectorConfig{Continuous: true, BaseloadMW: 1100, DREligible: false}
	cfg.Sectors[SectorManufacturing] = IndustrySectorConfig{Continuous: false, BaseloadMW: 1500, DREligible: true, DRMaxDeferMW: 350}
	cfg.Sectors[SectorOther] = IndustrySectorConfig{Continuous: false, BaseloadMW: 900, DREligible: false}
	return cfg
}

var manufacturingShiftTable = [24]float64{
	0.5, 0.5, 0.5, 0.5, 0.5, 0.6, 0.85, 1.0,
	1.0, 1.0, 1.0, 0.95, 0.85, 0.95, 1.0, 1.0,
	1.0, 0.9, 0.7, 0.55, 0.5, 0.5, 0.5, 0.5,
}

// drBank tracks deferred energy owed back to one DR-eligible sector.
type drBank struct {
	mwh float64
}

// Industry is the nine-sector industrial demand model with
// demand-response curtailment and payback banking.
type Industry struct {
	cfg   IndustryConfig
	banks [numIndustrySectors]drBank
}

// NewIndustry creates an industry demand model.
func NewIndustry(cfg IndustryConfig) *Industry {
	return &Industry{cfg: cfg}
}

// IndustryBreakdown is the output of one Step.
type IndustryBreakdown struct {
	PerSectorMW [numIndustrySectors]float64
	TotalMW     float64
	BankedMWh   float64
}

// Step advances the model by one second.
func (ind *Industry) Step(fracHour, gridStress01 float64, isWeekend bool) IndustryBreakdown {
	var out IndustryBreakdown

	shiftFactor := HourFraction(manufacturingShiftTable, fracHour)
	if isWeekend {
		shiftFactor *= 0.6
	}

	for i := 0; i < numIndustrySectors; i++ {
		sc := ind.cfg.Sectors[i]
		demand := sc.BaseloadMW
		if !sc.Continuous {
			demand *= shiftFactor
		}

		if sc.DREligible {
			demand = ind.applyDR(IndustrySector(i), sc, demand, gridStress01)
		}

		out.PerSectorMW[i] = demand
		out.TotalMW += demand
		out.BankedMWh += ind.banks[i].mwh
	}

	return out
}

func (ind *Industry) applyDR(sector IndustrySector, sc IndustrySectorConfig, demand, gridStress01 float64) float64 {
	b := &ind.banks[sector]
	switch {
	case gridStress01 >= ind.cfg.DRTriggerStress:
		defer_ := gridcore.Clamp((gridStress01-ind.cfg.DRTriggerStress)/(1-ind.cfg.DRTriggerStress)*sc.DRMaxDeferMW, 0, sc.DRMaxDeferMW)
		demand -= defer_
		b.mwh += defer_ * dt / 3600.0
	case gridStress01 <= ind.cfg.DRPaybackStress && b.mwh > 0:
		paybackMW := sc.DRMaxDeferMW * 0.5
		energyThisTick := paybackMW * dt / 3600.0
		if energyThisTick > b.mwh {
			energyThisTick = b.mwh
			paybackMW = energyThisTick * 3600.0 / dt
		}
		b.mwh -= energyThisTick
		demand += paybackMW
	}
	if demand < 0 {
		demand = 0
	}
	return demand
}
