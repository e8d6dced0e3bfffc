package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHydroReservoirDepletesUnderSustainedDraw(t *testing.T) {
	h := NewHydroReservoir(DefaultHydroReservoirConfig(), 0.5)
	start := h.StorageFraction()
	for i := 0; i < 7200; i++ {
		h.Step(0, h.Config.MaxMW(), 3600)
	}
	assert.Less(t, h.StorageFraction(), start, "reservoir fraction should drop under sustained full draw with no inflow")
}

func TestHydroReservoirEnergyLimitClampsWithLittleStorage(t *testing.T) {
	cfg := DefaultHydroReservoirConfig()
	h := NewHydroReservoir(cfg, 0.001)    // nearly empty
	out := h.Step(0, cfg.MaxMW(), 86400) // a full day remaining to spread tiny reserves over
	assert.Less(t, out, cfg.MaxMW(), "near-empty reservoir spread over a full day should be energy-limited well below max")
}

func TestHydroReservoirNeverExceedsStorageCapacity(t *testing.T) {
	h := NewHydroReservoir(DefaultHydroReservoirConfig(), 0.99)
	for i := 0; i < 10000; i++ {
		h.Step(1_000_000, 0, 3600)
	}
	assert.LessOrEqual(t, h.StoredMWh, h.Config.StorageMWh)
}

func TestHydroReservoirOutputRespectsMustRunMin(t *testing.T) {
	cfg := DefaultHydroReservoirConfig()
	cfg.MustRunMinMW = 500
	h := NewHydroReservoir(cfg, 0.5)
	for i := 0; i < 2000; i++ {
		h.Step(0, 0, 36000)
	}
	assert.GreaterOrEqual(t, h.OutputMW, cfg.MustRunMinMW-1e-6, "output should not fall below must-run minimum")
}
