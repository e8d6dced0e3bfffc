package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeatingRisesAsItGetsColder(t *testing.T) {
	h := NewHeating(DefaultHeatingConfig(), 10)
	var warm, cold HeatingBreakdown
	for i := 0; i < 20000; i++ {
		warm = h.Step(10, 5, 12, 0)
	}
	h2 := NewHeating(DefaultHeatingConfig(), -10)
	for i := 0; i < 20000; i++ {
		cold = h2.Step(-10, 5, 12, 0)
	}
	assert.Greater(t, cold.ConsumptionMW, warm.ConsumptionMW)
}

func TestHeatingCOPDegradesInCold(t *testing.T) {
	h := NewHeating(DefaultHeatingConfig(), 10)
	warm := h.weightedCOP(10)
	cold := h.weightedCOP(-20)
	assert.Less(t, cold, warm, "COP at -20C should be lower than at 10C")
}

func TestHeatingCurtailmentRespectsFloor(t *testing.T) {
	cfg := DefaultHeatingConfig()
	h := NewHeating(cfg, -10)
	var out HeatingBreakdown
	for i := 0; i < 20000; i++ {
		out = h.Step(-10, 0, 3, 1.0)
	}
	assert.Greater(t, out.ThermalDemandMW, 0.0, "full curtailment should still leave the floored minimum thermal demand")
}

func TestHeatingConsumptionNeverNegative(t *testing.T) {
	h := NewHeating(DefaultHeatingConfig(), 20)
	out := h.Step(25, 0, 14, 0)
	assert.GreaterOrEqual(t, out.ConsumptionMW, 0.0)
	assert.GreaterOrEqual(t, out.ThermalDemandMW, 0.0)
}
