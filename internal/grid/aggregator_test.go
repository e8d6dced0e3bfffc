package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateSumsSourcesAndImbalance(t *testing.T) {
	p := Production{NuclearMW: 3000, HydroMW: 5000, WindMW: 2000, NetImportMW: -500}
	c := Consumption{HeatingMW: 4000, ServicesMW: 3000, LossesMW: 500}

	snap := Aggregate(p, c)

	assert.InDelta(t, 9500, snap.GenerationMW, 1e-9)
	assert.InDelta(t, 7500, snap.ConsumptionMW, 1e-9)
	assert.InDelta(t, 2000, snap.RawImbalanceMW, 1e-9)
}

func TestAggregateZeroInputsYieldZeroSnapshot(t *testing.T) {
	snap := Aggregate(Production{}, Consumption{})
	assert.Zero(t, snap.RawImbalanceMW)
	assert.Zero(t, snap.GenerationMW)
	assert.Zero(t, snap.ConsumptionMW)
}
