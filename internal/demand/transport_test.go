package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportEVBudgetRefillsAtMidnight(t *testing.T) {
	tr := NewTransport(DefaultTransportConfig())
	tr.Step(1, 0, 10, 0, 0)
	firstDayBudget := tr.remainingEVEnergyMWh

	// Drain most of the budget within day 1.
	for i := 0; i < 100000; i++ {
		tr.Step(1, 12, 10, 0, 0)
	}
	assert.Less(t, tr.remainingEVEnergyMWh, firstDayBudget, "EV budget should have drained over the day")

	tr.Step(2, 0, 10, 0, 0)
	assert.Greater(t, tr.remainingEVEnergyMWh, 0.0, "EV budget should refill on day change")
}

func TestTransportEVBudgetLargerInWinter(t *testing.T) {
	warm := NewTransport(DefaultTransportConfig())
	warm.refillEVBudget(15)
	cold := NewTransport(DefaultTransportConfig())
	cold.refillEVBudget(-10)
	assert.Greater(t, cold.remainingEVEnergyMWh, warm.remainingEVEnergyMWh, "winter EV budget should exceed summer")
}

func TestTransportEVChargingThrottledByGridStress(t *testing.T) {
	tr := NewTransport(DefaultTransportConfig())
	tr.remainingEVEnergyMWh = 1e9 // effectively unlimited for this check

	relaxed := tr.stepEVCharging(0.0)
	tr.remainingEVEnergyMWh = 1e9
	stressed := tr.stepEVCharging(1.0)

	assert.Less(t, stressed, relaxed, "charging under high grid stress should be throttled below relaxed")
}

func TestTransportEVChargingStopsWhenBudgetExhausted(t *testing.T) {
	tr := NewTransport(DefaultTransportConfig())
	tr.remainingEVEnergyMWh = 0
	got := tr.stepEVCharging(0.2)
	assert.Zero(t, got)
}
