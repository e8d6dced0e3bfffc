// Package telemetry exposes the core's tick-loop Prometheus metrics:
// frequency, reserve saturation, BESS state of charge, and ISP
// cashflow, recorded by the world orchestrator once per tick or at
// ISP rollover.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TicksProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gridcore",
	Subsystem: "world",
	Name:      "ticks_processed_total",
	Help:      "Total simulated ticks processed since process start.",
})

var FrequencyHz = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gridcore",
	Subsystem: "frequency",
	Name:      "hz",
	Help:      "Current grid frequency in Hz.",
})

var RoCoFHzPerS = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gridcore",
	Subsystem: "frequency",
	Name:      "rocof_hz_per_s",
	Help:      "Current rate of change of frequency in Hz/s.",
})

var ReserveSaturation = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "gridcore",
	Subsystem: "reserve",
	Name:      "saturation_ratio",
	Help:      "Fraction of available reserve capacity currently activated, by product and direction.",
}, []string{"product", "direction"})

var BESSUnitSoC = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "gridcore",
	Subsystem: "bess",
	Name:      "soc_ratio",
	Help:      "Per-unit state of charge in [0,1].",
}, []string{"unit_id"})

var BESSFleetPowerMW = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gridcore",
	Subsystem: "bess",
	Name:      "fleet_power_mw",
	Help:      "Current BESS fleet net power in MW (positive=discharging).",
})

var ISPCashflowEUR = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gridcore",
	Subsystem: "settlement",
	Name:      "isp_cumulative_net_cashflow_eur",
	Help:      "Cumulative net imbalance settlement cashflow in EUR (may be negative).",
})

var ISPDirection = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gridcore",
	Subsystem: "settlement",
	Name:      "isp_direction_total",
	Help:      "Count of ISP rollovers by settlement direction.",
}, []string{"direction"})

var GridRawImbalanceMW = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gridcore",
	Subsystem: "grid",
	Name:      "raw_imbalance_mw",
	Help:      "Generation minus consumption before reserve injection, in MW.",
})

var WSMessagesDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gridcore",
	Subsystem: "ws",
	Name:      "messages_dropped_total",
	Help:      "WebSocket broadcast messages dropped because a client's outbound buffer was full, by message type.",
}, []string{"type"})
