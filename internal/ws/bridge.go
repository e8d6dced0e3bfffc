package ws

import (
	"log"

	"github.com/nordvolt/gridcore/internal/settlement"
	"github.com/nordvolt/gridcore/internal/world"
)

// Bridge adapts Runner's tick/phase callbacks to hub broadcasts. It
// replaces the teacher's simulator.Callback with the world package's
// Snapshot/Phase shapes.
type Bridge struct {
	hub *Hub

	haveSettlement bool
	lastSettlement settlement.LastSettlement
	ispSeq         int
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

// OnTick broadcasts one recorded tick's frequency, grid, and BESS
// state, and, on an ISP rollover, the settlement record too.
func (b *Bridge) OnTick(s world.Snapshot) {
	msg, err := NewEnvelope(TypeTick, TickPayload{
		TimeS:                s.TimeS,
		FrequencyHz:          s.Frequency.FrequencyHz,
		RoCoFHzPerS:          s.Frequency.RoCoFHzPerS,
		Band:                 s.Band.String(),
		GenerationMW:         s.Grid.GenerationMW,
		ConsumptionMW:        s.Grid.ConsumptionMW,
		RawImbalanceMW:       s.Grid.RawImbalanceMW,
		BESSFleetPowerMW:     s.BESS.TotalPowerMW,
		BESSActiveDirection:  s.BESS.ActiveDirection,
		CumulativeNetCashEur: s.CumulativeNetCashEur,
	})
	if err != nil {
		log.Printf("ws: error marshaling tick state: %v", err)
		return
	}
	b.hub.Broadcast(TypeTick, msg)

	// LastSettlement only changes at an ISP rollover (§4.9); a plain
	// equality check against the previous broadcast value is enough to
	// detect one without the world package exposing an index.
	if b.haveSettlement && s.Settlement == b.lastSettlement {
		return
	}
	b.haveSettlement = true
	b.lastSettlement = s.Settlement
	b.ispSeq++
	b.broadcastSettlement(b.ispSeq, s.Settlement)
}

func (b *Bridge) broadcastSettlement(ispSeq int, last settlement.LastSettlement) {
	msg, err := NewEnvelope(TypeSettlement, SettlementPayload{
		ISPIndex:             ispSeq,
		Direction:            directionLabel(last.Direction),
		ScheduledMWh:         last.ScheduledMWh,
		ActualMWh:            last.ActualMWh,
		DeviationMWh:         last.DeviationMWh,
		ImbalanceCashflowEur: last.ImbalanceCashflowEUR,
		NetCashflowEur:       last.NetCashflowEUR,
	})
	if err != nil {
		log.Printf("ws: error marshaling settlement: %v", err)
		return
	}
	b.hub.Broadcast(TypeSettlement, msg)
}

// OnPhase broadcasts a world lifecycle transition, e.g. day_complete.
func (b *Bridge) OnPhase(p world.Phase) {
	msg, err := NewEnvelope(TypePhase, PhasePayload{Phase: phaseLabel(p)})
	if err != nil {
		log.Printf("ws: error marshaling phase: %v", err)
		return
	}
	b.hub.Broadcast(TypePhase, msg)
}

func directionLabel(d settlement.Direction) string {
	switch d {
	case settlement.UpRegulating:
		return "up_regulating"
	case settlement.DownRegulating:
		return "down_regulating"
	default:
		return "no_regulation"
	}
}

func phaseLabel(p world.Phase) string {
	switch p {
	case world.PhaseWarmup:
		return "warmup"
	case world.PhaseRunning:
		return "running"
	case world.PhaseDayComplete:
		return "day_complete"
	default:
		return "unknown"
	}
}
