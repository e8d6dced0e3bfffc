package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordvolt/gridcore/internal/bess"
	"github.com/nordvolt/gridcore/internal/config"
	"github.com/nordvolt/gridcore/internal/world"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	cfg := config.Default()
	cfg.WarmupHours = 0
	w, err := world.New(cfg)
	require.NoError(t, err)
	return New(w)
}

func TestNew_DefaultsToSpeedOne(t *testing.T) {
	r := newTestRunner(t)
	assert.Equal(t, 1.0, r.Speed())
	assert.False(t, r.Paused())
}

func TestSetSpeed_ClampsToAllowedRange(t *testing.T) {
	r := newTestRunner(t)

	r.SetSpeed(50000)
	assert.Equal(t, 10000.0, r.Speed())

	r.SetSpeed(0)
	assert.Equal(t, 1.0, r.Speed())
}

func TestPauseResume(t *testing.T) {
	r := newTestRunner(t)

	r.Pause()
	assert.True(t, r.Paused())
	r.Resume()
	assert.False(t, r.Paused())
}

func TestSimulateUnpaced_AdvancesClockAndFiresOnTick(t *testing.T) {
	r := newTestRunner(t)

	var ticks []world.Snapshot
	r.OnTick = func(s world.Snapshot) { ticks = append(ticks, s) }

	r.SimulateUnpaced(100)

	assert.Len(t, ticks, 100)
	assert.Equal(t, 100, r.World.Clock.TimeS())
}

func TestSimulateUnpaced_StopsAtDayComplete(t *testing.T) {
	r := newTestRunner(t)

	var phases []world.Phase
	r.OnPhase = func(p world.Phase) { phases = append(phases, p) }

	r.SimulateUnpaced(86400 + 10)

	assert.Equal(t, world.PhaseDayComplete, r.World.Phase)
	require.NotEmpty(t, phases)
	assert.Equal(t, world.PhaseDayComplete, phases[len(phases)-1])
}

func TestRun_RespectsPause(t *testing.T) {
	r := newTestRunner(t)
	r.SetSpeed(1000)
	r.Pause()

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		r.Run(5*time.Millisecond, stop)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	close(stop)
	<-done

	assert.Equal(t, 0, r.World.Clock.TimeS())
}

func TestRun_AdvancesWhileUnpaused(t *testing.T) {
	r := newTestRunner(t)
	r.SetSpeed(1000)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		r.Run(5*time.Millisecond, stop)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	close(stop)
	<-done

	assert.Greater(t, r.World.Clock.TimeS(), 0)
}

func TestSetDABid_DelegatesToWorld(t *testing.T) {
	r := newTestRunner(t)

	require.NoError(t, r.SetDABid(4, 250))
	assert.Equal(t, 250.0, r.World.DABidMW[4])

	assert.Error(t, r.SetDABid(99, 250))
}

func TestSetUnitMode_DelegatesToWorld(t *testing.T) {
	r := newTestRunner(t)

	unit := bess.NewConfigured(bess.Config{CapacityMWh: 5, MaxPowerMW: 2, RoundTripEfficiency: 0.9})
	r.World.SetBESSFleet([]*bess.Unit{unit})

	require.NoError(t, r.SetUnitMode(unit.ID, bess.ModeCharge))
	assert.Equal(t, bess.ModeCharge, unit.Mode)

	assert.Error(t, r.SetUnitMode("unknown", bess.ModeCharge))
}
