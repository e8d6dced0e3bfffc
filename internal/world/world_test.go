package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordvolt/gridcore/internal/bess"
	"github.com/nordvolt/gridcore/internal/config"
)

func testConfig() config.Config {
	c := config.Default()
	c.WarmupHours = 0.01 // a handful of ticks, not a full 12h, to keep tests fast
	return c
}

func TestNew_StartsInWarmup(t *testing.T) {
	w, err := New(testConfig())
	require.NoError(t, err)
	assert.Equal(t, PhaseWarmup, w.Phase)
}

func TestTick_LeavesWarmupAfterConfiguredWindow(t *testing.T) {
	cfg := testConfig()
	w, err := New(cfg)
	require.NoError(t, err)

	ticks := warmupTicksFor(cfg.WarmupHours)
	for i := 0; i < ticks-1; i++ {
		w.Tick()
		assert.Equal(t, PhaseWarmup, w.Phase)
	}
	w.Tick()
	assert.Equal(t, PhaseRunning, w.Phase)
}

func TestTick_RecordsHistoryOnlyAfterWarmup(t *testing.T) {
	w, err := New(testConfig())
	require.NoError(t, err)

	ticks := warmupTicksFor(w.Config.WarmupHours)
	for i := 0; i < ticks; i++ {
		w.Tick()
	}
	assert.Empty(t, w.History)

	w.Tick()
	assert.Len(t, w.History, 1)
	assert.Equal(t, w.Clock.TimeS(), w.History[0].TimeS)
}

func TestTick_FrequencyStaysWithinSwingBounds(t *testing.T) {
	w, err := New(testConfig())
	require.NoError(t, err)

	for i := 0; i < warmupTicksFor(w.Config.WarmupHours)+3600; i++ {
		w.Tick()
		f := w.lastSnapshot.Frequency.FrequencyHz
		assert.GreaterOrEqual(t, f, 45.0)
		assert.LessOrEqual(t, f, 55.0)
	}
}

func TestEndOfDay_TransitionsToDayComplete(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupHours = 0
	w, err := New(cfg)
	require.NoError(t, err)

	for i := 0; i < 86400; i++ {
		w.Tick()
	}
	assert.Equal(t, PhaseDayComplete, w.Phase)
}

func TestResetToStartOfDay_ClearsHistoryAndKeepsSubsystemState(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupHours = 0
	w, err := New(cfg)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		w.Tick()
	}
	require.NotEmpty(t, w.History)

	w.ResetToStartOfDay()
	assert.Empty(t, w.History)
	assert.Equal(t, PhaseRunning, w.Phase)
	assert.Equal(t, 0, w.Clock.TimeS())
}

func TestReset_ReinitializesEverySubsystem(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupHours = 0
	w, err := New(cfg)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		w.Tick()
	}
	require.NoError(t, w.SetDABid(5, 100))

	require.NoError(t, w.Reset())
	assert.Equal(t, PhaseRunning, w.Phase)
	assert.Empty(t, w.History)
	assert.Equal(t, 0.0, w.DABidMW[5])
}

func TestSetDABid_RejectsOutOfRangeHour(t *testing.T) {
	w, err := New(testConfig())
	require.NoError(t, err)

	assert.Error(t, w.SetDABid(-1, 10))
	assert.Error(t, w.SetDABid(24, 10))
	assert.NoError(t, w.SetDABid(0, 10))
	assert.Equal(t, 10.0, w.DABidMW[0])
}

func TestSetFCRBid_ClampsNegativeToZero(t *testing.T) {
	w, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, w.SetFCRBid(3, -50))
	assert.Equal(t, 0.0, w.FCRBidMW[3])
}

func TestSetUnitMode_UnknownIDIsConfigError(t *testing.T) {
	w, err := New(testConfig())
	require.NoError(t, err)

	err = w.SetUnitMode("does-not-exist", bess.ModeCharge)
	assert.Error(t, err)
}

func TestSetUnitMode_KnownIDUpdatesUnit(t *testing.T) {
	w, err := New(testConfig())
	require.NoError(t, err)

	unit := bess.NewConfigured(bess.Config{CapacityMWh: 10, MaxPowerMW: 5, RoundTripEfficiency: 0.9})
	w.SetBESSFleet([]*bess.Unit{unit})

	require.NoError(t, w.SetUnitMode(unit.ID, bess.ModeDischarge))
	assert.Equal(t, bess.ModeDischarge, unit.Mode)
}

func TestNew_InvalidReplayDirIsFatal(t *testing.T) {
	cfg := testConfig()
	cfg.UseSimulation = false
	cfg.ReplayBaseDir = "/nonexistent/replay/base"
	cfg.Day = "2024-03-15"

	_, err := New(cfg)
	assert.Error(t, err)
}
