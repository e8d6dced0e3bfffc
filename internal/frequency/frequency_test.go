package frequency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBand(t *testing.T) {
	cases := []struct {
		f    float64
		want Band
	}{
		{50.0, BandNormal},
		{49.95, BandNormal},
		{49.85, BandOffNormal},
		{49.6, BandAlert},
		{49.2, BandEmergency},
		{48.0, BandBlackout},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, ClassifyBand(c.f), "ClassifyBand(%v)", c.f)
	}
}

func TestAutoShedRequestRampsBetweenThresholds(t *testing.T) {
	assert.Zero(t, AutoShedRequestMW(49.5), "expected 0 above 49.4")
	assert.Equal(t, 3000.0, AutoShedRequestMW(49.0), "expected 3000 at or below 49.0")
	mid := AutoShedRequestMW(49.2)
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 3000.0)
}

func TestSwingModelStaysWithinBounds(t *testing.T) {
	m := New(DefaultConfig())
	for i := 0; i < 100000; i++ {
		s := m.Step(40000, 45000, 0, 0, 4, 50000)
		require.GreaterOrEqualf(t, s.FrequencyHz, 45.0, "tick %d", i)
		require.LessOrEqualf(t, s.FrequencyHz, 55.0, "tick %d", i)
	}
	assert.Less(t, m.State.FrequencyHz, 49.9, "sustained 5GW generation deficit should pull frequency well below nominal")
}

func TestSwingModelRecoversTowardNominalWhenBalanced(t *testing.T) {
	m := New(DefaultConfig())
	m.State.FrequencyHz = 49.5
	for i := 0; i < 3600; i++ {
		m.Step(50000, 50000, 0, 0, 4, 50000)
	}
	assert.Greater(t, m.State.FrequencyHz, 49.5, "damping+droop should pull frequency back toward 50 once balanced")
}

func TestFCRNDirectionFollowsFrequency(t *testing.T) {
	c := NewFCRNController()
	var out float64
	for i := 0; i < 60; i++ {
		out = c.Step(49.80, 1000, 1000)
	}
	assert.Greater(t, out, 0.0, "low frequency should produce positive (upward) FCR-N activation")
}

func TestAFRRDoesNotArmBeforePersistDelay(t *testing.T) {
	c := NewAFRRController()
	for i := 0; i < 10; i++ {
		c.Step(49.9, 0, 2000, 2000)
	}
	assert.False(t, c.Armed, "aFRR should not arm before the 30s persistence delay")

	for i := 0; i < 25; i++ {
		c.Step(49.9, 0, 2000, 2000)
	}
	assert.True(t, c.Armed, "aFRR should arm once the deviation has persisted 30s")
}

func TestMFRRSchedulesBlocksAfterPersistentTrigger(t *testing.T) {
	c := NewMFRRController()
	for i := 0; i < 179; i++ {
		c.Step(true, 100, 2000, 2000)
	}
	assert.Truef(t, c.PendingBlocks() == 0 && c.ArrivedMW == 0, "no block should have arrived before the 180s trigger delay")

	for i := 0; i < 5; i++ {
		c.Step(true, 100, 2000, 2000)
	}
	assert.NotZero(t, c.PendingBlocks(), "expected a block scheduled after the persistent trigger fires")
}

func TestFFRTriggersOnSevereRoCoF(t *testing.T) {
	c := NewFFRController(DefaultFFRConfig())
	c.Step(49.65, -0.02)
	assert.True(t, c.Active(), "FFR should trigger on f<=49.70 with RoCoF<=-0.01")
}

func TestFFREntersCooldownAfterProfile(t *testing.T) {
	c := NewFFRController(DefaultFFRConfig())
	c.Step(49.5, -0.05)
	for i := 0; i < int(ffrRampUpS+ffrHoldS+ffrRampDownS)+2; i++ {
		c.Step(50, 0)
	}
	assert.False(t, c.Active(), "FFR should have completed its profile and entered cooldown")
	assert.Zero(t, c.ActivationMW)
}
