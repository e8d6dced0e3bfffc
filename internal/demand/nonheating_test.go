package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonHeatingCookingPeaksAtMealtimes(t *testing.T) {
	n := NewNonHeating(DefaultNonHeatingConfig())
	dinner := n.Step(18.5, 0.5, 0, false)
	midafternoon := n.Step(15, 0.5, 0, false)
	assert.Greater(t, dinner.CookingMW, midafternoon.CookingMW, "cooking demand should peak around dinner time")
}

func TestNonHeatingLightingRisesWithCloudCover(t *testing.T) {
	n := NewNonHeating(DefaultNonHeatingConfig())
	clear := n.Step(12, 0.0, 0, false)
	overcast := n.Step(12, 1.0, 0, false)
	assert.Greater(t, overcast.LightingMW, clear.LightingMW, "overcast midday should show higher lighting demand than clear midday")
}

func TestNonHeatingTotalRespectsCurtailmentFloor(t *testing.T) {
	cfg := DefaultNonHeatingConfig()
	n := NewNonHeating(cfg)
	uncurtailed := n.Step(12, 0.5, 0, false)
	curtailed := n.Step(12, 0.5, 1.0, false)
	assert.GreaterOrEqualf(t, curtailed.TotalMW, uncurtailed.TotalMW*cfg.MinCurtailmentFactor*0.99,
		"curtailed total should not fall below the floor fraction of uncurtailed %v", uncurtailed.TotalMW)
}
