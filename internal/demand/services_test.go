package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServicesOccupancyPeaksDuringWorkHours(t *testing.T) {
	s := NewServices(DefaultServicesConfig())
	morning := s.Step(10, 10, 0, false, false)
	s2 := NewServices(DefaultServicesConfig())
	night := s2.Step(3, 10, 0, false, false)
	assert.Greater(t, morning.OccupancyMW, night.OccupancyMW, "10:00 occupancy should exceed 03:00 occupancy")
}

func TestServicesWeekendLowerThanWeekday(t *testing.T) {
	weekday := NewServices(DefaultServicesConfig()).Step(10, 10, 0, false, false)
	weekend := NewServices(DefaultServicesConfig()).Step(10, 10, 0, true, false)
	assert.Less(t, weekend.OccupancyMW, weekday.OccupancyMW, "weekend occupancy should be lower than weekday at the same hour")
}

func TestServicesHeatingRespondsToTemperature(t *testing.T) {
	s := NewServices(DefaultServicesConfig())
	var cold ServicesBreakdown
	for i := 0; i < 3000; i++ {
		cold = s.Step(10, -5, 0, false, false)
	}
	s2 := NewServices(DefaultServicesConfig())
	var warm ServicesBreakdown
	for i := 0; i < 3000; i++ {
		warm = s2.Step(10, 20, 0, false, false)
	}
	assert.Greater(t, cold.HeatingMW, warm.HeatingMW, "services heating should be higher when cold than when warm")
}
