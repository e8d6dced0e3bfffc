// Package clock implements the simulation's integer-second timebase
// (spec §4.1). It is the only subsystem the orchestrator mutates
// directly every tick; every other subsystem only reads derived
// fields from it.
package clock

const SecondsPerDay = 86400

// Clock is an integer second counter since local midnight, plus the
// calendar day it belongs to. timeS may run negative during the 12h
// warm-up phase described in §4.1.
type Clock struct {
	timeS     int
	dayOfYear int // 1..365
}

// New creates a clock at the given day of year, time zero.
func New(dayOfYear int) *Clock {
	if dayOfYear < 1 {
		dayOfYear = 1
	}
	if dayOfYear > 365 {
		dayOfYear = 365
	}
	return &Clock{dayOfYear: dayOfYear}
}

// Tick advances the clock by exactly one second.
func (c *Clock) Tick() {
	c.timeS++
}

// TimeS returns the raw second counter (may be negative during warm-up).
func (c *Clock) TimeS() int { return c.timeS }

// DayOfYear returns the current calendar day, 1..365.
func (c *Clock) DayOfYear() int { return c.dayOfYear }

func (c *Clock) wrapped() int {
	t := c.timeS % SecondsPerDay
	if t < 0 {
		t += SecondsPerDay
	}
	return t
}

// LocalHour returns 0..23.
func (c *Clock) LocalHour() int { return c.wrapped() / 3600 }

// LocalMinute returns 0..59.
func (c *Clock) LocalMinute() int { return (c.wrapped() / 60) % 60 }

// LocalSecond returns 0..59.
func (c *Clock) LocalSecond() int { return c.wrapped() % 60 }

// FractionalHour returns the local time as hours, e.g. 13.5 for 13:30.
func (c *Clock) FractionalHour() float64 {
	return float64(c.wrapped()) / 3600.0
}

// EndOfDay reports whether timeS has reached the end-of-day predicate
// used by the orchestrator to fire §6's endDay() exit condition.
func (c *Clock) EndOfDay() bool { return c.timeS >= SecondsPerDay }

// ResetToStartOfDay zeroes timeS, ending the warm-up phase, per §4.1.
func (c *Clock) ResetToStartOfDay() { c.timeS = 0 }

// Reset returns the clock to time zero at the given day of year.
func (c *Clock) Reset(dayOfYear int) {
	if dayOfYear < 1 {
		dayOfYear = 1
	}
	if dayOfYear > 365 {
		dayOfYear = 365
	}
	c.dayOfYear = dayOfYear
	c.timeS = 0
}

// ISPIndex returns the index of the current 15-minute imbalance
// settlement period, 0..95.
func (c *Clock) ISPIndex() int {
	return c.wrapped() / 900
}

// SecondsIntoISP returns how many seconds have elapsed in the current ISP.
func (c *Clock) SecondsIntoISP() int {
	return c.wrapped() % 900
}

// SecondsRemainingInHour returns how many seconds remain until the
// next hour boundary, floored at 1 to keep "remaining-seconds"
// controllers (spec §9) from dividing by zero.
func (c *Clock) SecondsRemainingInHour() int {
	rem := 3600 - (c.wrapped() % 3600)
	if rem < 1 {
		rem = 1
	}
	return rem
}
