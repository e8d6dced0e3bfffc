// Package supply implements the nine generation fleet models of §4.5:
// nuclear, hydro reservoir, run-of-river, wind, solar, biofuel/waste
// CHP, industrial CHP, peakers and interconnectors. Every model runs at
// 1 Hz and exposes an OutputMW (or per-region/per-site breakdown) read
// by the grid aggregator each tick.
package supply

import "github.com/nordvolt/gridcore/internal/gridcore"

const dt = 1.0 // seconds

// rampToward is the shared per-tick ramp primitive used by every
// dispatchable fleet in this package.
func rampToward(current, target, maxRateMWPerS float64) float64 {
	return gridcore.RampToward(current, target, maxRateMWPerS*dt)
}
