package types

import "math"

// Round2 rounds v to 2 decimal places using half-away-from-zero rounding.
//
// Monetary totals and accumulated hours are kept as float64 while they are
// being summed and rounded exactly once, at the point of storage. Rounding
// per entry would compound error across large timesheet batches.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
