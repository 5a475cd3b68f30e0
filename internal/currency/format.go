// Package currency renders monetary values for display. All rounding in the
// application happens here; the tax engine and aggregator carry unrounded
// values.
package currency

import (
	"fmt"
	"math"
)

// Format renders an amount in fixed two-decimal notation with a "$" prefix.
// Negative amounts render as "$-12.34" (sign after the symbol), the one
// convention used everywhere including budget messaging. Non-finite input
// defensively renders as "$0.00" rather than failing.
func Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}
	return fmt.Sprintf("$%.2f", amount)
}

// FormatAbs renders the magnitude of an amount, used for "over budget by
// $3.97" messaging where the sign is carried by the wording.
func FormatAbs(amount float64) string {
	return Format(math.Abs(amount))
}
