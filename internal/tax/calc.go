package tax

import "math"

// clampAmount guards against corrupt input reaching the calculator: negative
// and non-finite amounts are treated as zero. Entry validation in the handler
// layer rejects these before storage, so this only matters for bad data.
func clampAmount(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	return amount
}

// Tax computes the sales tax on an amount under the given regime. Exempt
// amounts are taxed at zero. No rounding is applied here; rounding happens
// only at display time so per-item rounding error never compounds across a
// list.
func Tax(amount float64, taxable bool, r Regime) float64 {
	if !taxable {
		return 0
	}
	return clampAmount(amount) * r.TotalRate()
}

// Total returns the amount plus its tax.
func Total(amount float64, taxable bool, r Regime) float64 {
	return clampAmount(amount) + Tax(amount, taxable, r)
}
