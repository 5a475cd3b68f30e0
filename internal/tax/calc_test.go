package tax

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func mustRegime(t *testing.T, code string) Regime {
	t.Helper()
	r, err := RateFor(code)
	if err != nil {
		t.Fatalf("RateFor(%s): %v", code, err)
	}
	return r
}

func TestTaxExempt(t *testing.T) {
	for _, r := range Regimes() {
		for _, amount := range []float64{0, 0.01, 10, 18.97, 1234.56} {
			if got := Tax(amount, false, r); got != 0 {
				t.Errorf("Tax(%v, false, %s) = %v, want 0", amount, r.Code, got)
			}
			if got := Total(amount, false, r); got != amount {
				t.Errorf("Total(%v, false, %s) = %v, want %v", amount, r.Code, got, amount)
			}
		}
	}
}

func TestTaxTaxable(t *testing.T) {
	for _, r := range Regimes() {
		for _, amount := range []float64{0, 0.01, 10, 18.97, 1234.56} {
			want := amount * r.TotalRate()
			if got := Tax(amount, true, r); got != want {
				t.Errorf("Tax(%v, true, %s) = %v, want %v", amount, r.Code, got, want)
			}
		}
	}
}

func TestTaxOntarioScenario(t *testing.T) {
	on := mustRegime(t, "ON")

	// An item priced 5.99 x2 in a non-exempt category: tax stays unrounded.
	lineTotal := 5.99 * 2
	got := Tax(lineTotal, true, on)
	if !almostEqual(got, 1.5574) {
		t.Errorf("Tax(11.98, true, ON) = %v, want 1.5574", got)
	}
	if total := Total(lineTotal, true, on); !almostEqual(total, 13.5374) {
		t.Errorf("Total(11.98, true, ON) = %v, want 13.5374", total)
	}
}

func TestTaxClampsCorruptInput(t *testing.T) {
	on := mustRegime(t, "ON")

	for _, amount := range []float64{-1, -0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Tax(amount, true, on); got != 0 {
			t.Errorf("Tax(%v, true, ON) = %v, want 0", amount, got)
		}
		if got := Total(amount, true, on); got != 0 {
			t.Errorf("Total(%v, true, ON) = %v, want 0", amount, got)
		}
	}
}
