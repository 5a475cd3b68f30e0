package summary

import (
	"math"
	"testing"

	"github.com/jrfournier/carttally/internal/currency"
	"github.com/jrfournier/carttally/internal/model"
	"github.com/jrfournier/carttally/internal/tax"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func ontario(t *testing.T) tax.Regime {
	t.Helper()
	r, err := tax.RateFor("ON")
	if err != nil {
		t.Fatalf("RateFor(ON): %v", err)
	}
	return r
}

func item(name string, price float64, qty int, category string, purchased bool) model.Item {
	it := model.Item{Name: name, UnitPrice: price, Quantity: qty, Purchased: purchased}
	if category != "" {
		it.Category = &category
	}
	return it
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, ontario(t), nil)

	if s.Subtotal != 0 || s.TaxAmount != 0 || s.Total != 0 {
		t.Errorf("empty summary totals = %v/%v/%v, want all 0", s.Subtotal, s.TaxAmount, s.Total)
	}
	if s.ItemCount != 0 || s.PurchasedCount != 0 {
		t.Errorf("empty summary counts = %d/%d, want 0/0", s.ItemCount, s.PurchasedCount)
	}
	if s.BudgetVariance != nil {
		t.Errorf("empty summary variance = %v, want nil", *s.BudgetVariance)
	}
	// Progress must be 0, never NaN.
	if s.PercentPurchased != 0 {
		t.Errorf("empty summary percent = %v, want 0", s.PercentPurchased)
	}
}

func TestSummarizeExemptItems(t *testing.T) {
	items := []model.Item{
		item("Apples", 4.99, 2, "Food", false),
		item("Aspirin", 8.99, 1, "Medication", false),
	}

	s := Summarize(items, ontario(t), nil)

	if !almostEqual(s.Subtotal, 18.97) {
		t.Errorf("subtotal = %v, want 18.97", s.Subtotal)
	}
	if s.TaxAmount != 0 {
		t.Errorf("tax = %v, want 0", s.TaxAmount)
	}
	if !almostEqual(s.Total, 18.97) {
		t.Errorf("total = %v, want 18.97", s.Total)
	}
}

func TestSummarizeTaxableItem(t *testing.T) {
	items := []model.Item{
		item("Dish soap", 5.99, 2, "Cleaning", false),
	}

	s := Summarize(items, ontario(t), nil)

	if !almostEqual(s.Subtotal, 11.98) {
		t.Errorf("subtotal = %v, want 11.98", s.Subtotal)
	}
	if !almostEqual(s.TaxAmount, 1.5574) {
		t.Errorf("tax = %v, want 1.5574 (unrounded)", s.TaxAmount)
	}
	if !almostEqual(s.Total, 13.5374) {
		t.Errorf("total = %v, want 13.5374 (unrounded)", s.Total)
	}

	// Rounding happens only at display time.
	if got := currency.Format(s.TaxAmount); got != "$1.56" {
		t.Errorf("tax display = %q, want $1.56", got)
	}
	if got := currency.Format(s.Total); got != "$13.54" {
		t.Errorf("total display = %q, want $13.54", got)
	}
}

func TestSummarizeLowercaseCategoryIsTaxable(t *testing.T) {
	// "food" is not "Food": the exemption match is case-sensitive.
	items := []model.Item{
		item("Bread", 10.00, 1, "food", false),
	}

	s := Summarize(items, ontario(t), nil)

	if !almostEqual(s.TaxAmount, 1.30) {
		t.Errorf("tax = %v, want 1.30", s.TaxAmount)
	}
	if !almostEqual(s.Total, 11.30) {
		t.Errorf("total = %v, want 11.30", s.Total)
	}
}

func TestSummarizeUncategorizedIsTaxable(t *testing.T) {
	items := []model.Item{
		item("Mystery", 10.00, 1, "", false),
	}

	s := Summarize(items, ontario(t), nil)

	if !almostEqual(s.TaxAmount, 1.30) {
		t.Errorf("tax = %v, want 1.30", s.TaxAmount)
	}
}

func TestSummarizeBudgetVariance(t *testing.T) {
	items := []model.Item{
		item("Apples", 4.99, 2, "Food", false),
		item("Aspirin", 8.99, 1, "Medication", false),
	}

	// Remaining budget.
	budget := 20.00
	s := Summarize(items, ontario(t), &budget)
	if s.BudgetVariance == nil {
		t.Fatal("variance = nil, want value")
	}
	if !almostEqual(*s.BudgetVariance, 1.03) {
		t.Errorf("variance = %v, want 1.03", *s.BudgetVariance)
	}
	if s.OverBudget() {
		t.Error("OverBudget() = true, want false")
	}

	// Over budget: the display value is the absolute overage.
	budget = 15.00
	s = Summarize(items, ontario(t), &budget)
	if s.BudgetVariance == nil {
		t.Fatal("variance = nil, want value")
	}
	if !almostEqual(*s.BudgetVariance, -3.97) {
		t.Errorf("variance = %v, want -3.97", *s.BudgetVariance)
	}
	if !s.OverBudget() {
		t.Error("OverBudget() = false, want true")
	}
	if got := currency.FormatAbs(*s.BudgetVariance); got != "$3.97" {
		t.Errorf("overage display = %q, want $3.97", got)
	}
}

func TestSummarizeZeroBudgetIsABudget(t *testing.T) {
	items := []model.Item{
		item("Dish soap", 5.99, 2, "Cleaning", false),
	}

	// A present zero budget yields a variance; only nil means "no budget".
	budget := 0.0
	s := Summarize(items, ontario(t), &budget)
	if s.BudgetVariance == nil {
		t.Fatal("variance = nil, want value for explicit zero budget")
	}
	if !s.OverBudget() {
		t.Error("OverBudget() = false, want true with zero budget and nonzero total")
	}
}

func TestSummarizePurchasedProgress(t *testing.T) {
	items := []model.Item{
		item("Apples", 4.99, 1, "Food", true),
		item("Aspirin", 8.99, 1, "Medication", false),
		item("Dish soap", 5.99, 1, "Cleaning", true),
		item("Bread", 3.49, 1, "Food", false),
	}

	s := Summarize(items, ontario(t), nil)

	if s.ItemCount != 4 {
		t.Errorf("item count = %d, want 4", s.ItemCount)
	}
	if s.PurchasedCount != 2 {
		t.Errorf("purchased count = %d, want 2", s.PurchasedCount)
	}
	if !almostEqual(s.PercentPurchased, 50) {
		t.Errorf("percent = %v, want 50", s.PercentPurchased)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	items := []model.Item{
		item("Apples", 4.99, 2, "Food", true),
		item("Dish soap", 5.99, 2, "Cleaning", false),
	}
	budget := 25.00

	first := Summarize(items, ontario(t), &budget)
	second := Summarize(items, ontario(t), &budget)

	if first.Subtotal != second.Subtotal || first.TaxAmount != second.TaxAmount ||
		first.Total != second.Total || first.PurchasedCount != second.PurchasedCount ||
		first.ItemCount != second.ItemCount {
		t.Errorf("summaries differ across identical calls: %+v vs %+v", first, second)
	}
	if *first.BudgetVariance != *second.BudgetVariance {
		t.Errorf("variance differs: %v vs %v", *first.BudgetVariance, *second.BudgetVariance)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	items := []model.Item{
		item("Apples", 4.99, 2, "Food", false),
		item("Dish soap", 5.99, 2, "Cleaning", false),
		item("Shampoo", 8.49, 1, "Personal Care", true),
	}
	reversed := []model.Item{items[2], items[1], items[0]}

	a := Summarize(items, ontario(t), nil)
	b := Summarize(reversed, ontario(t), nil)

	if !almostEqual(a.Subtotal, b.Subtotal) || !almostEqual(a.TaxAmount, b.TaxAmount) || !almostEqual(a.Total, b.Total) {
		t.Errorf("order changed the totals: %+v vs %+v", a, b)
	}
	if a.PurchasedCount != b.PurchasedCount {
		t.Errorf("order changed purchased count: %d vs %d", a.PurchasedCount, b.PurchasedCount)
	}
}

func TestSummarizeQuebec(t *testing.T) {
	qc, err := tax.RateFor("QC")
	if err != nil {
		t.Fatalf("RateFor(QC): %v", err)
	}

	items := []model.Item{
		item("Dish soap", 10.00, 1, "Cleaning", false),
	}

	s := Summarize(items, qc, nil)
	if !almostEqual(s.TaxAmount, 1.4975) {
		t.Errorf("tax = %v, want 1.4975", s.TaxAmount)
	}
}
