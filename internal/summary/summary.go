// Package summary folds a list's item snapshots into order totals: subtotal,
// tax, grand total, purchase progress, and budget variance.
package summary

import (
	"github.com/jrfournier/carttally/internal/model"
	"github.com/jrfournier/carttally/internal/tax"
)

// Summary is the derived order total for one list. It is computed on demand
// and never persisted.
type Summary struct {
	Subtotal         float64  `json:"subtotal"`
	TaxAmount        float64  `json:"tax_amount"`
	Total            float64  `json:"total"`
	ItemCount        int      `json:"item_count"`
	PurchasedCount   int      `json:"purchased_count"`
	PercentPurchased float64  `json:"percent_purchased"`
	BudgetVariance   *float64 `json:"budget_variance"`
}

// Summarize computes the order summary for a set of items under a tax regime.
// It is a pure fold: no side effects, safe to call repeatedly on the same
// input, and correct regardless of item order. Budget is nil when no budget
// is set; a present zero budget still yields a variance.
func Summarize(items []model.Item, regime tax.Regime, budget *float64) Summary {
	var s Summary
	s.ItemCount = len(items)

	for _, item := range items {
		lineTotal := item.LineTotal()
		taxable := tax.IsTaxable(item.CategoryName())
		s.Subtotal += lineTotal
		s.TaxAmount += tax.Tax(lineTotal, taxable, regime)
		if item.Purchased {
			s.PurchasedCount++
		}
	}

	s.Total = s.Subtotal + s.TaxAmount

	// Progress is 0, not NaN, for an empty list.
	if s.ItemCount > 0 {
		s.PercentPurchased = float64(s.PurchasedCount) / float64(s.ItemCount) * 100
	}

	if budget != nil {
		variance := *budget - s.Total
		s.BudgetVariance = &variance
	}

	return s
}

// OverBudget reports whether the summary exceeds a set budget. It is false
// when no budget is set.
func (s Summary) OverBudget() bool {
	return s.BudgetVariance != nil && *s.BudgetVariance < 0
}
