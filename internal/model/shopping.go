package model

import "time"

// Category groups items for display. Taxable here only drives UI grouping;
// the tax engine classifies by the fixed exempt-name set (see internal/tax).
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Taxable   bool      `json:"taxable"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// List is a shopping list. Budget is nil when no budget is set; a present
// zero is a legitimate zero-dollar budget.
type List struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Budget    *float64  `json:"budget"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is one product entry within a list. Category is a denormalized
// name snapshot so items survive category deletion; nil means uncategorized.
type Item struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"list_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Category  *string   `json:"category"`
	Purchased bool      `json:"purchased"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryName returns the category snapshot or "" when uncategorized.
func (i Item) CategoryName() string {
	if i.Category == nil {
		return ""
	}
	return *i.Category
}

// LineTotal is the item's pre-tax extended price.
func (i Item) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
