package tax

import "sort"

// exemptNames are category names treated as tax-exempt by exact,
// case-sensitive match. This fixed set drives the actual tax math; the
// user-editable Category.Taxable flag only affects display grouping.
var exemptNames = map[string]struct{}{
	"Food":                    {},
	"Medication":              {},
	"Basic Groceries":         {},
	"Prescription Medication": {},
}

// IsTaxable reports whether an item with the given category-name snapshot is
// subject to sales tax. Uncategorized items (empty name) default to taxable.
func IsTaxable(categoryName string) bool {
	if categoryName == "" {
		return true
	}
	_, exempt := exemptNames[categoryName]
	return !exempt
}

// ExemptNames returns the fixed exemption set, for display annotation.
func ExemptNames() []string {
	names := make([]string, 0, len(exemptNames))
	for name := range exemptNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
