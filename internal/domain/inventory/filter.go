package inventory

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the items matching every predicate set in opts. The input is
// not modified and relative order is preserved.
func Filter(items []InventoryItem, opts QueryOptions) []InventoryItem {
	var needle string
	if opts.Search != nil {
		needle = fold(*opts.Search)
	}

	out := make([]InventoryItem, 0, len(items))
	for _, item := range items {
		if opts.Search != nil &&
			!strings.Contains(fold(item.ProductName), needle) &&
			!strings.Contains(fold(item.SKU), needle) {
			continue
		}
		if opts.Vendor != nil && item.Vendor != *opts.Vendor {
			continue
		}
		if opts.ProductType != nil && item.ProductType != *opts.ProductType {
			continue
		}
		if opts.Location != nil && item.Location != *opts.Location {
			continue
		}
		q := float64(item.Quantity)
		if opts.MinQuantity != nil && q < *opts.MinQuantity {
			continue
		}
		if opts.MaxQuantity != nil && q > *opts.MaxQuantity {
			continue
		}
		if opts.MinPrice != nil && item.Price < *opts.MinPrice {
			continue
		}
		if opts.MaxPrice != nil && item.Price > *opts.MaxPrice {
			continue
		}
		if opts.IsActive != nil && item.IsActive != *opts.IsActive {
			continue
		}
		out = append(out, item)
	}
	return out
}

// fold maps s to its case-folded form for case-insensitive matching.
// cases.Caser is stateful, so a fresh one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
