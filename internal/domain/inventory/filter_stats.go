package inventory

import (
	"slices"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterStats describes the values present in a dataset, for populating
// filter controls.
type FilterStats struct {
	TotalProducts    int      `json:"totalProducts"`
	FilteredProducts int      `json:"filteredProducts"`
	Vendors          []string `json:"vendors"`
	ProductTypes     []string `json:"productTypes"`
	Locations        []string `json:"locations"`
	QuantityRange    Range    `json:"quantityRange"`
	PriceRange       Range    `json:"priceRange"`
}

// EmptyFilterStats is the result for a dataset with no items.
func EmptyFilterStats() FilterStats {
	return FilterStats{
		Vendors:      []string{},
		ProductTypes: []string{},
		Locations:    []string{},
	}
}

// ComputeFilterStats aggregates distinct values and numeric ranges over items.
// FilteredProducts equals TotalProducts since no filter is applied.
func ComputeFilterStats(items []InventoryItem) FilterStats {
	stats := EmptyFilterStats()
	if len(items) == 0 {
		return stats
	}

	stats.TotalProducts = len(items)
	stats.FilteredProducts = len(items)
	stats.QuantityRange = Range{Min: float64(items[0].Quantity), Max: float64(items[0].Quantity)}
	stats.PriceRange = Range{Min: items[0].Price, Max: items[0].Price}

	vendors := make([]string, 0, len(items))
	types := make([]string, 0, len(items))
	locations := make([]string, 0, len(items))

	for _, item := range items {
		vendors = appendNonEmpty(vendors, item.Vendor)
		types = appendNonEmpty(types, item.ProductType)
		locations = appendNonEmpty(locations, item.Location)

		q := float64(item.Quantity)
		stats.QuantityRange.Min = min(stats.QuantityRange.Min, q)
		stats.QuantityRange.Max = max(stats.QuantityRange.Max, q)
		stats.PriceRange.Min = min(stats.PriceRange.Min, item.Price)
		stats.PriceRange.Max = max(stats.PriceRange.Max, item.Price)
	}

	stats.Vendors = distinctSorted(vendors)
	stats.ProductTypes = distinctSorted(types)
	stats.Locations = distinctSorted(locations)
	return stats
}

func appendNonEmpty(dst []string, s string) []string {
	if s == "" {
		return dst
	}
	return append(dst, s)
}

func distinctSorted(values []string) []string {
	slices.Sort(values)
	return slices.Compact(values)
}
