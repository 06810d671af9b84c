package inventory

import (
	"cmp"
	"slices"
)

// Sort returns a copy of items ordered by field. Equal keys keep their input
// order in both directions. An unknown field returns the copy unchanged.
func Sort(items []InventoryItem, field SortField, order SortOrder) []InventoryItem {
	out := slices.Clone(items)
	if out == nil {
		out = []InventoryItem{}
	}

	compare := comparator(field)
	if compare == nil {
		return out
	}
	if order == SortDesc {
		asc := compare
		compare = func(a, b InventoryItem) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

// ApplySort sorts items according to opts.SortBy and opts.SortOrder.
func ApplySort(items []InventoryItem, opts QueryOptions) []InventoryItem {
	if opts.SortBy == nil {
		return slices.Clone(items)
	}
	field, ok := LookupSortField(*opts.SortBy)
	if !ok {
		return slices.Clone(items)
	}
	return Sort(items, field, opts.SortOrder)
}

func comparator(field SortField) func(a, b InventoryItem) int {
	switch field {
	case SortBySKU:
		return func(a, b InventoryItem) int { return cmp.Compare(a.SKU, b.SKU) }
	case SortByProductName:
		return func(a, b InventoryItem) int { return cmp.Compare(a.ProductName, b.ProductName) }
	case SortByVendor:
		return func(a, b InventoryItem) int { return cmp.Compare(a.Vendor, b.Vendor) }
	case SortByProductType:
		return func(a, b InventoryItem) int { return cmp.Compare(a.ProductType, b.ProductType) }
	case SortByLocation:
		return func(a, b InventoryItem) int { return cmp.Compare(a.Location, b.Location) }
	case SortByQuantity:
		return func(a, b InventoryItem) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case SortByQuantityAllocated:
		return func(a, b InventoryItem) int { return cmp.Compare(a.QuantityAllocated, b.QuantityAllocated) }
	case SortBySupplierStockLevel:
		return func(a, b InventoryItem) int { return cmp.Compare(a.SupplierStockLevel, b.SupplierStockLevel) }
	case SortByPrice:
		return func(a, b InventoryItem) int { return cmp.Compare(a.Price, b.Price) }
	case SortByCost:
		return func(a, b InventoryItem) int { return cmp.Compare(a.Cost, b.Cost) }
	case SortByIsActive:
		return func(a, b InventoryItem) int { return compareBool(a.IsActive, b.IsActive) }
	default:
		return nil
	}
}

// compareBool orders false before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
