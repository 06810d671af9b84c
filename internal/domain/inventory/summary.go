package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TopVendorLimit caps Summary.TopVendors.
const TopVendorLimit = 5

// VendorValue is the stock held for one vendor.
type VendorValue struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// Summary holds headline stock metrics for a dataset.
type Summary struct {
	TotalItems      int             `json:"totalItems"`
	LowStockItems   int             `json:"lowStockItems"`
	OutOfStockItems int             `json:"outOfStockItems"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	AveragePrice    decimal.Decimal `json:"averagePrice"`
	TopVendors      []VendorValue   `json:"topVendors"`
}

// Summarize computes stock metrics. Value is price times on-hand quantity;
// AveragePrice is TotalValue divided by the number of items, or zero.
func Summarize(items []InventoryItem) Summary {
	s := Summary{
		TotalItems:   len(items),
		TotalValue:   decimal.Zero,
		AveragePrice: decimal.Zero,
		TopVendors:   []VendorValue{},
	}
	if len(items) == 0 {
		return s
	}

	byVendor := make(map[string]*VendorValue)
	for _, item := range items {
		switch {
		case item.IsOutOfStock():
			s.OutOfStockItems++
		case item.IsLowStock():
			s.LowStockItems++
		}

		value := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		s.TotalValue = s.TotalValue.Add(value)

		if item.Vendor == "" {
			continue
		}
		vv, ok := byVendor[item.Vendor]
		if !ok {
			vv = &VendorValue{Name: item.Vendor, Value: decimal.Zero}
			byVendor[item.Vendor] = vv
		}
		vv.Count++
		vv.Value = vv.Value.Add(value)
	}

	s.AveragePrice = s.TotalValue.Div(decimal.NewFromInt(int64(len(items)))).Round(2)

	vendors := make([]VendorValue, 0, len(byVendor))
	for _, vv := range byVendor {
		vendors = append(vendors, *vv)
	}
	sort.Slice(vendors, func(i, j int) bool {
		if c := vendors[i].Value.Cmp(vendors[j].Value); c != 0 {
			return c > 0
		}
		return vendors[i].Name < vendors[j].Name
	})
	if len(vendors) > TopVendorLimit {
		vendors = vendors[:TopVendorLimit]
	}
	s.TopVendors = vendors
	return s
}
