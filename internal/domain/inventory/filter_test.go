package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func catalog() []InventoryItem {
	return []InventoryItem{
		{SKU: "W-001", ProductName: "Blue Widget", Vendor: "Acme", ProductType: "Gadget", Quantity: 5, Price: 9.99, Location: "Main Warehouse", IsActive: true},
		{SKU: "G-002", ProductName: "Gear", Vendor: "Acme", ProductType: "Part", Quantity: 0, Price: 2.50, Location: "Annex", IsActive: false},
		{SKU: "WIDGET-9", ProductName: "Spare", Vendor: "Globex", ProductType: "Part", Quantity: 40, Price: 15.00, Location: "Main Warehouse", IsActive: true},
		{SKU: "S-004", ProductName: "Sprocket", Vendor: "Globex", ProductType: "Part", Quantity: 12, Price: 4.75, Location: "Annex", IsActive: true},
	}
}

func TestFilter(t *testing.T) {
	items := catalog()

	tests := []struct {
		name     string
		opts     QueryOptions
		wantSKUs []string
	}{
		{
			name:     "no predicates keeps everything",
			opts:     DefaultQueryOptions(),
			wantSKUs: []string{"W-001", "G-002", "WIDGET-9", "S-004"},
		},
		{
			name:     "search matches product name or sku case-insensitively",
			opts:     QueryOptions{Search: ptr("widget")},
			wantSKUs: []string{"W-001", "WIDGET-9"},
		},
		{
			name:     "vendor is exact and case-sensitive",
			opts:     QueryOptions{Vendor: ptr("acme")},
			wantSKUs: []string{},
		},
		{
			name:     "vendor exact match",
			opts:     QueryOptions{Vendor: ptr("Globex")},
			wantSKUs: []string{"WIDGET-9", "S-004"},
		},
		{
			name:     "product type and location",
			opts:     QueryOptions{ProductType: ptr("Part"), Location: ptr("Annex")},
			wantSKUs: []string{"G-002", "S-004"},
		},
		{
			name:     "quantity bounds are inclusive",
			opts:     QueryOptions{MinQuantity: ptr(5.0), MaxQuantity: ptr(12.0)},
			wantSKUs: []string{"W-001", "S-004"},
		},
		{
			name:     "price bounds are inclusive",
			opts:     QueryOptions{MinPrice: ptr(4.75), MaxPrice: ptr(9.99)},
			wantSKUs: []string{"W-001", "S-004"},
		},
		{
			name:     "is active false",
			opts:     QueryOptions{IsActive: ptr(false)},
			wantSKUs: []string{"G-002"},
		},
		{
			name:     "predicates combine with AND",
			opts:     QueryOptions{Search: ptr("widget"), Vendor: ptr("Globex"), IsActive: ptr(true)},
			wantSKUs: []string{"WIDGET-9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.opts)
			skus := make([]string, 0, len(got))
			for _, it := range got {
				skus = append(skus, it.SKU)
			}
			assert.Equal(t, tt.wantSKUs, skus)
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	opts := QueryOptions{Search: ptr("w"), MinPrice: ptr(1.0)}

	once := Filter(catalog(), opts)
	twice := Filter(once, opts)

	assert.Equal(t, once, twice)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := catalog()
	before := append([]InventoryItem(nil), items...)

	_ = Filter(items, QueryOptions{Vendor: ptr("Acme")})

	assert.Equal(t, before, items)
}
