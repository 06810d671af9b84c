package ecommerce

import (
	"context"

	"github.com/marketops/backoffice/internal/domain/inventory"
)

// MockSource serves a fixed catalog for local development and demos. It needs
// no credentials and never fails.
type MockSource struct {
	records []inventory.RawRecord
}

// NewMockSource creates a source serving the built-in demo catalog
func NewMockSource() *MockSource {
	return &MockSource{records: mockCatalog()}
}

// NewMockSourceWithRecords creates a source serving records
func NewMockSourceWithRecords(records []inventory.RawRecord) *MockSource {
	return &MockSource{records: records}
}

// Name returns the provider name
func (s *MockSource) Name() string {
	return "mock"
}

// Validate always succeeds
func (s *MockSource) Validate() error {
	return nil
}

// FetchRecords returns a copy of the catalog
func (s *MockSource) FetchRecords(ctx context.Context) ([]inventory.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]inventory.RawRecord, len(s.records))
	for i, r := range s.records {
		clone := make(inventory.RawRecord, len(r))
		for k, v := range r {
			clone[k] = v
		}
		out[i] = clone
	}
	return out, nil
}

// mockCatalog mixes value shapes the real upstreams produce: numeric strings,
// missing optional fields and inactive listings.
func mockCatalog() []inventory.RawRecord {
	return []inventory.RawRecord{
		{"SKU": "WIDGET-001", "ProductName": "Blue Widget", "Vendor": "Widget Co", "ProductType": "Widgets", "Quantity": 120, "QuantityAllocated": 15, "SupplierStockLevel": 400, "Price": 19.99, "Cost": 8.5, "Location": "Main Warehouse", "IsActive": true},
		{"SKU": "WIDGET-002", "ProductName": "Red Widget", "Vendor": "Widget Co", "ProductType": "Widgets", "Quantity": 0, "QuantityAllocated": 0, "SupplierStockLevel": 250, "Price": "21.50", "Cost": "9.10", "Location": "Main Warehouse", "IsActive": true},
		{"SKU": "WIDGET-003", "ProductName": "Widget Mounting Kit", "Vendor": "Widget Co", "ProductType": "Accessories", "Quantity": 8, "QuantityAllocated": 2, "Price": 6.75, "Cost": 2.2, "Location": "Annex", "IsActive": true},
		{"SKU": "GADGET-001", "ProductName": "Pocket Gadget", "Vendor": "Gadget Inc", "ProductType": "Gadgets", "Quantity": 42, "QuantityAllocated": 5, "SupplierStockLevel": 60, "Price": 49.0, "Cost": 31.0, "Location": "Main Warehouse", "IsActive": true},
		{"SKU": "GADGET-002", "ProductName": "Desk Gadget Pro", "Vendor": "Gadget Inc", "ProductType": "Gadgets", "Quantity": "3", "QuantityAllocated": "1", "SupplierStockLevel": "0", "Price": "129.00", "Cost": "88.40", "Location": "Annex", "IsActive": "true"},
		{"SKU": "GADGET-003", "ProductName": "Legacy Gadget", "Vendor": "Gadget Inc", "ProductType": "Gadgets", "Quantity": 0, "Price": 15.0, "Cost": 12.0, "IsActive": false},
		{"SKU": "TOOL-001", "ProductName": "Precision Screwdriver Set", "Vendor": "Toolsmith", "ProductType": "Tools", "Quantity": 65, "QuantityAllocated": 10, "SupplierStockLevel": 500, "Price": 24.95, "Cost": 11.0, "Location": "Main Warehouse", "IsActive": true},
		{"SKU": "TOOL-002", "ProductName": "Torque Wrench", "Vendor": "Toolsmith", "ProductType": "Tools", "Quantity": 4, "QuantityAllocated": 4, "SupplierStockLevel": 12, "Price": 89.5, "Cost": 54.0, "Location": "Annex", "IsActive": true},
		{"SKU": "TOOL-003", "ProductName": "Bench Vise", "Vendor": "Toolsmith", "ProductType": "Tools", "Quantity": 17, "Price": 139.0, "Cost": 92.0, "Location": "Overflow", "IsActive": true},
		{"SKU": "CABLE-001", "ProductName": "USB-C Cable 2m", "Vendor": "Cable Works", "ProductType": "Cables", "Quantity": 860, "QuantityAllocated": 120, "SupplierStockLevel": 5000, "Price": 7.99, "Cost": 1.35, "Location": "Main Warehouse", "IsActive": true},
		{"SKU": "CABLE-002", "ProductName": "HDMI Cable 1m", "Vendor": "Cable Works", "ProductType": "Cables", "Quantity": 2, "QuantityAllocated": 0, "SupplierStockLevel": 0, "Price": 5.49, "Cost": 0.9, "Location": "Overflow", "IsActive": true},
		{"SKU": "SAMPLE-001", "ProductName": "Trade Show Sample", "Quantity": 1, "Price": 0, "IsActive": false},
	}
}

var _ inventory.RecordSource = (*MockSource)(nil)
