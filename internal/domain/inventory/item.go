package inventory

// RawRecord is a stock record as delivered by an upstream system. Keys use the
// upstream casing (SKU, ProductName, ...) and values may be strings, numbers,
// booleans or missing entirely.
type RawRecord map[string]any

// Upstream record keys. Lookups are case-sensitive.
const (
	KeySKU                = "SKU"
	KeyProductName        = "ProductName"
	KeyVendor             = "Vendor"
	KeyProductType        = "ProductType"
	KeyQuantity           = "Quantity"
	KeyQuantityAllocated  = "QuantityAllocated"
	KeySupplierStockLevel = "SupplierStockLevel"
	KeyPrice              = "Price"
	KeyCost               = "Cost"
	KeyLocation           = "Location"
	KeyIsActive           = "IsActive"
)

// DefaultLocation is assigned to records that carry no location.
const DefaultLocation = "Main Warehouse"

// InventoryItem is the canonical, fully populated form of a stock record.
// Every field is always present after normalization.
type InventoryItem struct {
	SKU                string  `json:"sku"`
	ProductName        string  `json:"productName"`
	Vendor             string  `json:"vendor"`
	ProductType        string  `json:"productType"`
	Quantity           int     `json:"quantity"`
	QuantityAllocated  int     `json:"quantityAllocated"`
	SupplierStockLevel int     `json:"supplierStockLevel"`
	Price              float64 `json:"price"`
	Cost               float64 `json:"cost"`
	Location           string  `json:"location"`
	IsActive           bool    `json:"isActive"`
}

// Record converts the item back into upstream form. Normalizing the result
// yields the same item.
func (i InventoryItem) Record() RawRecord {
	return RawRecord{
		KeySKU:                i.SKU,
		KeyProductName:        i.ProductName,
		KeyVendor:             i.Vendor,
		KeyProductType:        i.ProductType,
		KeyQuantity:           i.Quantity,
		KeyQuantityAllocated:  i.QuantityAllocated,
		KeySupplierStockLevel: i.SupplierStockLevel,
		KeyPrice:              i.Price,
		KeyCost:               i.Cost,
		KeyLocation:           i.Location,
		KeyIsActive:           i.IsActive,
	}
}

// IsOutOfStock reports whether nothing is on hand.
func (i InventoryItem) IsOutOfStock() bool {
	return i.Quantity == 0
}

// IsLowStock reports whether the on-hand quantity is positive but at or below
// LowStockThreshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity > 0 && i.Quantity <= LowStockThreshold
}

// LowStockThreshold is the inclusive upper bound for low stock.
const LowStockThreshold = 10
