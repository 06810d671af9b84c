package inventory

// Paging bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 1000
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortField identifies an InventoryItem field that may be sorted on.
type SortField string

const (
	SortBySKU                SortField = "sku"
	SortByProductName        SortField = "productName"
	SortByVendor             SortField = "vendor"
	SortByProductType        SortField = "productType"
	SortByQuantity           SortField = "quantity"
	SortByQuantityAllocated  SortField = "quantityAllocated"
	SortBySupplierStockLevel SortField = "supplierStockLevel"
	SortByPrice              SortField = "price"
	SortByCost               SortField = "cost"
	SortByLocation           SortField = "location"
	SortByIsActive           SortField = "isActive"
)

// sortFields maps every accepted sortBy value to its canonical field. Both the
// canonical names and the upstream record keys are accepted.
var sortFields = map[string]SortField{
	string(SortBySKU):                SortBySKU,
	string(SortByProductName):        SortByProductName,
	string(SortByVendor):             SortByVendor,
	string(SortByProductType):        SortByProductType,
	string(SortByQuantity):           SortByQuantity,
	string(SortByQuantityAllocated):  SortByQuantityAllocated,
	string(SortBySupplierStockLevel): SortBySupplierStockLevel,
	string(SortByPrice):              SortByPrice,
	string(SortByCost):               SortByCost,
	string(SortByLocation):           SortByLocation,
	string(SortByIsActive):           SortByIsActive,
	KeySKU:                           SortBySKU,
	KeyProductName:                   SortByProductName,
	KeyVendor:                        SortByVendor,
	KeyProductType:                   SortByProductType,
	KeyQuantity:                      SortByQuantity,
	KeyQuantityAllocated:             SortByQuantityAllocated,
	KeySupplierStockLevel:            SortBySupplierStockLevel,
	KeyPrice:                         SortByPrice,
	KeyCost:                          SortByCost,
	KeyLocation:                      SortByLocation,
	KeyIsActive:                      SortByIsActive,
}

// LookupSortField resolves a sortBy value. Matching is exact.
func LookupSortField(name string) (SortField, bool) {
	f, ok := sortFields[name]
	return f, ok
}

// QueryOptions is the sanitized form of an inventory query. Optional fields
// are nil when the caller did not supply a usable value.
type QueryOptions struct {
	Page        int       `json:"page"`
	Limit       int       `json:"limit"`
	Offset      *int      `json:"offset,omitempty"`
	Search      *string   `json:"search,omitempty"`
	Vendor      *string   `json:"vendor,omitempty"`
	ProductType *string   `json:"productType,omitempty"`
	Location    *string   `json:"location,omitempty"`
	MinQuantity *float64  `json:"minQuantity,omitempty"`
	MaxQuantity *float64  `json:"maxQuantity,omitempty"`
	MinPrice    *float64  `json:"minPrice,omitempty"`
	MaxPrice    *float64  `json:"maxPrice,omitempty"`
	SortBy      *string   `json:"sortBy,omitempty"`
	SortOrder   SortOrder `json:"sortOrder"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

// DefaultQueryOptions returns options that select the first page with no
// filters applied.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortOrder: SortAsc,
	}
}
