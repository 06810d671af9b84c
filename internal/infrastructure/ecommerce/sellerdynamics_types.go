package ecommerce

import "github.com/marketops/backoffice/internal/domain/inventory"

// SellerDynamicsStockRequest is the body of a stock level page request
type SellerDynamicsStockRequest struct {
	EncryptedLogin string `json:"encryptedLogin"`
	RetailerID     string `json:"retailerId"`
	PageNumber     int    `json:"pageNumber"`
	PageSize       int    `json:"pageSize"`
}

// SellerDynamicsStockResponse is one page of stock levels. More is set while
// further pages remain.
type SellerDynamicsStockResponse struct {
	IsError      bool                  `json:"IsError"`
	ErrorMessage string                `json:"ErrorMessage,omitempty"`
	More         bool                  `json:"More"`
	StockLevels  []inventory.RawRecord `json:"StockLevels"`
}
