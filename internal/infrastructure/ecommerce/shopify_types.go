package ecommerce

// ShopifyProductsResponse is one page of the products endpoint
type ShopifyProductsResponse struct {
	Products []ShopifyProduct `json:"products"`
}

// ShopifyProduct is the subset of a Shopify product the inventory view reads
type ShopifyProduct struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Status      string           `json:"status"`
	Variants    []ShopifyVariant `json:"variants"`
}

// ShopifyVariant is a sellable variant of a product
type ShopifyVariant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	SKU               string `json:"sku"`
	Price             string `json:"price"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

// shopifyDefaultVariantTitle is the title Shopify gives the only variant of a
// product without options
const shopifyDefaultVariantTitle = "Default Title"
