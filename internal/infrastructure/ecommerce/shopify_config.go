package ecommerce

import "strings"

// Shopify defaults
const (
	DefaultShopifyAPIVersion = "2024-01"
	// DefaultShopifyPageSize is the largest page the Admin API serves
	DefaultShopifyPageSize = 250
	shopifyMaxPages        = 1000
)

// ShopifyConfig holds configuration for the Shopify Admin API
type ShopifyConfig struct {
	// ShopDomain is the myshopify.com domain of the store
	ShopDomain string `env:"SHOPIFY_SHOP_DOMAIN" validate:"required"`
	// AccessToken is the Admin API access token
	AccessToken string `env:"SHOPIFY_ACCESS_TOKEN" validate:"required"`
	// APIVersion is the Admin API version, e.g. 2024-01
	APIVersion string `validate:"-"`
	// PageSize is the number of products requested per page
	PageSize int `validate:"-"`
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int `validate:"-"`
	// BaseURL overrides https://{ShopDomain}; used in tests
	BaseURL string `validate:"-"`
}

// NewShopifyConfig creates a new configuration with defaults
func NewShopifyConfig(shopDomain, accessToken string) *ShopifyConfig {
	return &ShopifyConfig{
		ShopDomain:     shopDomain,
		AccessToken:    accessToken,
		APIVersion:     DefaultShopifyAPIVersion,
		PageSize:       DefaultShopifyPageSize,
		TimeoutSeconds: 30,
	}
}

// Validate reports missing credentials as a *inventory.ConfigError and
// fills defaults for the optional settings
func (c *ShopifyConfig) Validate() error {
	if err := checkCredentials(c); err != nil {
		return err
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultShopifyAPIVersion
	}
	if c.PageSize <= 0 || c.PageSize > DefaultShopifyPageSize {
		c.PageSize = DefaultShopifyPageSize
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// GetBaseURL returns the shop root URL
func (c *ShopifyConfig) GetBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	domain := strings.TrimPrefix(strings.TrimPrefix(c.ShopDomain, "https://"), "http://")
	return "https://" + strings.TrimRight(domain, "/")
}
