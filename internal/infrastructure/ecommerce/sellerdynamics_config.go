package ecommerce

// SellerDynamicsConfig holds configuration for the SellerDynamics stock relay
type SellerDynamicsConfig struct {
	// Endpoint is the stock relay URL
	Endpoint string `env:"SELLERDYNAMICS_SOAP_ENDPOINT" validate:"required"`
	// EncryptedLogin is the account login issued by SellerDynamics
	EncryptedLogin string `env:"SELLERDYNAMICS_ENCRYPTED_LOGIN" validate:"required"`
	// RetailerID identifies the retailer account
	RetailerID string `env:"SELLERDYNAMICS_RETAILER_ID" validate:"required"`
	// PageSize is the number of stock levels requested per page
	PageSize int `validate:"-"`
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int `validate:"-"`
}

const (
	// DefaultSellerDynamicsPageSize matches the page size the relay serves fastest
	DefaultSellerDynamicsPageSize = 5000
	// sellerDynamicsMaxPages bounds the paging loop against a relay that never clears More
	sellerDynamicsMaxPages = 1000
)

// NewSellerDynamicsConfig creates a new configuration with defaults
func NewSellerDynamicsConfig(endpoint, encryptedLogin, retailerID string) *SellerDynamicsConfig {
	return &SellerDynamicsConfig{
		Endpoint:       endpoint,
		EncryptedLogin: encryptedLogin,
		RetailerID:     retailerID,
		PageSize:       DefaultSellerDynamicsPageSize,
		TimeoutSeconds: 30,
	}
}

// Validate reports missing credentials as a *inventory.ConfigError and
// fills defaults for the optional settings
func (c *SellerDynamicsConfig) Validate() error {
	if err := checkCredentials(c); err != nil {
		return err
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultSellerDynamicsPageSize
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
