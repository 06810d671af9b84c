package ecommerce

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/marketops/backoffice/internal/domain/inventory"
	"github.com/marketops/backoffice/internal/infrastructure/config"
)

// NewRecordSource builds the record source named by cfg.Provider. Missing
// credentials are not an error here; the source reports them per request.
func NewRecordSource(cfg config.UpstreamConfig, logger *zap.Logger) (inventory.RecordSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("provider", cfg.Provider))

	switch cfg.Provider {
	case config.ProviderSellerDynamics:
		sdCfg := NewSellerDynamicsConfig(
			cfg.SellerDynamics.Endpoint,
			cfg.SellerDynamics.EncryptedLogin,
			cfg.SellerDynamics.RetailerID,
		)
		if cfg.PageSize > 0 {
			sdCfg.PageSize = cfg.PageSize
		}
		if cfg.TimeoutSeconds > 0 {
			sdCfg.TimeoutSeconds = cfg.TimeoutSeconds
		}
		return NewSellerDynamicsSource(sdCfg, logger), nil

	case config.ProviderShopify:
		shopCfg := NewShopifyConfig(cfg.Shopify.ShopDomain, cfg.Shopify.AccessToken)
		if cfg.Shopify.APIVersion != "" {
			shopCfg.APIVersion = cfg.Shopify.APIVersion
		}
		if cfg.PageSize > 0 {
			shopCfg.PageSize = cfg.PageSize
		}
		if cfg.TimeoutSeconds > 0 {
			shopCfg.TimeoutSeconds = cfg.TimeoutSeconds
		}
		return NewShopifySource(shopCfg, logger), nil

	case config.ProviderMock:
		logger.Warn("Using mock inventory source; data is not live")
		return NewMockSource(), nil

	default:
		return nil, fmt.Errorf("%w: %q", inventory.ErrUnknownProvider, cfg.Provider)
	}
}
