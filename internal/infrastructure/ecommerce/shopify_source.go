package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marketops/backoffice/internal/domain/inventory"
)

// ShopifySource reads stock levels from the Shopify Admin REST API. Every
// product variant becomes one record.
type ShopifySource struct {
	config     *ShopifyConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewShopifySource creates a source. Missing credentials are reported by
// Validate on every request.
func NewShopifySource(config *ShopifyConfig, logger *zap.Logger) *ShopifySource {
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopifySource{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// Name returns the provider name
func (s *ShopifySource) Name() string {
	return "shopify"
}

// Validate reports missing credentials
func (s *ShopifySource) Validate() error {
	return s.config.Validate()
}

// FetchRecords follows the Link rel="next" cursor until the last page
func (s *ShopifySource) FetchRecords(ctx context.Context) ([]inventory.RawRecord, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	next := fmt.Sprintf("%s/admin/api/%s/products.json?limit=%d",
		s.config.GetBaseURL(), s.config.APIVersion, s.config.PageSize)

	records := make([]inventory.RawRecord, 0)
	for page := 1; next != ""; page++ {
		if page > shopifyMaxPages {
			return nil, fmt.Errorf("%w: more than %d pages", inventory.ErrSourceInvalidResponse, shopifyMaxPages)
		}
		s.logger.Debug("Fetching Shopify products page", zap.Int("page", page))

		products, link, err := s.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			records = append(records, productRecords(p)...)
		}
		next = nextPageURL(link)
	}

	s.logger.Debug("Shopify products fetched", zap.Int("records", len(records)))
	return records, nil
}

func (s *ShopifySource) fetchPage(ctx context.Context, pageURL string) ([]ShopifyProduct, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", s.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, body, err := doRequest(s.httpClient, req)
	if err != nil {
		return nil, "", err
	}

	var page ShopifyProductsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("%w: failed to parse response: %v", inventory.ErrSourceInvalidResponse, err)
	}
	return page.Products, resp.Header.Get("Link"), nil
}

// productRecords flattens a product into one record per variant
func productRecords(p ShopifyProduct) []inventory.RawRecord {
	records := make([]inventory.RawRecord, 0, len(p.Variants))
	for _, v := range p.Variants {
		sku := v.SKU
		if sku == "" {
			sku = strconv.FormatInt(v.ID, 10)
		}
		name := p.Title
		if v.Title != "" && v.Title != shopifyDefaultVariantTitle {
			name = p.Title + " - " + v.Title
		}
		records = append(records, inventory.RawRecord{
			inventory.KeySKU:         sku,
			inventory.KeyProductName: name,
			inventory.KeyVendor:      p.Vendor,
			inventory.KeyProductType: p.ProductType,
			inventory.KeyQuantity:    v.InventoryQuantity,
			inventory.KeyPrice:       v.Price,
			inventory.KeyIsActive:    p.Status == "active",
		})
	}
	return records
}

// nextPageURL extracts the rel="next" target from a Link header
func nextPageURL(link string) string {
	for part := range strings.SplitSeq(link, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		isNext := false
		for _, attr := range segments[1:] {
			if strings.TrimSpace(attr) == `rel="next"` {
				isNext = true
				break
			}
		}
		if !isNext {
			continue
		}
		target := strings.Trim(strings.TrimSpace(segments[0]), "<>")
		if _, err := url.Parse(target); err != nil {
			return ""
		}
		return target
	}
	return ""
}

var _ inventory.RecordSource = (*ShopifySource)(nil)
