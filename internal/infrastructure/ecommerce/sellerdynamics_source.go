package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/marketops/backoffice/internal/domain/inventory"
)

// SellerDynamicsSource fetches stock levels from SellerDynamics page by page
type SellerDynamicsSource struct {
	config     *SellerDynamicsConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSellerDynamicsSource creates a source. Missing credentials do not fail
// construction; they are reported by Validate on every request.
func NewSellerDynamicsSource(config *SellerDynamicsConfig, logger *zap.Logger) *SellerDynamicsSource {
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SellerDynamicsSource{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// Name returns the provider name
func (s *SellerDynamicsSource) Name() string {
	return "sellerdynamics"
}

// Validate reports missing credentials
func (s *SellerDynamicsSource) Validate() error {
	return s.config.Validate()
}

// FetchRecords walks every page until the relay clears More. An error page
// stops the walk and is returned as an *inventory.UpstreamError carrying the
// records collected so far.
func (s *SellerDynamicsSource) FetchRecords(ctx context.Context) ([]inventory.RawRecord, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	records := make([]inventory.RawRecord, 0)
	for page := 1; page <= sellerDynamicsMaxPages; page++ {
		s.logger.Debug("Fetching SellerDynamics stock page", zap.Int("page", page))

		resp, err := s.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if resp.IsError {
			s.logger.Warn("SellerDynamics returned an error page",
				zap.Int("page", page),
				zap.Int("records", len(records)),
				zap.String("message", resp.ErrorMessage))
			return nil, &inventory.UpstreamError{
				Message: sellerDynamicsErrorMessage(resp.ErrorMessage),
				Records: records,
			}
		}

		records = append(records, resp.StockLevels...)
		if !resp.More {
			s.logger.Debug("SellerDynamics stock fetched",
				zap.Int("pages", page),
				zap.Int("records", len(records)))
			return records, nil
		}
	}

	return nil, fmt.Errorf("%w: more than %d pages", inventory.ErrSourceInvalidResponse, sellerDynamicsMaxPages)
}

func sellerDynamicsErrorMessage(msg string) string {
	if msg == "" {
		return "SellerDynamics API error"
	}
	return "SellerDynamics API error: " + msg
}

func (s *SellerDynamicsSource) fetchPage(ctx context.Context, page int) (*SellerDynamicsStockResponse, error) {
	payload, err := json.Marshal(SellerDynamicsStockRequest{
		EncryptedLogin: s.config.EncryptedLogin,
		RetailerID:     s.config.RetailerID,
		PageNumber:     page,
		PageSize:       s.config.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("sellerdynamics: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("sellerdynamics: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	_, body, err := doRequest(s.httpClient, req)
	if err != nil {
		return nil, err
	}

	var resp SellerDynamicsStockResponse
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", inventory.ErrSourceInvalidResponse, err)
	}
	return &resp, nil
}

var _ inventory.RecordSource = (*SellerDynamicsSource)(nil)
