package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Record source errors
var (
	ErrSourceUnavailable     = errors.New("inventory: upstream temporarily unavailable")
	ErrSourceRequestFailed   = errors.New("inventory: upstream request failed")
	ErrSourceInvalidResponse = errors.New("inventory: invalid upstream response")
	ErrSourceAuthFailed      = errors.New("inventory: upstream authentication failed")
	ErrUnknownProvider       = errors.New("inventory: unknown provider")
)

// ConfigError reports upstream credentials that are not configured. It is
// surfaced to callers as a resolved error rather than a failure.
type ConfigError struct {
	Missing []string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("Missing environment variables: %s", strings.Join(e.Missing, ", "))
}

// UpstreamError is a failure the upstream answered with instead of a
// transport or protocol error. Records holds what was collected before it,
// and callers serve them with Message attached.
type UpstreamError struct {
	Message string
	Records []RawRecord
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return e.Message
}

// RecordSource fetches the complete raw record list from an upstream system.
type RecordSource interface {
	// Name identifies the upstream, e.g. "sellerdynamics".
	Name() string
	// Validate reports missing configuration as a *ConfigError.
	Validate() error
	// FetchRecords returns every record the upstream holds.
	FetchRecords(ctx context.Context) ([]RawRecord, error)
}

// StockLevelsResult is the provider answer to a stock level query. Error is
// set when the provider resolved the request with a failure message.
type StockLevelsResult struct {
	PaginatedResult[InventoryItem]
	QueryOptions QueryOptions `json:"queryOptions"`
	Error        string       `json:"error,omitempty"`
}

// Provider is the contract between the HTTP layer and whatever serves
// inventory data.
type Provider interface {
	GetStockLevels(ctx context.Context, opts QueryOptions) (*StockLevelsResult, error)
	GetFilterStats(ctx context.Context) (*FilterStats, error)
}
