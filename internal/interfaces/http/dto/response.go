package dto

import (
	"time"

	"github.com/marketops/backoffice/internal/domain/inventory"
)

// ProcessingStats describes how the query was interpreted
type ProcessingStats struct {
	AppliedFilters []string            `json:"appliedFilters"`
	SortBy         *string             `json:"sortBy,omitempty"`
	SortOrder      inventory.SortOrder `json:"sortOrder"`
}

// NewProcessingStats builds processing stats from sanitized options
func NewProcessingStats(opts inventory.QueryOptions, applied []string) ProcessingStats {
	if applied == nil {
		applied = []string{}
	}
	return ProcessingStats{
		AppliedFilters: applied,
		SortBy:         opts.SortBy,
		SortOrder:      opts.SortOrder,
	}
}

// InventoryResponse is a page of inventory items
// @Description Paginated inventory page with the options that produced it
type InventoryResponse struct {
	inventory.PaginatedResult[inventory.InventoryItem]
	QueryOptions    inventory.QueryOptions `json:"queryOptions"`
	ProcessingStats ProcessingStats        `json:"processingStats"`
	Error           string                 `json:"error,omitempty"`
}

// NewInventoryResponse wraps a provider result
func NewInventoryResponse(result *inventory.StockLevelsResult, applied []string) InventoryResponse {
	page := result.PaginatedResult
	if page.Data == nil {
		page.Data = []inventory.InventoryItem{}
	}
	return InventoryResponse{
		PaginatedResult: page,
		QueryOptions:    result.QueryOptions,
		ProcessingStats: NewProcessingStats(result.QueryOptions, applied),
		Error:           result.Error,
	}
}

// InventoryErrorResponse is returned when the provider fails outright
// @Description Inventory failure with an empty data set
type InventoryErrorResponse struct {
	Error        string                    `json:"error" example:"upstream request failed"`
	Data         []inventory.InventoryItem `json:"data"`
	QueryOptions inventory.QueryOptions    `json:"queryOptions"`
}

// NewInventoryErrorResponse creates an inventory failure body
func NewInventoryErrorResponse(message string, opts inventory.QueryOptions) InventoryErrorResponse {
	return InventoryErrorResponse{
		Error:        message,
		Data:         []inventory.InventoryItem{},
		QueryOptions: opts,
	}
}

// FilterStatsResponse carries filter control values for the whole dataset
// @Description Distinct values and numeric ranges for the filter controls
type FilterStatsResponse struct {
	inventory.FilterStats
	GeneratedAt time.Time `json:"generatedAt" example:"2024-01-15T10:30:00Z"`
	Error       string    `json:"error,omitempty"`
}

// NewFilterStatsResponse wraps computed stats
func NewFilterStatsResponse(stats inventory.FilterStats, generatedAt time.Time) FilterStatsResponse {
	return FilterStatsResponse{FilterStats: stats, GeneratedAt: generatedAt.UTC()}
}

// NewFilterStatsErrorResponse returns all-empty stats with the error message
func NewFilterStatsErrorResponse(message string, generatedAt time.Time) FilterStatsResponse {
	return FilterStatsResponse{
		FilterStats: inventory.EmptyFilterStats(),
		GeneratedAt: generatedAt.UTC(),
		Error:       message,
	}
}

// SummaryResponse carries stock and valuation metrics
// @Description Stock counts, valuation and top vendors
type SummaryResponse struct {
	inventory.Summary
	GeneratedAt time.Time `json:"generatedAt" example:"2024-01-15T10:30:00Z"`
}

// NewSummaryResponse wraps a computed summary
func NewSummaryResponse(summary inventory.Summary, generatedAt time.Time) SummaryResponse {
	return SummaryResponse{Summary: summary, GeneratedAt: generatedAt.UTC()}
}

// RefreshResponse acknowledges a cache invalidation
type RefreshResponse struct {
	Message     string    `json:"message" example:"Inventory cache cleared"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// HealthResponse reports liveness and gate state
type HealthResponse struct {
	Status        string `json:"status" example:"healthy"`
	Provider      string `json:"provider" example:"sellerdynamics"`
	CachedEntries int    `json:"cachedEntries" example:"1"`
	Uptime        string `json:"uptime" example:"1h30m45s"`
	Error         string `json:"error,omitempty"`
}
