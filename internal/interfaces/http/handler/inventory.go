package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/marketops/backoffice/internal/application/inventory"
	"github.com/marketops/backoffice/internal/domain/inventory"
	"github.com/marketops/backoffice/internal/infrastructure/telemetry"
	"github.com/marketops/backoffice/internal/interfaces/http/dto"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// InventoryService is what the inventory endpoints need from the application layer
type InventoryService interface {
	inventory.Provider
	GetSummary(ctx context.Context) (*inventory.Summary, error)
	RefreshCache(ctx context.Context) error
}

var _ InventoryService = (*inventoryapp.QueryService)(nil)

// InventoryHandler handles inventory-related API endpoints
type InventoryHandler struct {
	BaseHandler
	service InventoryService
	now     func() time.Time
}

// InventoryHandlerOption configures an InventoryHandler
type InventoryHandlerOption func(*InventoryHandler)

// WithNow sets the clock used for generatedAt timestamps
func WithNow(now func() time.Time) InventoryHandlerOption {
	return func(h *InventoryHandler) {
		h.now = now
	}
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service InventoryService, opts ...InventoryHandlerOption) *InventoryHandler {
	h := &InventoryHandler{
		service: service,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// List godoc
// @ID           listInventory
// @Summary      Query stock levels
// @Description  Filters, sorts and paginates the upstream inventory. Malformed parameters fall back to defaults.
// @Tags         inventory
// @Produce      json
// @Param        page         query  int     false  "Page number"  default(1)
// @Param        limit        query  int     false  "Page size (max 1000)"  default(50)
// @Param        search       query  string  false  "Case-insensitive match on SKU or product name"
// @Param        vendor       query  string  false  "Exact vendor"
// @Param        productType  query  string  false  "Exact product type"
// @Param        location     query  string  false  "Exact location"
// @Param        minQuantity  query  number  false  "Minimum quantity"
// @Param        maxQuantity  query  number  false  "Maximum quantity"
// @Param        minPrice     query  number  false  "Minimum price"
// @Param        maxPrice     query  number  false  "Maximum price"
// @Param        sortBy       query  string  false  "Sort field"
// @Param        sortOrder    query  string  false  "asc or desc"  default(asc)
// @Param        isActive     query  bool    false  "Active flag"
// @Success      200 {object} dto.InventoryResponse
// @Failure      405 {object} dto.ErrorResponse
// @Failure      500 {object} dto.InventoryErrorResponse
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	opts, applied := inventoryapp.SanitizeQuery(c.Request.URL.Query())
	telemetry.SetAttributes(trace.SpanFromContext(ctx), telemetry.SpanAttrFilters, applied)

	result, err := h.service.GetStockLevels(ctx, opts)
	if err != nil {
		h.requestLogger(c).Error("Failed to query inventory",
			zap.Strings("filters", applied),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInventoryErrorResponse(err.Error(), opts))
		return
	}
	if result.Error != "" {
		h.requestLogger(c).Warn("Inventory query resolved with error", zap.String("error", result.Error))
	}

	c.JSON(http.StatusOK, dto.NewInventoryResponse(result, applied))
}

// FilterStats godoc
// @ID           getInventoryFilterStats
// @Summary      Get filter statistics
// @Description  Distinct vendors, product types and locations plus quantity and price ranges over the full dataset
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.FilterStatsResponse
// @Failure      405 {object} dto.ErrorResponse
// @Failure      500 {object} dto.FilterStatsResponse
// @Router       /inventory/filter-stats [get]
func (h *InventoryHandler) FilterStats(c *gin.Context) {
	stats, err := h.service.GetFilterStats(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		var cfgErr *inventory.ConfigError
		if errors.As(err, &cfgErr) {
			status = http.StatusOK
			h.requestLogger(c).Warn("Filter stats unavailable", zap.Error(err))
		} else {
			h.requestLogger(c).Error("Failed to compute filter stats", zap.Error(err))
		}
		c.JSON(status, dto.NewFilterStatsErrorResponse(err.Error(), h.now()))
		return
	}

	c.JSON(http.StatusOK, dto.NewFilterStatsResponse(*stats, h.now()))
}

// Summary godoc
// @ID           getInventorySummary
// @Summary      Get inventory summary
// @Description  Stock and valuation metrics over the full dataset
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.SummaryResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /inventory/summary [get]
func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		h.requestLogger(c).Error("Failed to summarize inventory", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.NewSummaryResponse(*summary, h.now()))
}

// RefreshCache godoc
// @ID           refreshInventoryCache
// @Summary      Clear the inventory cache
// @Description  Drops memoized upstream responses. The upstream throttle still applies to the next fetch.
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.RefreshResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /inventory/cache/refresh [post]
func (h *InventoryHandler) RefreshCache(c *gin.Context) {
	if err := h.service.RefreshCache(c.Request.Context()); err != nil {
		h.requestLogger(c).Error("Failed to refresh inventory cache", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Message:     "Inventory cache cleared",
		RefreshedAt: h.now().UTC(),
	})
}
