package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketops/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// CacheInspector reports how many upstream responses are memoized
type CacheInspector interface {
	Len(ctx context.Context) (int, error)
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	cache     CacheInspector
	provider  string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(cache CacheInspector, provider string) *SystemHandler {
	return &SystemHandler{
		cache:     cache,
		provider:  provider,
		startTime: time.Now(),
	}
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Liveness with the configured provider and the number of cached upstream responses
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:   "healthy",
		Provider: h.provider,
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
	}

	n, err := h.cache.Len(c.Request.Context())
	if err != nil {
		h.requestLogger(c).Warn("Cache store unreachable", zap.Error(err))
		resp.Status = "degraded"
		resp.Error = err.Error()
	}
	resp.CachedEntries = n

	c.JSON(http.StatusOK, resp)
}
