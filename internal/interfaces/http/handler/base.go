package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketops/backoffice/internal/infrastructure/logger"
	"github.com/marketops/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// requestLogger returns the request-scoped logger set by the logging middleware
func (h *BaseHandler) requestLogger(c *gin.Context) *zap.Logger {
	return logger.GetGinLogger(c)
}

// Error sends a bare error body with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(message))
}

// MethodNotAllowed sends the 405 body used by every route of the API
func (h *BaseHandler) MethodNotAllowed(c *gin.Context) {
	status, body := dto.MethodNotAllowed()
	c.AbortWithStatusJSON(status, body)
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(dto.MsgNotFound))
}
