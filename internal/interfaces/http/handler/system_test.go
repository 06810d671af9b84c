package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeCache struct {
	n   int
	err error
}

func (f fakeCache) Len(context.Context) (int, error) { return f.n, f.err }

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		cache      fakeCache
		wantStatus string
		wantError  bool
	}{
		{"healthy", fakeCache{n: 2}, "healthy", false},
		{"store unreachable", fakeCache{err: errors.New("dial tcp: connection refused")}, "degraded", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler(tt.cache, "sellerdynamics")
			r := gin.New()
			r.GET("/health", h.Health)

			w, body := serve(r, http.MethodGet, "/health")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, "sellerdynamics", body["provider"])
			assert.Equal(t, float64(tt.cache.n), body["cachedEntries"])
			assert.NotEmpty(t, body["uptime"])
			if tt.wantError {
				assert.Contains(t, body["error"], "connection refused")
			} else {
				assert.NotContains(t, body, "error")
			}
		})
	}
}
