package router

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marketops/backoffice/internal/infrastructure/config"
	"github.com/marketops/backoffice/internal/infrastructure/logger"
	"github.com/marketops/backoffice/internal/infrastructure/telemetry"
	"github.com/marketops/backoffice/internal/interfaces/http/handler"
	"github.com/marketops/backoffice/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const healthPath = "/health"

// Deps are the collaborators the HTTP engine is assembled from. Telemetry
// fields and the rate limiter may be nil.
type Deps struct {
	Config      *config.Config
	Logger      *zap.Logger
	Inventory   handler.InventoryService
	Cache       handler.CacheInspector
	Provider    string
	Meters      *telemetry.MeterProvider
	Prometheus  *telemetry.PrometheusMetrics
	RateLimiter *middleware.RateLimiter
}

// NewEngine builds the gin engine with the full middleware stack, the
// inventory API under /api/v1 and the operational endpoints.
func NewEngine(deps Deps) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	metricsPath := cfg.Telemetry.PrometheusPath
	quietPaths := []string{healthPath, metricsPath}

	// Middleware order:
	// 1. Recovery and RequestID wrap everything, so panics carry the ID
	// 2. Logger binds the request-scoped logger
	// 3. Secure, CORS, BodyLimit and RateLimit reject early
	// 4. Tracing opens the server span, then enrichment and status marking
	// 5. Metrics and profiling labels observe the handler
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log, quietPaths...))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled && deps.RateLimiter != nil {
		engine.Use(middleware.RateLimit(deps.RateLimiter))
	}
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   quietPaths,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: deps.Meters,
		Prometheus:    deps.Prometheus,
		Enabled:       true,
		Logger:        log,
	}))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   cfg.Telemetry.ProfilingEnabled,
		SkipPaths: quietPaths,
	}))

	base := &handler.BaseHandler{}
	engine.NoRoute(base.NotFound)
	engine.NoMethod(methodNotAllowed(engine, base))

	system := handler.NewSystemHandler(deps.Cache, deps.Provider)
	engine.GET(healthPath, system.Health)
	if cfg.Telemetry.PrometheusEnabled && deps.Prometheus != nil {
		engine.GET(metricsPath, gin.WrapH(deps.Prometheus.Handler()))
	}

	inventoryHandler := handler.NewInventoryHandler(deps.Inventory)
	inventory := NewDomainGroup("inventory", "/inventory").
		Use(middleware.Timeout(cfg.Gate.RequestBudget)).
		GET("", inventoryHandler.List).
		GET("/filter-stats", inventoryHandler.FilterStats).
		GET("/summary", inventoryHandler.Summary)
	inventory.Group("cache", "/cache").
		POST("/refresh", inventoryHandler.RefreshCache)

	NewRouter(engine).Register(inventory).Setup()

	return engine
}

// methodNotAllowed answers with 405 and an Allow header listing the methods
// registered for the requested path.
func methodNotAllowed(engine *gin.Engine, base *handler.BaseHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowed := allowedMethods(engine.Routes(), c.Request.URL.Path); len(allowed) > 0 {
			c.Header("Allow", strings.Join(allowed, ", "))
		}
		base.MethodNotAllowed(c)
	}
}

func allowedMethods(routes gin.RoutesInfo, path string) []string {
	var methods []string
	for _, route := range routes {
		if route.Path == path && !slices.Contains(methods, route.Method) {
			methods = append(methods, route.Method)
		}
	}
	slices.Sort(methods)
	return methods
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}
