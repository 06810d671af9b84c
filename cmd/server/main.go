package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/marketops/backoffice/internal/application/inventory"
	"github.com/marketops/backoffice/internal/infrastructure/cache"
	"github.com/marketops/backoffice/internal/infrastructure/config"
	"github.com/marketops/backoffice/internal/infrastructure/ecommerce"
	"github.com/marketops/backoffice/internal/infrastructure/logger"
	"github.com/marketops/backoffice/internal/infrastructure/telemetry"
	"github.com/marketops/backoffice/internal/interfaces/http/middleware"
	"github.com/marketops/backoffice/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Back-office Inventory API
//	@version		1.0
//	@description	Filtered, sorted and paginated stock levels over a throttled upstream.
//	@BasePath		/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logCfg := logger.FromAppConfig(cfg.App, cfg.Log)
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	// Telemetry providers. Each one is a no-op when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}

	// Rebuild the logger so every entry is also exported over OTLP
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	log, err := logger.New(logCfg, logger.WithCore(loggerProvider.ZapCore(level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	var profiler *telemetry.Profiler
	if cfg.Telemetry.ProfilingEnabled {
		profiler, err = telemetry.NewProfiler(
			telemetry.DefaultProfilerConfig(cfg.Telemetry.ProfilingServerAddress, serviceName),
			log,
		)
		if err != nil {
			log.Fatal("Failed to start profiler", zap.Error(err))
		}
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	var prom *telemetry.PrometheusMetrics
	if cfg.Telemetry.PrometheusEnabled {
		prom = telemetry.NewPrometheusMetrics()
	}

	// Upstream gate: shared store, throttle and cache
	store, err := cache.NewStoreFactory(cfg.Gate, cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create gate store", zap.Error(err))
	}
	defer store.Close()

	gateOpts := []cache.GateOption{cache.WithGateLogger(log.Named("gate"))}
	gateMetrics, err := telemetry.NewGateMetrics(meterProvider.Meter("backoffice.gate"), prom, log)
	if err != nil {
		log.Warn("Failed to create gate metrics", zap.Error(err))
	} else {
		gateOpts = append(gateOpts, cache.WithRecorder(gateMetrics))
	}
	gate := cache.NewGateFromConfig(cfg.Gate, store, gateOpts...)

	source, err := ecommerce.NewRecordSource(cfg.Upstream, log)
	if err != nil {
		log.Fatal("Failed to create inventory source", zap.Error(err))
	}
	if err := source.Validate(); err != nil {
		log.Warn("Inventory source is not fully configured; requests will report the missing settings",
			zap.Error(err))
	}

	queryService := inventoryapp.NewQueryService(source, gate,
		inventoryapp.WithLogger(log.Named("inventory")))

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
	}

	engine := router.NewEngine(router.Deps{
		Config:      cfg,
		Logger:      log,
		Inventory:   queryService,
		Cache:       gate,
		Provider:    queryService.SourceName(),
		Meters:      meterProvider,
		Prometheus:  prom,
		RateLimiter: rateLimiter,
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("provider", queryService.SourceName()),
			zap.Duration("min_interval", cfg.Gate.MinInterval),
			zap.Duration("cache_ttl", cfg.Gate.CacheTTL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("Failed to stop profiler", zap.Error(err))
		}
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down tracer provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
