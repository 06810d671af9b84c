package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Upstream providers
const (
	ProviderMock           = "mock"
	ProviderSellerDynamics = "sellerdynamics"
	ProviderShopify        = "shopify"
)

// Gate stores
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Gate      GateConfig
	Upstream  UpstreamConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// GateConfig holds the upstream throttle and cache settings
type GateConfig struct {
	MinInterval   time.Duration // Minimum interval between upstream calls
	CacheTTL      time.Duration // How long an upstream response stays fresh
	Store         string        // memory or redis
	RequireRedis  bool          // Fail startup instead of falling back to memory
	RequestBudget time.Duration // Upper bound a request may spend waiting on the gate
}

// UpstreamConfig selects and configures the inventory record source
type UpstreamConfig struct {
	Provider       string
	TimeoutSeconds int
	PageSize       int
	SellerDynamics SellerDynamicsConfig
	Shopify        ShopifyConfig
}

// SellerDynamicsConfig holds SellerDynamics credentials. They are read from
// the unprefixed SELLERDYNAMICS_* variables.
type SellerDynamicsConfig struct {
	Endpoint       string
	EncryptedLogin string
	RetailerID     string
}

// ShopifyConfig holds Shopify Admin API credentials, read from SHOPIFY_*.
type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// TelemetryConfig holds OpenTelemetry and profiling configuration
type TelemetryConfig struct {
	Enabled                bool    // Whether to enable tracing
	CollectorEndpoint      string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio          float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName            string  // Service name for traces
	Insecure               bool    // Use insecure (non-TLS) connection (development only)
	MetricsEnabled         bool
	MetricsExportInterval  time.Duration
	LogsEnabled            bool   // Bridge zap records to the OTLP log exporter
	PrometheusEnabled      bool   // Expose a Prometheus scrape endpoint
	PrometheusPath         string // Path of the scrape endpoint
	ProfilingEnabled       bool
	ProfilingServerAddress string // Pyroscope server address
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BACKOFFICE_ prefix (e.g., BACKOFFICE_GATE_CACHE_TTL)
// 2. config.toml
// 3. Built-in defaults
//
// A .env file in the working directory, when present, is loaded into the
// process environment first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Upstream credentials keep the names the dashboard deployment already uses
	_ = v.BindEnv("upstream.sellerdynamics.endpoint", "SELLERDYNAMICS_SOAP_ENDPOINT")
	_ = v.BindEnv("upstream.sellerdynamics.encrypted_login", "SELLERDYNAMICS_ENCRYPTED_LOGIN")
	_ = v.BindEnv("upstream.sellerdynamics.retailer_id", "SELLERDYNAMICS_RETAILER_ID")
	_ = v.BindEnv("upstream.shopify.shop_domain", "SHOPIFY_SHOP_DOMAIN")
	_ = v.BindEnv("upstream.shopify.access_token", "SHOPIFY_ACCESS_TOKEN")

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("redis.host"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Gate: GateConfig{
			MinInterval:   v.GetDuration("gate.min_interval"),
			CacheTTL:      v.GetDuration("gate.cache_ttl"),
			Store:         v.GetString("gate.store"),
			RequireRedis:  v.GetBool("gate.require_redis"),
			RequestBudget: v.GetDuration("gate.request_budget"),
		},
		Upstream: UpstreamConfig{
			Provider:       v.GetString("upstream.provider"),
			TimeoutSeconds: v.GetInt("upstream.timeout_seconds"),
			PageSize:       v.GetInt("upstream.page_size"),
			SellerDynamics: SellerDynamicsConfig{
				Endpoint:       v.GetString("upstream.sellerdynamics.endpoint"),
				EncryptedLogin: v.GetString("upstream.sellerdynamics.encrypted_login"),
				RetailerID:     v.GetString("upstream.sellerdynamics.retailer_id"),
			},
			Shopify: ShopifyConfig{
				ShopDomain:  v.GetString("upstream.shopify.shop_domain"),
				AccessToken: v.GetString("upstream.shopify.access_token"),
				APIVersion:  v.GetString("upstream.shopify.api_version"),
			},
		},
		Telemetry: TelemetryConfig{
			Enabled:                v.GetBool("telemetry.enabled"),
			CollectorEndpoint:      v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:          v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:            v.GetString("telemetry.service_name"),
			Insecure:               v.GetBool("telemetry.insecure"),
			MetricsEnabled:         v.GetBool("telemetry.metrics_enabled"),
			MetricsExportInterval:  v.GetDuration("telemetry.metrics_export_interval"),
			LogsEnabled:            v.GetBool("telemetry.logs_enabled"),
			PrometheusEnabled:      v.GetBool("telemetry.prometheus_enabled"),
			PrometheusPath:         v.GetString("telemetry.prometheus_path"),
			ProfilingEnabled:       v.GetBool("telemetry.profiling_enabled"),
			ProfilingServerAddress: v.GetString("telemetry.profiling_server_address"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "backoffice"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	// Writes must outlast a throttled upstream call
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 2 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// NOTE: CORS origins have no default. An empty list allows no cross-origin requests.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "backoffice:gate:"
	}
	if cfg.Gate.MinInterval == 0 {
		cfg.Gate.MinInterval = 60 * time.Second
	}
	if cfg.Gate.CacheTTL == 0 {
		cfg.Gate.CacheTTL = 5 * time.Minute
	}
	if cfg.Gate.Store == "" {
		cfg.Gate.Store = StoreMemory
	}
	if cfg.Gate.RequestBudget == 0 {
		cfg.Gate.RequestBudget = 90 * time.Second
	}
	if cfg.Upstream.Provider == "" {
		cfg.Upstream.Provider = ProviderSellerDynamics
	}
	if cfg.Upstream.TimeoutSeconds == 0 {
		cfg.Upstream.TimeoutSeconds = 30
	}
	if cfg.Upstream.PageSize == 0 {
		cfg.Upstream.PageSize = 250
	}
	if cfg.Upstream.Shopify.APIVersion == "" {
		cfg.Upstream.Shopify.APIVersion = "2024-01"
	}
	// Telemetry defaults
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "backoffice"
	}
	if cfg.Telemetry.MetricsExportInterval == 0 {
		cfg.Telemetry.MetricsExportInterval = 60 * time.Second
	}
	if cfg.Telemetry.PrometheusPath == "" {
		cfg.Telemetry.PrometheusPath = "/metrics"
	}
	if cfg.Telemetry.ProfilingServerAddress == "" {
		cfg.Telemetry.ProfilingServerAddress = "http://localhost:4040"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	providers := []string{ProviderMock, ProviderSellerDynamics, ProviderShopify}
	if !slices.Contains(providers, c.Upstream.Provider) {
		return fmt.Errorf("upstream.provider must be one of %s, got %q",
			strings.Join(providers, ", "), c.Upstream.Provider)
	}
	if c.Gate.Store != StoreMemory && c.Gate.Store != StoreRedis {
		return fmt.Errorf("gate.store must be %q or %q, got %q", StoreMemory, StoreRedis, c.Gate.Store)
	}
	if c.Gate.MinInterval < 0 {
		return fmt.Errorf("gate.min_interval cannot be negative")
	}
	if c.Gate.CacheTTL < 0 {
		return fmt.Errorf("gate.cache_ttl cannot be negative")
	}
	if c.Upstream.TimeoutSeconds < 0 {
		return fmt.Errorf("upstream.timeout_seconds cannot be negative")
	}
	if c.Upstream.PageSize < 0 {
		return fmt.Errorf("upstream.page_size cannot be negative")
	}
	if c.HTTP.RateLimitRequests < 0 {
		return fmt.Errorf("http.rate_limit_requests cannot be negative")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		// CORS must not use wildcard with credentials
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Upstream.Provider == ProviderMock {
			return fmt.Errorf("upstream.provider cannot be %q in production", ProviderMock)
		}
	}

	// Validate telemetry configuration (all environments)
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// Addr returns the Redis address in host:port form
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
