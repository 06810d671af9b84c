package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/marketops/backoffice/internal/infrastructure/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.NotEmpty(t, cfg.TimeFormat)
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig()

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestFromAppConfig(t *testing.T) {
	t.Run("production defaults to json", func(t *testing.T) {
		cfg := FromAppConfig(config.AppConfig{Name: "backoffice", Env: "production"}, config.LogConfig{})

		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, map[string]string{"service": "backoffice", "env": "production"}, cfg.Fields)
	})

	t.Run("explicit settings win", func(t *testing.T) {
		cfg := FromAppConfig(config.AppConfig{Env: "development"}, config.LogConfig{
			Level:  "debug",
			Format: "json",
			Output: "stderr",
		})

		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"default config", DefaultConfig()},
		{"production config", ProductionConfig()},
		{"debug level", &Config{Level: "debug", Format: "console", Output: "stdout"}},
		{"stderr json", &Config{Level: "info", Format: "json", Output: "stderr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backoffice.log")
	cfg := &Config{
		Level:  "info",
		Format: "json",
		Output: path,
		Fields: map[string]string{"service": "backoffice", "env": ""},
	}

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Info("stock levels served", zap.Int("items", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "stock levels served", entry["msg"])
	assert.Equal(t, "backoffice", entry["service"])
	assert.Equal(t, float64(3), entry["items"])
	assert.NotContains(t, entry, "env")
}

func TestNew_UnwritableFileFails(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "out.log")})
	assert.Error(t, err)
}

func TestNew_WithCoreTees(t *testing.T) {
	observed, recorded := observer.New(zapcore.InfoLevel)

	logger, err := New(&Config{Level: "info", Format: "json", Output: "stderr"}, WithCore(observed), WithCore(nil))
	require.NoError(t, err)

	logger.Info("gate refreshed")

	entries := recorded.FilterMessage("gate refreshed").All()
	assert.Len(t, entries, 1)
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "staging"} {
		t.Run(env, func(t *testing.T) {
			logger, err := NewForEnvironment(env)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestCreateEncoder(t *testing.T) {
	assert.NotNil(t, createEncoder(&Config{Format: "console"}))
	assert.NotNil(t, createEncoder(&Config{Format: "json"}))
}

func TestCreateWriter(t *testing.T) {
	for _, output := range []string{"", "stdout", "STDOUT", "stderr"} {
		writer, err := createWriter(output)
		require.NoError(t, err)
		assert.NotNil(t, writer)
	}
}

func TestConsoleFormatIsNotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, err := New(&Config{Level: "info", Format: "console", Output: path})
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, Sync(logger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "hello"))
	assert.False(t, json.Valid(data))
}
