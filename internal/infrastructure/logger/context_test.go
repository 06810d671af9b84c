package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func spanContext(t *testing.T) trace.SpanContext {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("b7ad6b7169203331")
	require.NoError(t, err)
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := WithContext(context.Background(), zap.New(core))

		FromContext(ctx).Info("attached")
		assert.Equal(t, 1, recorded.Len())
	})

	t.Run("falls back to no-op", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, logger := WithRequestID(context.Background(), zap.New(core), "req-123")
	logger.Info("query served")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "req-123", recorded.All()[0].ContextMap()["request_id"])

	FromContext(ctx).Info("again")
	assert.Equal(t, "req-123", recorded.All()[1].ContextMap()["request_id"])
}

func TestProviderContext(t *testing.T) {
	ctx := WithProvider(context.Background(), "shopify")

	assert.Equal(t, "shopify", GetProvider(ctx))
	assert.Empty(t, GetProvider(context.Background()))
}

func TestTraceCorrelation(t *testing.T) {
	sc := spanContext(t)
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", GetTraceID(ctx))
	assert.Empty(t, GetTraceID(context.Background()))

	core, recorded := observer.New(zapcore.InfoLevel)
	WithTraceContext(ctx, zap.New(core)).Info("traced")

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", fields["trace_id"])
	assert.Equal(t, "b7ad6b7169203331", fields["span_id"])
}

func TestWithTraceContext_NoSpanReturnsSameLogger(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, WithTraceContext(context.Background(), base))
}

func TestContextLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := trace.ContextWithSpanContext(context.Background(), spanContext(t))
	ctx = WithContext(ctx, zap.New(core))
	ctx = WithProvider(ctx, "sellerdynamics")

	cl := L(ctx).With(zap.String("component", "gate"))
	cl.Debug("debug")
	cl.Info("info")
	cl.Warn("warn")
	cl.Error("error")

	require.Equal(t, 4, recorded.Len())
	for _, entry := range recorded.All() {
		fields := entry.ContextMap()
		assert.Equal(t, "sellerdynamics", fields["provider"])
		assert.Equal(t, "gate", fields["component"])
		assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", fields["trace_id"])
	}
}

func TestWithLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	WithLogger(context.Background(), zap.New(core)).Zap().Info("direct")
	assert.Equal(t, 1, recorded.Len())

	// nil logger must not panic
	WithLogger(context.Background(), nil).Info("dropped")
}
