package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/marketops/backoffice/internal/infrastructure/telemetry"
)

// setupTestTracer installs an in-memory span recorder as the global provider
// for the duration of the test.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	ctx, span := telemetry.StartServiceSpan(context.Background(), "inventory", "get_stock_levels",
		telemetry.WithAttribute(telemetry.SpanAttrProvider, "shopify"),
		telemetry.WithSpanKind(trace.SpanKindServer),
	)
	assert.NotEmpty(t, telemetry.GetTraceID(ctx))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "inventory.get_stock_levels", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Equal(t, "shopify", attrMap(spans[0].Attributes())[telemetry.SpanAttrProvider].AsString())
}

func TestSetAttributes(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "inventory.query")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPage, 2,
		telemetry.SpanAttrResultTotal, int64(120),
		"inventory.price", 9.5,
		telemetry.SpanAttrConfigError, false,
		telemetry.SpanAttrFilters, []string{"vendor", "search"},
		42, "ignored: key is not a string",
		"dangling",
	)
	span.End()

	attrs := attrMap(sr.Ended()[0].Attributes())
	assert.Equal(t, int64(2), attrs[telemetry.SpanAttrPage].AsInt64())
	assert.Equal(t, int64(120), attrs[telemetry.SpanAttrResultTotal].AsInt64())
	assert.Equal(t, 9.5, attrs["inventory.price"].AsFloat64())
	assert.False(t, attrs[telemetry.SpanAttrConfigError].AsBool())
	assert.Equal(t, []string{"vendor", "search"}, attrs[telemetry.SpanAttrFilters].AsStringSlice())
	assert.Len(t, attrs, 5)
}

func TestRecordError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "inventory.fetch")
	telemetry.RecordError(span, errors.New("upstream down"))
	telemetry.RecordError(span, nil)
	span.End()

	ended := sr.Ended()[0]
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "upstream down", ended.Status().Description)
	require.Len(t, ended.Events(), 1)
	assert.Equal(t, "exception", ended.Events()[0].Name)
}

func TestSetOKAndAddEvent(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "gate.do")
	telemetry.AddEvent(span, "cache_hit", telemetry.SpanAttrGateKey, "products")
	telemetry.SetOK(span)
	span.End()

	ended := sr.Ended()[0]
	assert.Equal(t, codes.Ok, ended.Status().Code)
	require.Len(t, ended.Events(), 1)
	assert.Equal(t, "products", attrMap(ended.Events()[0].Attributes)[telemetry.SpanAttrGateKey].AsString())
}

func TestNilSpanHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.SetAttributes(nil, "k", "v")
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.SetOK(nil)
		telemetry.AddEvent(nil, "e")
	})
	assert.Empty(t, telemetry.GetTraceID(context.Background()))
}
