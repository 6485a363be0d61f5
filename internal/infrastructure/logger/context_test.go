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

func TestFromContext(t *testing.T) {
	l := zap.NewExample()
	ctx := WithContext(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx, enriched := WithRequestID(context.Background(), zap.New(core), "req-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	enriched.Info("hello")
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "req-1", recorded.All()[0].ContextMap()["request_id"])
}

func TestWithViewID(t *testing.T) {
	ctx := WithViewID(context.Background(), "view-9")
	assert.Equal(t, "view-9", GetViewID(ctx))
	assert.Empty(t, GetViewID(context.Background()))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestContextLogger_EnrichesWithContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	ctx, _ = WithRequestID(ctx, zap.New(core), "req-2")
	ctx = WithViewID(ctx, "view-2")

	L(ctx).Warn("cart refresh failed")

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])
	assert.Equal(t, "view-2", fields["view_id"])
	assert.Equal(t, "req-2", fields["request_id"])
}

func TestContextLogger_LevelsAndWith(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	cl := WithLogger(context.Background(), zap.New(core)).With(zap.String("component", "cart"))

	cl.Debug("d")
	cl.Info("i")
	cl.Warn("w")
	cl.Error("e")

	require.Equal(t, 4, recorded.Len())
	for _, entry := range recorded.All() {
		assert.Equal(t, "cart", entry.ContextMap()["component"])
	}
	assert.NotNil(t, cl.Zap())
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := WithLogger(context.Background(), nil)
	assert.NotPanics(t, func() { cl.Info("nothing") })
}
