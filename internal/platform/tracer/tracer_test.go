package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"accounts/internal/platform/tracer"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanOutboundCall,
		tracer.String(tracer.AttrService, "cards"),
		tracer.Bool("flag", true),
	)

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Int(tracer.AttrStatusCode, 200))
	span.AddEvent(tracer.EventInstanceSelected, tracer.String(tracer.AttrInstance, "cards-1"))
	span.End(errors.New("ignored"))
}

func TestOTelTracer_WithNoopProvider(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	ctx, span := tr.Start(context.Background(), tracer.SpanResolve,
		tracer.String(tracer.AttrService, "cards"),
		tracer.Int64("count", 2),
		tracer.Duration("elapsed", 15*time.Millisecond),
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	assert.NotPanics(t, func() {
		span.SetAttributes(tracer.Bool("cached", false))
		span.End(errors.New("resolve failed"))
	})
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, tracer.Attribute{Key: "k", Value: "v"}, tracer.String("k", "v"))
	assert.Equal(t, tracer.Attribute{Key: "n", Value: int64(3)}, tracer.Int("n", 3))
	assert.Equal(t, int64(150), tracer.Duration("latency", 150*time.Millisecond).Value)
}
