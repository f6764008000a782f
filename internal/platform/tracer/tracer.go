// Package tracer provides a lightweight tracing abstraction for outbound calls.
//
// Call sites depend on the Tracer interface rather than OpenTelemetry directly.
// Implementations:
//   - NoopTracer: for tests
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span; the returned context carries it to child operations.
	//
	//   ctx, span := tr.Start(ctx, tracer.SpanOutboundCall,
	//       tracer.String(tracer.AttrService, "cards"),
	//   )
	//   defer span.End(err)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: int64(value)}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanOutboundCall    = "outbound.call"
	SpanResolve         = "discovery.resolve"
	SpanCustomerDetails = "customer.fetch_details"
)

// Attribute keys.
const (
	AttrService       = "peer.service"
	AttrInstance      = "peer.instance"
	AttrInstanceCount = "discovery.instances"
	AttrHTTPMethod    = "http.method"
	AttrHTTPPath      = "http.path"
	AttrStatusCode    = "http.status_code"
	AttrCorrelationID = "eazybank.correlation_id"
	AttrMobileHash    = "eazybank.mobile_hash"
	AttrErrorCategory = "error.category"
)

// Event names.
const (
	EventInstanceSelected = "instance.selected"
)
