// Package correlation carries the EazyBank correlation id through request
// contexts and onto outbound calls.
package correlation

import (
	"context"

	"golang.org/x/net/http/httpguts"
)

// Header is the HTTP header that carries the correlation id between services.
const Header = "eazybank-correlation-id"

// MaxLength bounds client-supplied ids.
const MaxLength = 128

type contextKey struct{}

// WithID returns a copy of ctx carrying the correlation id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the correlation id stored in ctx, or "" when absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// IsValid reports whether id can be propagated unchanged. The id is opaque:
// any non-empty value that is a legal header value within MaxLength is kept.
func IsValid(id string) bool {
	if id == "" || len(id) > MaxLength {
		return false
	}
	return httpguts.ValidHeaderFieldValue(id)
}
