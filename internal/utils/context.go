// Package utils provides general-purpose helpers used across the console:
// request-scoped context values, JSON response writing, the shared HTTP
// client, unverified JWT inspection and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// RequestIDCtxKey stores the identifier sent as X-Request-ID with outbound
// API calls.
var RequestIDCtxKey = contextKey("requestID")

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, id)
}

// RequestIDFromContext returns the request id stored in ctx.
//
//   - ok == true : value is found and is a non-empty string
//   - ok == false: value is missing, empty or of another type
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDCtxKey).(string)
	return id, ok && id != ""
}
