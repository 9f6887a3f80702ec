package api

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey byte

const requestIDKey = ctxKey(1)

// RequestIDHeader carries the request ID to the server.
const RequestIDHeader = "X-Request-Id"

// WithRequestID tags outgoing requests made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the ID set by WithRequestID, or a fresh one.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
