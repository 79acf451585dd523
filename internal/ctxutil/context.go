// Package ctxutil provides context key helpers for request tracing values.
// Values stored here are picked up automatically by the logger's
// ContextHandler, so call sites never need to thread IDs into log calls.
package ctxutil

import "context"

type contextKey string

const (
	requestIDKey    contextKey = "request_id"
	subscriberIDKey contextKey = "subscriber_id"
)

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID stored in the context, if any.
func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDKey).(string)
	return v, ok
}

// WithSubscriberID returns a context carrying the ManyChat subscriber ID.
func WithSubscriberID(ctx context.Context, subscriberID string) context.Context {
	return context.WithValue(ctx, subscriberIDKey, subscriberID)
}

// GetSubscriberID returns the subscriber ID stored in the context.
// Returns empty string when absent.
func GetSubscriberID(ctx context.Context) string {
	v, _ := ctx.Value(subscriberIDKey).(string)
	return v
}
