// Package requestctx carries the request id through context so log lines and
// error envelopes can be correlated without threading an extra parameter.
package requestctx

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the stored request id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}
