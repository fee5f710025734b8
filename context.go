package tdsclient

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches a caller-chosen correlation identifier to ctx. The
// Client stamps it on every audit event emitted for the call; when absent, a
// fresh uuid is generated per call instead.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
