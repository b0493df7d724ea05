package backend

import "context"

type contextKey struct{}

// FromContext returns the backend stored in ctx, or nil.
func FromContext(ctx context.Context) *Backend {
	b, _ := ctx.Value(contextKey{}).(*Backend)
	return b
}

// WithContext stores the backend in a child context.
func WithContext(ctx context.Context, b *Backend) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}
