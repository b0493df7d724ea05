package store

import "context"

type contextKey struct{}

// FromContext returns the store kept in ctx, or nil.
func FromContext(ctx context.Context) Store {
	s, _ := ctx.Value(contextKey{}).(Store)
	return s
}

// WithContext stores the store in a child context.
func WithContext(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}
