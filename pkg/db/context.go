package db

import "context"

type contextKey struct{}

// FromContext returns the database stored in ctx, or nil.
func FromContext(ctx context.Context) *DB {
	d, _ := ctx.Value(contextKey{}).(*DB)
	return d
}

// WithContext stores the database in a child context.
func WithContext(ctx context.Context, d *DB) context.Context {
	return context.WithValue(ctx, contextKey{}, d)
}
