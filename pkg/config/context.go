package config

import "context"

type contextKey struct{}

// WithContext stores the configuration in a child context.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the configuration stored in ctx, or nil.
func FromContext(ctx context.Context) *Config {
	c, _ := ctx.Value(contextKey{}).(*Config)
	return c
}
