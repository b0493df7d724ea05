package db

import (
	"context"
	"database/sql"
)

// Handler runs queries against either an open connection or a pending
// transaction. Stores take a Handler so the caller picks the
// transaction boundary.
type Handler interface {
	Rebind(query string) string

	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var (
	_ Handler = (*DB)(nil)
	_ Handler = (*Tx)(nil)
)
