package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// traced returns a func that logs the statement once the query has
// finished, along with its wall time. No-op unless tracing is on.
func traced(l *log.Logger, query string, args []any) func() {
	if l == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		stmt := strings.Join(strings.Fields(query), " ")
		l.Debug("sql", "stmt", stmt, "args", args, "elapsed", time.Since(start))
	}
}

// GetContext runs a single-row query.
func (d *DB) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	defer traced(d.logger, query, args)()
	return d.DB.GetContext(ctx, dest, query, args...)
}

// SelectContext runs a multi-row query.
func (d *DB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	defer traced(d.logger, query, args)()
	return d.DB.SelectContext(ctx, dest, query, args...)
}

// ExecContext runs a statement.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer traced(d.logger, query, args)()
	return d.DB.ExecContext(ctx, query, args...)
}

// GetContext runs a single-row query inside the transaction.
func (t *Tx) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	defer traced(t.logger, query, args)()
	return t.Tx.GetContext(ctx, dest, query, args...)
}

// SelectContext runs a multi-row query inside the transaction.
func (t *Tx) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	defer traced(t.logger, query, args)()
	return t.Tx.SelectContext(ctx, dest, query, args...)
}

// ExecContext runs a statement inside the transaction.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer traced(t.logger, query, args)()
	return t.Tx.ExecContext(ctx, query, args...)
}
