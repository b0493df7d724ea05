// Package db wraps the SQL connection shared across convene, adding
// query tracing and driver-agnostic error translation on top of sqlx.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

// DB is an open database connection.
type DB struct {
	*sqlx.DB
	logger *log.Logger
}

// Open connects to the database named by driver and dsn, verifying the
// connection with a ping. Query tracing kicks in when convene runs with
// verbose logging.
func Open(ctx context.Context, driver string, dsn string) (*DB, error) {
	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	d := &DB{DB: conn}
	if config.IsVerbose() {
		d.logger = log.FromContext(ctx).WithPrefix("db")
	}
	return d, nil
}

// Tx is an open transaction carrying the same query tracing as DB.
type Tx struct {
	*sqlx.Tx
	logger *log.Logger
}

// TransactionContext runs fn inside a transaction, committing when fn
// returns nil and rolling back otherwise. fn may finish the transaction
// itself; sql.ErrTxDone from commit or rollback is not a failure.
func (d *DB) TransactionContext(ctx context.Context, fn func(tx *Tx) error) error {
	txx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	tx := &Tx{Tx: txx, logger: d.logger}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			return fmt.Errorf("rollback after %s: %w", err, rerr)
		}
		return err
	}

	if err := tx.Commit(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
