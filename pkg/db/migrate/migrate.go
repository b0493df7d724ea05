// Package migrate brings the convene schema up to date. Migrations are
// pairs of embedded SQL scripts per driver, and applied versions are
// recorded in a migrations table so running at startup is idempotent.
package migrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/db"
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

// dialect folds driver name aliases onto the script naming scheme.
func dialect(driver string) string {
	if driver == "sqlite3" {
		return driverSQLite
	}
	return driver
}

func trackerSchema(driver string) string {
	if dialect(driver) == driverPostgres {
		return `CREATE TABLE IF NOT EXISTS migrations (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	version INTEGER NOT NULL UNIQUE
)`
	}
	return `CREATE TABLE IF NOT EXISTS migrations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	version INTEGER NOT NULL UNIQUE
)`
}

func schemaVersion(ctx context.Context, tx *db.Tx) (int64, error) {
	var v int64
	if err := tx.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM migrations"); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// Migrate applies every migration newer than the recorded schema
// version, all inside a single transaction.
func Migrate(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := tx.ExecContext(ctx, trackerSchema(tx.DriverName())); err != nil {
			return fmt.Errorf("create migrations table: %w", err)
		}

		current, err := schemaVersion(ctx, tx)
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if m.Version <= current {
				continue
			}
			logger.Info("applying migration", "version", m.Version, "name", m.Name)
			if err := m.apply(ctx, tx); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				tx.Rebind("INSERT INTO migrations (name, version) VALUES (?, ?)"),
				m.Name, m.Version); err != nil {
				return fmt.Errorf("record migration %d: %w", m.Version, err)
			}
		}
		return nil
	})
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		current, err := schemaVersion(ctx, tx)
		if err != nil {
			return err
		}
		if current == 0 {
			return errors.New("no migrations to roll back")
		}

		var target *Migration
		for i := range migrations {
			if migrations[i].Version == current {
				target = &migrations[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("schema version %d has no registered migration", current)
		}

		logger.Info("reverting migration", "version", target.Version, "name", target.Name)
		if err := target.revert(ctx, tx); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			tx.Rebind("DELETE FROM migrations WHERE version = ?"), current); err != nil {
			return fmt.Errorf("unrecord migration %d: %w", current, err)
		}
		return nil
	})
}
