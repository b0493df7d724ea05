package migrate

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/convenehq/convene/pkg/db"
)

//go:embed *.sql
var sqls embed.FS

// Ordered oldest to newest. Adding a migration means appending here and
// dropping NNNN_<name>_<driver>.{up,down}.sql files next to this file.
var migrations = []Migration{
	{Version: 1, Name: "create tables"},
	{Version: 2, Name: "webhooks"},
}

// A Migration pairs a schema version with its embedded up and down
// scripts.
type Migration struct {
	Version int64
	Name    string
}

func (m Migration) apply(ctx context.Context, tx *db.Tx) error {
	return m.exec(ctx, tx, "up")
}

func (m Migration) revert(ctx context.Context, tx *db.Tx) error {
	return m.exec(ctx, tx, "down")
}

func (m Migration) exec(ctx context.Context, tx *db.Tx, direction string) error {
	name := fmt.Sprintf("%04d_%s_%s.%s.sql",
		m.Version, slug(m.Name), dialect(tx.DriverName()), direction)
	stmts, err := sqls.ReadFile(name)
	if err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, string(stmts)); err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	return nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
