package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.TODO(), "bogus", "convene.db"); err == nil {
		t.Fatal("expected an error for an unregistered driver")
	}
}

func TestOpenSqlite(t *testing.T) {
	d, err := Open(context.TODO(), "sqlite", filepath.Join(t.TempDir(), "convene.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Error(err)
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	ctx := context.TODO()
	d, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "convene.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close() // nolint: errcheck

	if _, err := d.ExecContext(ctx, "CREATE TABLE notes (body TEXT)"); err != nil {
		t.Fatal(err)
	}

	boom := context.DeadlineExceeded
	err = d.TransactionContext(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO notes (body) VALUES ('scratch')"); err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("TransactionContext returned %v, want %v", err, boom)
	}

	var n int
	if err := d.GetContext(ctx, &n, "SELECT COUNT(*) FROM notes"); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("found %d rows after rollback, want 0", n)
	}
}
