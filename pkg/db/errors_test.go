package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestWrapError(t *testing.T) {
	disk := errors.New("disk I/O error")
	for name, tc := range map[string]struct {
		in   error
		want error
	}{
		"nil":         {nil, nil},
		"no rows":     {sql.ErrNoRows, ErrRecordNotFound},
		"passthrough": {disk, disk},
	} {
		t.Run(name, func(t *testing.T) {
			if got := WrapError(tc.in); !errors.Is(got, tc.want) {
				t.Errorf("WrapError(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWrapErrorSqliteUnique(t *testing.T) {
	ctx := context.TODO()
	d, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "convene.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close() // nolint: errcheck

	if _, err := d.ExecContext(ctx, "CREATE TABLE emails (addr TEXT NOT NULL UNIQUE)"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ExecContext(ctx, "INSERT INTO emails (addr) VALUES ('alice@example.com')"); err != nil {
		t.Fatal(err)
	}
	_, err = d.ExecContext(ctx, "INSERT INTO emails (addr) VALUES ('alice@example.com')")
	if err == nil {
		t.Fatal("duplicate insert succeeded")
	}
	if got := WrapError(err); !errors.Is(got, ErrDuplicateKey) {
		t.Errorf("WrapError(%v) = %v, want ErrDuplicateKey", err, got)
	}
}
