// Package test opens throwaway sqlite databases for store and
// migration tests.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/convenehq/convene/pkg/db"
)

// Open returns a sqlite database backed by a file in the test's temp
// directory. The connection closes when the test finishes.
func Open(tb testing.TB) *db.DB {
	tb.Helper()
	dsn := filepath.Join(tb.TempDir(), "convene.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	dbx, err := db.Open(context.TODO(), "sqlite", dsn)
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx
}
