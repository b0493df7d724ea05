package migrate

import (
	"context"
	"testing"

	"github.com/convenehq/convene/pkg/db/internal/test"
)

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.TODO()
	dbx := test.Open(t)
	for i := 0; i < 2; i++ {
		if err := Migrate(ctx, dbx); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	var v int64
	if err := dbx.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM migrations"); err != nil {
		t.Fatal(err)
	}
	if want := migrations[len(migrations)-1].Version; v != want {
		t.Fatalf("schema version %d, want %d", v, want)
	}
}

func TestRollbackToEmpty(t *testing.T) {
	ctx := context.TODO()
	dbx := test.Open(t)
	if err := Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}
	for range migrations {
		if err := Rollback(ctx, dbx); err != nil {
			t.Fatal(err)
		}
	}
	if err := Rollback(ctx, dbx); err == nil {
		t.Fatal("rollback on an empty schema should fail")
	}
}
