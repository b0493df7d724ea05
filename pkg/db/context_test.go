package db_test

import (
	"context"
	"testing"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/internal/test"
)

func TestFromContext(t *testing.T) {
	if d := db.FromContext(context.TODO()); d != nil {
		t.Fatalf("empty context carries %v", d)
	}

	dbx := test.Open(t)
	ctx := db.WithContext(context.TODO(), dbx)
	if db.FromContext(ctx) != dbx {
		t.Fatal("WithContext round trip lost the connection")
	}
}
