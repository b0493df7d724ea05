package config

import (
	"context"
	"testing"
)

func TestFromContext(t *testing.T) {
	if c := FromContext(context.TODO()); c != nil {
		t.Fatalf("empty context carries %v", c)
	}

	cfg := DefaultConfig()
	ctx := WithContext(context.TODO(), cfg)
	if got := FromContext(ctx); got != cfg {
		t.Fatalf("FromContext(ctx) = %v, want %v", got, cfg)
	}
}
