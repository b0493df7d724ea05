package jwk

import (
	"errors"
	"testing"

	"github.com/convenehq/convene/pkg/config"
)

func TestNewPairNilConfig(t *testing.T) {
	if _, err := NewPair(nil); !errors.Is(err, config.ErrNilConfig) {
		t.Fatalf("NewPair(nil) = %v, want %v", err, config.ErrNilConfig)
	}
}

func TestNewPairStableKeyID(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	a, err := NewPair(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPair(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if a.JWK().KeyID == "" || a.JWK().KeyID != b.JWK().KeyID {
		t.Fatalf("key ids differ: %q vs %q", a.JWK().KeyID, b.JWK().KeyID)
	}
	if alg := a.JWK().Algorithm; alg != "EdDSA" {
		t.Fatalf("algorithm %q, want EdDSA", alg)
	}
}
