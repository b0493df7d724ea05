package config

import (
	"path/filepath"
	"testing"
)

func TestBadKeyPair(t *testing.T) {
	for _, cfg := range []*Config{
		nil,
		{},
	} {
		if _, err := KeyPair(cfg); err == nil {
			t.Errorf("KeyPair(cfg) => _, nil, want non-nil error")
		}
	}
}

func TestGoodKeyPair(t *testing.T) {
	cfg := &Config{
		Auth: AuthConfig{
			KeyPath: filepath.Join(t.TempDir(), "convene_ed25519"),
		},
	}

	if _, err := KeyPair(cfg); err != nil {
		t.Errorf("KeyPair(cfg) => _, %v, want nil error", err)
	}
}
