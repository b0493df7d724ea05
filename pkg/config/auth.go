package config

import (
	"errors"

	"github.com/charmbracelet/keygen"
)

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrEmptyKeyPath is returned when the signing key path is empty.
	ErrEmptyKeyPath = errors.New("empty signing key path")
)

// KeyPair returns the server's session signing key pair.
func KeyPair(cfg *Config) (*keygen.SSHKeyPair, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Auth.KeyPath == "" {
		return nil, ErrEmptyKeyPath
	}

	return keygen.New(cfg.Auth.KeyPath, keygen.WithKeyType(keygen.Ed25519))
}
