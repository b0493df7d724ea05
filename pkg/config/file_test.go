package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewConfigFileRoundTrips(t *testing.T) {
	out := newConfigFile(DefaultConfig())

	var cfg Config
	if err := yaml.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("rendered config does not parse: %v", err)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("parsed driver %q, want %q", cfg.DB.Driver, "sqlite")
	}
	if cfg.Jobs.ReminderSweep != "@every 1h" {
		t.Errorf("parsed reminder sweep %q, want %q", cfg.Jobs.ReminderSweep, "@every 1h")
	}
}

func TestNewConfigFileEmptyConfig(t *testing.T) {
	out := newConfigFile(&Config{})
	if !strings.Contains(out, "listen_addr") {
		t.Fatal("rendered config is missing the http section")
	}
}
