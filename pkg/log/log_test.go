package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/convenehq/convene/pkg/config"
)

func TestNewLoggerFormats(t *testing.T) {
	for _, format := range []string{"", "text", "json", "logfmt", "JSON"} {
		cfg := config.DefaultConfig()
		cfg.Log.Format = format
		logger, f, err := NewLogger(cfg)
		if err != nil {
			t.Errorf("format %q: %v", format, err)
		}
		if logger == nil {
			t.Errorf("format %q: nil logger", format)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestNewLoggerUnknownFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Format = "xml"
	if _, _, err := NewLogger(cfg); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("NewLogger = %v, want unknown format error naming xml", err)
	}
}

func TestNewLoggerNilConfig(t *testing.T) {
	if _, _, err := NewLogger(nil); err == nil {
		t.Fatal("expected an error for a nil config")
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Path = filepath.Join(t.TempDir(), "convene.log")

	logger, f, err := NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close() // nolint: errcheck

	logger.Info("meeting invitations sent", "meeting", 42)

	data, err := os.ReadFile(cfg.Log.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "meeting invitations sent") {
		t.Fatalf("log file is missing the entry: %q", data)
	}
}
