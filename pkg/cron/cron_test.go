package cron

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCharmLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	cl := charmLogger{logger}
	cl.Info("tick", "entries", 0)
	cl.Error(errors.New("spec is broken"), "schedule failed")

	out := buf.String()
	if !strings.Contains(out, "DEBU tick entries=0") {
		t.Errorf("routine chatter should log at debug, got %q", out)
	}
	if !strings.Contains(out, "ERRO schedule failed err=\"spec is broken\"") {
		t.Errorf("errors should carry the err field, got %q", out)
	}
}

func TestAddRemove(t *testing.T) {
	s := NewScheduler(context.TODO())

	if _, err := s.Add("not a spec", func() {}); err == nil {
		t.Fatal("expected an error for a malformed spec")
	}

	id, err := s.Add("@every 1h", func() {})
	if err != nil {
		t.Fatal(err)
	}
	s.Remove(id)
	if got := len(s.Entries()); got != 0 {
		t.Fatalf("%d entries left after remove, want 0", got)
	}
}
