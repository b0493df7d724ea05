package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestLaunch(t *testing.T) {
	m := NewManager(context.Background())

	want := errors.New("boom")
	err := <-m.Launch("a", func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("Launch error = %v, want %v", err, want)
	}

	if m.InFlight("a") {
		t.Error("expected a to be done")
	}
}

func TestLaunchCollapsesDuplicates(t *testing.T) {
	m := NewManager(context.Background())

	var runs atomic.Int32
	release := make(chan struct{})
	first := m.Launch("a", func(context.Context) error {
		runs.Add(1)
		<-release
		return nil
	})

	if !m.InFlight("a") {
		t.Fatal("expected a to be in flight")
	}

	second := m.Launch("a", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	if _, ok := <-second; ok {
		t.Error("expected duplicate launch to close without running")
	}

	close(release)
	<-first

	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
}

func TestLaunchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewManager(ctx)
	err := <-m.Launch("a", func(context.Context) error {
		t.Error("task ran on a cancelled manager")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Launch error = %v, want %v", err, context.Canceled)
	}
}
