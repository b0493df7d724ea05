package sync

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
)

func TestWorkPoolRunsEverything(t *testing.T) {
	var ran atomic.Int32
	wp := NewWorkPool(context.Background(), 4)
	for i := 0; i < 20; i++ {
		wp.Add(strconv.Itoa(i), func() {
			ran.Add(1)
		})
	}
	wp.Run()

	if got := ran.Load(); got != 20 {
		t.Fatalf("ran %d of 20 queued units", got)
	}
	for i := 0; i < 20; i++ {
		if wp.Status(strconv.Itoa(i)) {
			t.Errorf("unit %d still queued after Run", i)
		}
	}
}

func TestWorkPoolDropsDuplicateIDs(t *testing.T) {
	var dropped []string
	logf := func(format string, args ...interface{}) {
		dropped = append(dropped, fmt.Sprintf(format, args...))
	}

	var ran atomic.Int32
	wp := NewWorkPool(context.Background(), 1, WithWorkPoolLogger(logf))
	wp.Add("same", func() { ran.Add(1) })
	wp.Add("same", func() { ran.Add(100) })
	wp.Run()

	if got := ran.Load(); got != 1 {
		t.Fatalf("expected only the first unit to run, counter = %d", got)
	}
	if len(dropped) != 1 {
		t.Fatalf("expected one dropped-work log line, got %v", dropped)
	}
}

func TestWorkPoolCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := NewWorkPool(ctx, 2)
	wp.Add("a", func() {})

	// Run must return instead of blocking on a dead context.
	wp.Run()
}
