// Package jobs registers recurring background work and binds it to the
// cron scheduler at startup.
package jobs

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/cron"
)

// A Runner describes one recurring job.
type Runner interface {
	// Spec returns the cron expression controlling the cadence.
	Spec(ctx context.Context) string

	// Func binds the job closure to the server context.
	Func(ctx context.Context) func()
}

var (
	mtx      sync.Mutex
	registry = map[string]Runner{}
	ids      = map[string]int{}
)

// Register adds a named job to the registry. Called from init funcs.
func Register(name string, r Runner) {
	mtx.Lock()
	defer mtx.Unlock()
	registry[name] = r
}

// Schedule adds every registered job to the scheduler. A job with a bad
// spec is logged and skipped.
func Schedule(ctx context.Context, s *cron.Scheduler) {
	logger := log.FromContext(ctx).WithPrefix("jobs")
	mtx.Lock()
	defer mtx.Unlock()
	for name, r := range registry {
		id, err := s.Add(r.Spec(ctx), r.Func(ctx))
		if err != nil {
			logger.Warn("could not schedule job", "job", name, "err", err)
			continue
		}
		ids[name] = id
	}
}

// Unschedule removes every scheduled job from the scheduler.
func Unschedule(s *cron.Scheduler) {
	mtx.Lock()
	defer mtx.Unlock()
	for name, id := range ids {
		s.Remove(id)
		delete(ids, name)
	}
}
