// Package cron schedules recurring work, logging through the server
// logger.
package cron

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Scheduler runs registered funcs on cron specs. Runs of the same job
// never overlap; a run that is still going when the next tick fires
// makes the tick a no-op.
type Scheduler struct {
	*cron.Cron
}

// NewScheduler returns an idle Scheduler. Call Start to begin
// dispatching.
func NewScheduler(ctx context.Context) *Scheduler {
	logger := charmLogger{log.FromContext(ctx).WithPrefix("cron")}
	return &Scheduler{
		Cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(
				cron.Recover(logger),
				cron.SkipIfStillRunning(logger),
			),
		),
	}
}

// Add schedules fn on the given cron spec and returns its entry id.
func (s *Scheduler) Add(spec string, fn func()) (int, error) {
	id, err := s.Cron.AddFunc(spec, fn)
	return int(id), err //nolint:wrapcheck
}

// Remove drops the entry with the given id.
func (s *Scheduler) Remove(id int) {
	s.Cron.Remove(cron.EntryID(id))
}

// charmLogger adapts the charm logger to the cron.Logger contract.
// Routine chatter goes out at debug so "wake up, nothing to do" ticks
// don't flood the log.
type charmLogger struct {
	logger *log.Logger
}

var _ cron.Logger = charmLogger{}

func (l charmLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l charmLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}
