package jobs

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/sync"
)

func init() {
	Register("reminder-sweep", reminderSweep{})
}

// reminderSweep nudges participants who have not responded to meetings that
// went out a while ago.
type reminderSweep struct{}

var _ Runner = reminderSweep{}

// Spec implements Runner.
func (reminderSweep) Spec(ctx context.Context) string {
	return config.FromContext(ctx).Jobs.ReminderSweep
}

// Func implements Runner.
func (reminderSweep) Func(ctx context.Context) func() {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.reminder")
	b := backend.FromContext(ctx)
	return func() {
		age := time.Duration(cfg.Jobs.ReminderAge) * time.Second
		meetings, err := b.MeetingsAwaitingResponses(ctx, age)
		if err != nil {
			logger.Error("error listing meetings awaiting responses", "err", err)
			return
		}

		// Divide the work up among the number of CPUs.
		wq := sync.NewWorkPool(ctx, runtime.GOMAXPROCS(0),
			sync.WithWorkPoolLogger(logger.Errorf),
		)

		logger.Debug("sending response reminders")
		for _, m := range meetings {
			meeting := m
			wq.Add(fmt.Sprintf("meeting/%d", meeting.ID), func() {
				report, err := b.RemindPending(ctx, meeting)
				if err != nil {
					logger.Error("error sending reminders", "meeting", meeting.ID, "err", err)
					return
				}

				for _, f := range report.Failed {
					logger.Error("error delivering reminder", "meeting", meeting.ID, "recipient", f.Recipient, "reason", f.Reason)
				}
			})
		}

		wq.Run()
	}
}
