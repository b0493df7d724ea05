package jobs

import (
	"context"
	"testing"

	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/cron"
)

type noopJob struct{}

func (noopJob) Spec(context.Context) string { return "@every 1h" }
func (noopJob) Func(context.Context) func() { return func() {} }

func TestScheduleUnschedule(t *testing.T) {
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	Register("noop", noopJob{})

	s := cron.NewScheduler(ctx)
	Schedule(ctx, s)
	if len(s.Entries()) == 0 {
		t.Fatal("nothing was scheduled")
	}

	Unschedule(s)
	if got := len(s.Entries()); got != 0 {
		t.Fatalf("%d entries left after unschedule, want 0", got)
	}
}
