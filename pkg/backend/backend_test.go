package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/migrate"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/store"
	"github.com/convenehq/convene/pkg/store/database"
	"github.com/matryer/is"
	_ "modernc.org/sqlite"
)

func testBackend(t *testing.T) (context.Context, *Backend) {
	t.Helper()

	ctx := context.Background()
	dp := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataPath = dp
	cfg.DB.Driver = "sqlite"
	cfg.DB.DataSource = filepath.Join(dp, "test.db")

	ctx = config.WithContext(ctx, cfg)
	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			t.Error(err)
		}
	})

	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}

	dbstore := database.New(ctx, dbx)
	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, dbstore)
	be := New(ctx, cfg, dbx, dbstore)
	ctx = WithContext(ctx, be)

	return ctx, be
}

func testSlots(base time.Time, n int) []proto.SlotSpec {
	specs := make([]proto.SlotSpec, 0, n)
	for i := 0; i < n; i++ {
		specs = append(specs, proto.SlotSpec{
			StartsAt: base.Add(time.Duration(i) * 24 * time.Hour),
			Duration: time.Hour,
		})
	}

	return specs
}

func TestSchedulingRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "recovery phrase")
	is.NoErr(err)

	names := []string{"Grace", "Linus", "Barbara"}
	contacts := make([]proto.Contact, 0, len(names))
	for _, name := range names {
		c, err := be.CreateContact(ctx, organizer, name, name+"@example.com")
		is.NoErr(err)
		contacts = append(contacts, c)
	}

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Quarterly sync", "Q1 planning",
		testSlots(base, 2),
		[]int64{contacts[0].ID, contacts[1].ID, contacts[2].ID})
	is.NoErr(err)
	is.Equal(invite.Meeting.Status, proto.StatusDraft)
	is.Equal(len(invite.Slots), 2)
	is.Equal(len(invite.Participants), 3)

	report, err := be.SendMeeting(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)
	is.Equal(report.Sent(), 3)

	// Every participant responds through their own token.
	slotA := invite.Slots[0].ID
	slotB := invite.Slots[1].ID
	verdicts := []map[int64]proto.Availability{
		{slotA: proto.Available, slotB: proto.Unavailable},
		{slotA: proto.Available, slotB: proto.Maybe},
		{slotA: proto.Maybe, slotB: proto.Available},
	}
	for i, p := range invite.Participants {
		receipt, err := be.SubmitResponses(ctx, p.Binding.Token, verdicts[i])
		is.NoErr(err)
		is.Equal(receipt.Saved, 2)
	}

	schedule, err := be.Schedule(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)
	is.Equal(schedule.Invited, 3)
	is.Equal(schedule.Responded, 3)
	is.Equal(len(schedule.Tallies), 2)

	// Slot A: 2 available + 1 maybe = 2.5. Slot B: 1 + 0.5 = 1.5.
	best := schedule.Tallies[0]
	is.Equal(best.Slot.ID, slotA)
	is.Equal(best.Available, 2)
	is.Equal(best.Maybe, 1)
	is.Equal(best.Unavailable, 0)
	is.Equal(best.Pending, 0)
	is.Equal(best.Score, 2.5)

	receipt, _, err := be.Finalize(ctx, organizer, invite.Meeting.ID, slotA)
	is.NoErr(err)
	is.Equal(receipt.Meeting.Status, proto.StatusFinalized)
	is.Equal(receipt.Invited, 3)
	is.Equal(receipt.Responded, 3)
	is.Equal(receipt.Meeting.FinalizedSlot, "Tuesday, March 10, 2026 at 09:00 AM")

	// Late responses bounce off the finalized meeting.
	_, err = be.SubmitResponses(ctx, invite.Participants[0].Binding.Token,
		map[int64]proto.Availability{slotA: proto.Unavailable})
	is.Equal(err, proto.ErrMeetingFinalized)
}

func TestAuthenticateRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	_, err := be.Register(ctx, "Ada@Example.com", "hunter2", "Ada", "correct horse")
	is.NoErr(err)

	// Lookup is case-insensitive on email.
	organizer, err := be.Authenticate(ctx, "ada@example.com", "hunter2")
	is.NoErr(err)
	is.Equal(organizer.Email, "ada@example.com")

	_, err = be.Authenticate(ctx, "ada@example.com", "wrong")
	is.Equal(err, proto.ErrUnauthorized)

	_, err = be.Authenticate(ctx, "nobody@example.com", "hunter2")
	is.Equal(err, proto.ErrUnauthorized)

	_, err = be.Register(ctx, "ada@example.com", "other", "Ada Again", "whatever")
	is.Equal(err, proto.ErrOrganizerExist)
}

func TestResetPassword(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	_, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "correct horse")
	is.NoErr(err)

	err = be.ResetPassword(ctx, "ada@example.com", "wrong phrase", "newpass")
	is.Equal(err, proto.ErrRecoveryMismatch)

	err = be.ResetPassword(ctx, "ada@example.com", "correct horse", "newpass")
	is.NoErr(err)

	_, err = be.Authenticate(ctx, "ada@example.com", "hunter2")
	is.Equal(err, proto.ErrUnauthorized)

	_, err = be.Authenticate(ctx, "ada@example.com", "newpass")
	is.NoErr(err)
}
