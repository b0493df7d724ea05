package backend

import (
	"testing"
	"time"

	"github.com/convenehq/convene/pkg/proto"
	"github.com/matryer/is"
)

func TestScheduleTieBreaksOnEarlierStart(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	// The later slot is created first; insertion order must not decide.
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Sync", "", []proto.SlotSpec{
		{StartsAt: base.Add(24 * time.Hour), Duration: time.Hour},
		{StartsAt: base, Duration: time.Hour},
	}, []int64{contact.ID})
	is.NoErr(err)

	token := invite.Participants[0].Binding.Token
	_, err = be.SubmitResponses(ctx, token, map[int64]proto.Availability{
		invite.Slots[0].ID: proto.Available,
		invite.Slots[1].ID: proto.Available,
	})
	is.NoErr(err)

	schedule, err := be.Schedule(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)
	is.Equal(len(schedule.Tallies), 2)
	is.Equal(schedule.Tallies[0].Score, schedule.Tallies[1].Score)
	is.True(schedule.Tallies[0].Slot.StartsAt.Before(schedule.Tallies[1].Slot.StartsAt))
}

func TestSchedulePendingExcludedFromScore(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	grace, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)
	linus, err := be.CreateContact(ctx, organizer, "Linus", "linus@example.com")
	is.NoErr(err)

	base := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Sync", "", testSlots(base, 1), []int64{grace.ID, linus.ID})
	is.NoErr(err)

	_, err = be.SubmitResponses(ctx, invite.Participants[0].Binding.Token,
		map[int64]proto.Availability{invite.Slots[0].ID: proto.Maybe})
	is.NoErr(err)

	schedule, err := be.Schedule(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)
	is.Equal(schedule.Invited, 2)
	is.Equal(schedule.Responded, 1)

	tally := schedule.Tallies[0]
	is.Equal(tally.Maybe, 1)
	is.Equal(tally.Available, 0)
	is.Equal(tally.Unavailable, 0)
	is.Equal(tally.Pending, 1)
	is.Equal(tally.Score, 0.5)
}

func TestFinalizeForeignSlot(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 9, 21, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Sync", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)
	other, err := be.CreateMeeting(ctx, organizer, "Other", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)

	_, err = be.SendMeeting(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)

	_, _, err = be.Finalize(ctx, organizer, invite.Meeting.ID, other.Slots[0].ID)
	is.Equal(err, proto.ErrSlotNotFound)

	// The meeting is still open for a proper finalize.
	_, _, err = be.Finalize(ctx, organizer, invite.Meeting.ID, invite.Slots[0].ID)
	is.NoErr(err)
}

func TestScheduleOtherOrganizer(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	ada, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	bob, err := be.Register(ctx, "bob@example.com", "hunter2", "Bob", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, ada, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 9, 28, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, ada, "Sync", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)

	_, err = be.Schedule(ctx, bob, invite.Meeting.ID)
	is.Equal(err, proto.ErrMeetingNotFound)

	_, _, err = be.Finalize(ctx, bob, invite.Meeting.ID, invite.Slots[0].ID)
	is.Equal(err, proto.ErrMeetingNotFound)
}

func TestDescribeSlots(t *testing.T) {
	slots := []proto.TimeSlot{
		{StartsAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), Duration: 45 * time.Minute},
	}
	lines := describeSlots(slots)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	want := "Tuesday, March 10, 2026 at 09:00 AM (45 minutes)"
	if lines[0] != want {
		t.Fatalf("describeSlots => %q, want %q", lines[0], want)
	}
}
