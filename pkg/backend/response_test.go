package backend

import (
	"testing"
	"time"

	"github.com/convenehq/convene/pkg/proto"
	"github.com/matryer/is"
)

func TestSubmitResponsesLastWins(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Sync", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)
	token := invite.Participants[0].Binding.Token
	slotID := invite.Slots[0].ID

	// Draft meetings already accept responses; tokens are live from creation.
	_, err = be.SubmitResponses(ctx, token, map[int64]proto.Availability{slotID: proto.Available})
	is.NoErr(err)

	_, err = be.SendMeeting(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)

	// Changing your mind overwrites, never duplicates.
	_, err = be.SubmitResponses(ctx, token, map[int64]proto.Availability{slotID: proto.Unavailable})
	is.NoErr(err)

	responses, err := be.ParticipantResponses(ctx, token)
	is.NoErr(err)
	is.Equal(len(responses), 1)
	is.Equal(responses[0].Availability, proto.Unavailable)

	schedule, err := be.Schedule(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)
	is.Equal(schedule.Tallies[0].Unavailable, 1)
	is.Equal(schedule.Tallies[0].Available, 0)
	is.Equal(schedule.Tallies[0].Score, 0.0)
}

func TestSubmitResponsesForeignSlot(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Sync", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)
	other, err := be.CreateMeeting(ctx, organizer, "Other", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)

	token := invite.Participants[0].Binding.Token

	// One foreign slot rejects the whole submission.
	_, err = be.SubmitResponses(ctx, token, map[int64]proto.Availability{
		invite.Slots[0].ID: proto.Available,
		other.Slots[0].ID:  proto.Available,
	})
	is.Equal(err, proto.ErrSlotNotFound)

	responses, err := be.ParticipantResponses(ctx, token)
	is.NoErr(err)
	is.Equal(len(responses), 0)

	p, err := be.ResolveToken(ctx, token)
	is.NoErr(err)
	is.True(!p.Binding.Responded)
}

func TestSubmitResponsesUnknownToken(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	_, err := be.SubmitResponses(ctx, "cv_deadbeef", map[int64]proto.Availability{1: proto.Available})
	is.Equal(err, proto.ErrTokenNotFound)
}

func TestSuggestAlternativeReplaces(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Sync", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)
	token := invite.Participants[0].Binding.Token

	is.NoErr(be.SuggestAlternative(ctx, token, base.Add(24*time.Hour), "Tuesday instead?"))
	is.NoErr(be.SuggestAlternative(ctx, token, base.Add(48*time.Hour), "Wednesday, actually"))

	suggestions, err := be.Suggestions(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)
	is.Equal(len(suggestions), 1)
	is.Equal(suggestions[0].Contact.ID, contact.ID)
	is.Equal(suggestions[0].Note, "Wednesday, actually")
	is.True(suggestions[0].SuggestedStart.Equal(base.Add(48 * time.Hour)))

	suggestion, found, err := be.Suggestion(ctx, token)
	is.NoErr(err)
	is.True(found)
	is.Equal(suggestion.Note, "Wednesday, actually")
}

func TestRespondedFlagFlips(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Sync", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)
	token := invite.Participants[0].Binding.Token

	p, err := be.ResolveToken(ctx, token)
	is.NoErr(err)
	is.True(!p.Binding.Responded)

	_, err = be.SubmitResponses(ctx, token, map[int64]proto.Availability{invite.Slots[0].ID: proto.Maybe})
	is.NoErr(err)

	p, err = be.ResolveToken(ctx, token)
	is.NoErr(err)
	is.True(p.Binding.Responded)
}
