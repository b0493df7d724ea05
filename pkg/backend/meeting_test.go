package backend

import (
	"testing"
	"time"

	"github.com/convenehq/convene/pkg/proto"
	"github.com/matryer/is"
)

func TestMeetingLifecycleGuards(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 5, 4, 14, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Kickoff", "", testSlots(base, 2), []int64{contact.ID})
	is.NoErr(err)
	meetingID := invite.Meeting.ID
	slotID := invite.Slots[0].ID

	// Draft meetings cannot be finalized.
	_, _, err = be.Finalize(ctx, organizer, meetingID, slotID)
	is.Equal(err, proto.ErrMeetingNotSent)

	_, err = be.SendMeeting(ctx, organizer, meetingID)
	is.NoErr(err)

	// Sending twice is rejected.
	_, err = be.SendMeeting(ctx, organizer, meetingID)
	is.Equal(err, proto.ErrMeetingSent)

	_, _, err = be.Finalize(ctx, organizer, meetingID, slotID)
	is.NoErr(err)

	// Finalize is terminal: no second finalize, no cancel, no new slots.
	_, _, err = be.Finalize(ctx, organizer, meetingID, invite.Slots[1].ID)
	is.Equal(err, proto.ErrMeetingFinalized)
	_, err = be.CancelMeeting(ctx, organizer, meetingID)
	is.Equal(err, proto.ErrMeetingFinalized)
	_, err = be.AddTimeSlot(ctx, organizer, meetingID, proto.SlotSpec{StartsAt: base.Add(time.Hour), Duration: time.Hour})
	is.Equal(err, proto.ErrMeetingFinalized)
}

func TestCancelledMeetingRejectsResponses(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 5, 4, 14, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Kickoff", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)

	_, err = be.SendMeeting(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)
	_, err = be.CancelMeeting(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)

	token := invite.Participants[0].Binding.Token
	_, err = be.SubmitResponses(ctx, token, map[int64]proto.Availability{invite.Slots[0].ID: proto.Available})
	is.Equal(err, proto.ErrMeetingCancelled)

	err = be.SuggestAlternative(ctx, token, base.Add(48*time.Hour), "next week?")
	is.Equal(err, proto.ErrMeetingCancelled)

	// Cancelling twice is rejected.
	_, err = be.CancelMeeting(ctx, organizer, invite.Meeting.ID)
	is.Equal(err, proto.ErrMeetingCancelled)
}

func TestAddParticipantTokenStable(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Standup", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)

	issued := invite.Participants[0].Binding.Token
	is.True(issued != "")

	// Re-adding the same contact returns the same binding.
	again, err := be.AddParticipant(ctx, organizer, invite.Meeting.ID, contact.ID)
	is.NoErr(err)
	is.Equal(again.Token, issued)

	p, err := be.ResolveToken(ctx, issued)
	is.NoErr(err)
	is.Equal(p.Meeting.ID, invite.Meeting.ID)
	is.Equal(p.Contact.ID, contact.ID)

	_, err = be.ResolveToken(ctx, "cv_0000000000000000000000000000000000000000")
	is.Equal(err, proto.ErrTokenNotFound)
}

func TestDeleteTimeSlotCascade(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 6, 8, 9, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Review", "", testSlots(base, 2), []int64{contact.ID})
	is.NoErr(err)
	_, err = be.SendMeeting(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)

	token := invite.Participants[0].Binding.Token
	_, err = be.SubmitResponses(ctx, token, map[int64]proto.Availability{
		invite.Slots[0].ID: proto.Available,
		invite.Slots[1].ID: proto.Maybe,
	})
	is.NoErr(err)

	err = be.DeleteTimeSlot(ctx, organizer, invite.Meeting.ID, invite.Slots[0].ID)
	is.NoErr(err)

	// The other slot's response survives.
	responses, err := be.ParticipantResponses(ctx, token)
	is.NoErr(err)
	is.Equal(len(responses), 1)
	is.Equal(responses[0].SlotID, invite.Slots[1].ID)

	// A slot from another meeting is foreign here.
	other, err := be.CreateMeeting(ctx, organizer, "Other", "", testSlots(base.Add(time.Hour), 1), []int64{contact.ID})
	is.NoErr(err)
	err = be.DeleteTimeSlot(ctx, organizer, invite.Meeting.ID, other.Slots[0].ID)
	is.Equal(err, proto.ErrSlotNotFound)
}

func TestSharedGroupInvitations(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	ada, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	bob, err := be.Register(ctx, "bob@example.com", "hunter2", "Bob", "phrase")
	is.NoErr(err)

	contact, err := be.CreateContact(ctx, ada, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 7, 6, 15, 0, 0, 0, time.UTC)

	// Without a shared group, Bob cannot invite Ada's contact.
	_, err = be.CreateMeeting(ctx, bob, "Poach", "", testSlots(base, 1), []int64{contact.ID})
	is.Equal(err, proto.ErrContactNotFound)

	group, err := be.CreateGroup(ctx, ada, "Team", "")
	is.NoErr(err)
	is.NoErr(be.AddGroupMember(ctx, ada, group.ID, contact.ID))
	is.NoErr(be.SetGroupShared(ctx, ada, group.ID, true))
	is.NoErr(be.GrantGroupShare(ctx, ada, group.ID, "bob@example.com"))

	shared, err := be.SharedContacts(ctx, bob)
	is.NoErr(err)
	is.Equal(len(shared), 1)
	is.Equal(shared[0].ID, contact.ID)

	invite, err := be.CreateMeeting(ctx, bob, "Cross-team sync", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)
	is.Equal(len(invite.Participants), 1)

	// Revoking the share closes the door for the next meeting.
	is.NoErr(be.RevokeGroupShare(ctx, ada, group.ID, "bob@example.com"))
	_, err = be.CreateMeeting(ctx, bob, "Too late", "", testSlots(base.Add(time.Hour), 1), []int64{contact.ID})
	is.Equal(err, proto.ErrContactNotFound)
}
