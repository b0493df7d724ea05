package backend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/notify"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/webhook"
)

// CreateMeeting creates a draft meeting with its candidate slots and invited
// participants, all in one transaction.
//
// Participants are drawn from the organizer's own contacts or from contacts
// reachable through groups shared with them. Each binding gets its access
// token here; tokens survive for the life of the binding.
func (b *Backend) CreateMeeting(ctx context.Context, organizer proto.Organizer, title, description string, slots []proto.SlotSpec, contactIDs []int64) (proto.MeetingInvite, error) {
	if strings.TrimSpace(title) == "" {
		return proto.MeetingInvite{}, proto.ErrMissingTitle
	}
	if len(slots) == 0 {
		return proto.MeetingInvite{}, proto.ErrNoSlots
	}
	if len(contactIDs) == 0 {
		return proto.MeetingInvite{}, proto.ErrNoParticipants
	}

	var invite proto.MeetingInvite
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.CreateMeeting(ctx, tx, organizer.ID, title, description)
		if err != nil {
			return err
		}
		invite.Meeting = meetingFromModel(m)

		for _, spec := range slots {
			s, err := b.store.CreateTimeSlot(ctx, tx, m.ID, spec.StartsAt, int(spec.Duration.Minutes()))
			if err != nil {
				return err
			}
			invite.Slots = append(invite.Slots, slotFromModel(s))
		}

		for _, contactID := range contactIDs {
			if err := b.requireInvitable(ctx, tx, organizer, contactID); err != nil {
				return err
			}

			p, err := b.addParticipant(ctx, tx, m.ID, contactID)
			if err != nil {
				return err
			}

			contact, err := b.store.GetContactByID(ctx, tx, contactID)
			if err != nil {
				return db.WrapError(err)
			}

			invite.Participants = append(invite.Participants, proto.InvitedParticipant{
				Contact: contactFromModel(contact),
				Binding: bindingFromModel(p),
			})
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.MeetingInvite{}, proto.ErrContactNotFound
		}

		b.logger.Error("error creating meeting", "organizer", organizer.ID, "title", title, "error", err)
		return proto.MeetingInvite{}, err
	}

	return invite, nil
}

// Meeting returns a meeting the organizer owns, with slots and participants.
func (b *Backend) Meeting(ctx context.Context, organizer proto.Organizer, id int64) (proto.MeetingInvite, error) {
	var invite proto.MeetingInvite
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		invite, err = b.meetingInvite(ctx, tx, id)
		if err != nil {
			return err
		}
		if invite.Meeting.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.MeetingInvite{}, proto.ErrMeetingNotFound
		}

		return proto.MeetingInvite{}, err
	}

	return invite, nil
}

// Meetings returns the organizer's meetings, newest first.
func (b *Backend) Meetings(ctx context.Context, organizer proto.Organizer) ([]proto.Meeting, error) {
	var meetings []proto.Meeting
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ms, err := b.store.ListMeetingsByOrganizer(ctx, tx, organizer.ID)
		if err != nil {
			return err
		}

		for _, m := range ms {
			meetings = append(meetings, meetingFromModel(m))
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return meetings, nil
}

// SendMeeting dispatches a meeting's invitations, transitioning it from
// draft to sent.
//
// The transition happens exactly once per meeting. Invitation delivery runs
// after commit and its failures never roll back the transition; the report
// carries the per-recipient outcome.
func (b *Backend) SendMeeting(ctx context.Context, organizer proto.Organizer, id int64) (*notify.Report, error) {
	var invite proto.MeetingInvite
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		switch proto.ParseMeetingStatus(m.Status) {
		case proto.StatusSent:
			return proto.ErrMeetingSent
		case proto.StatusFinalized:
			return proto.ErrMeetingFinalized
		case proto.StatusCancelled:
			return proto.ErrMeetingCancelled
		}

		if err := b.store.SetMeetingStatus(ctx, tx, id, proto.StatusSent.String()); err != nil {
			return err
		}

		invite, err = b.meetingInvite(ctx, tx, id)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrMeetingNotFound
		}

		return nil, err
	}

	b.cache.InvalidateMeeting(id)

	report := b.sendInvitations(ctx, organizer, invite, false)

	if wh, err := webhook.NewMeetingEvent(ctx, organizer, invite.Meeting, webhook.MeetingEventActionSent); err == nil {
		if err := webhook.SendEvent(ctx, wh); err != nil {
			b.logger.Error("error sending meeting webhook", "meeting", id, "error", err)
		}
	}

	return report, nil
}

// CancelMeeting cancels a meeting. Legal from draft or sent; terminal.
//
// Participants who already responded are notified after commit.
func (b *Backend) CancelMeeting(ctx context.Context, organizer proto.Organizer, id int64) (*notify.Report, error) {
	var meeting proto.Meeting
	var responded []proto.InvitedParticipant
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		switch proto.ParseMeetingStatus(m.Status) {
		case proto.StatusFinalized:
			return proto.ErrMeetingFinalized
		case proto.StatusCancelled:
			return proto.ErrMeetingCancelled
		}

		if err := b.store.SetMeetingStatus(ctx, tx, id, proto.StatusCancelled.String()); err != nil {
			return err
		}

		meeting = meetingFromModel(m)
		meeting.Status = proto.StatusCancelled

		participants, err := b.invitedParticipants(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, p := range participants {
			if p.Binding.Responded {
				responded = append(responded, p)
			}
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrMeetingNotFound
		}

		return nil, err
	}

	b.cache.InvalidateMeeting(id)

	notifier := b.organizerNotifier(ctx, organizer.ID)
	ns := make([]notify.Notification, 0, len(responded))
	for _, p := range responded {
		ns = append(ns, notify.Cancelled(recipient(p.Contact), meeting.Title, organizer.Name))
	}
	report := b.deliver(ctx, notifier, ns)

	if wh, err := webhook.NewMeetingEvent(ctx, organizer, meeting, webhook.MeetingEventActionCancelled); err == nil {
		if err := webhook.SendEvent(ctx, wh); err != nil {
			b.logger.Error("error sending meeting webhook", "meeting", id, "error", err)
		}
	}

	return report, nil
}

// DeleteMeeting deletes a meeting and everything hanging off it.
func (b *Backend) DeleteMeeting(ctx context.Context, organizer proto.Organizer, id int64) error {
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		if err := b.store.DeleteResponsesByMeeting(ctx, tx, id); err != nil {
			return err
		}
		if err := b.store.DeleteSuggestionsByMeeting(ctx, tx, id); err != nil {
			return err
		}
		if err := b.store.DeleteParticipantsByMeeting(ctx, tx, id); err != nil {
			return err
		}
		if err := b.store.DeleteTimeSlotsByMeeting(ctx, tx, id); err != nil {
			return err
		}

		return b.store.DeleteMeeting(ctx, tx, id)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrMeetingNotFound
		}

		return err
	}

	b.cache.InvalidateMeeting(id)

	return nil
}

// AddTimeSlot adds a candidate slot to a meeting still accepting responses.
//
// Participants of a sent meeting are told their options changed.
func (b *Backend) AddTimeSlot(ctx context.Context, organizer proto.Organizer, meetingID int64, spec proto.SlotSpec) (proto.TimeSlot, error) {
	var (
		slot   proto.TimeSlot
		status proto.MeetingStatus
	)
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		status = proto.ParseMeetingStatus(m.Status)
		switch status {
		case proto.StatusFinalized:
			return proto.ErrMeetingFinalized
		case proto.StatusCancelled:
			return proto.ErrMeetingCancelled
		}

		s, err := b.store.CreateTimeSlot(ctx, tx, meetingID, spec.StartsAt, int(spec.Duration.Minutes()))
		if err != nil {
			return err
		}

		slot = slotFromModel(s)
		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.TimeSlot{}, proto.ErrMeetingNotFound
		}

		return proto.TimeSlot{}, err
	}

	if status == proto.StatusSent {
		b.notifyScheduleChanged(meetingID)
	}

	return slot, nil
}

// DeleteTimeSlot removes a slot from a meeting, deleting its dependent
// responses first. Responses on other slots are untouched.
func (b *Backend) DeleteTimeSlot(ctx context.Context, organizer proto.Organizer, meetingID, slotID int64) error {
	var status proto.MeetingStatus
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		status = proto.ParseMeetingStatus(m.Status)
		switch status {
		case proto.StatusFinalized:
			return proto.ErrMeetingFinalized
		case proto.StatusCancelled:
			return proto.ErrMeetingCancelled
		}

		s, err := b.store.GetTimeSlotByID(ctx, tx, slotID)
		if err != nil {
			return db.WrapError(err)
		}
		if s.MeetingID != meetingID {
			return proto.ErrSlotNotFound
		}

		if err := b.store.DeleteResponsesBySlot(ctx, tx, slotID); err != nil {
			return err
		}

		return b.store.DeleteTimeSlot(ctx, tx, slotID)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrSlotNotFound
		}

		return err
	}

	if status == proto.StatusSent {
		b.notifyScheduleChanged(meetingID)
	}

	return nil
}

// MeetingsAwaitingResponses returns sent meetings whose last activity is
// older than the given age. The reminder sweep feeds on this.
func (b *Backend) MeetingsAwaitingResponses(ctx context.Context, olderThan time.Duration) ([]proto.Meeting, error) {
	var meetings []proto.Meeting
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ms, err := b.store.ListMeetingsByStatusUpdatedBefore(ctx, tx, proto.StatusSent.String(), time.Now().Add(-olderThan))
		if err != nil {
			return err
		}

		for _, m := range ms {
			meetings = append(meetings, meetingFromModel(m))
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return meetings, nil
}

// meetingInvite loads a meeting with its slots and participants inside an
// open transaction. Access checks are the caller's job.
func (b *Backend) meetingInvite(ctx context.Context, tx *db.Tx, id int64) (proto.MeetingInvite, error) {
	var invite proto.MeetingInvite

	m, err := b.store.GetMeetingByID(ctx, tx, id)
	if err != nil {
		return invite, db.WrapError(err)
	}
	invite.Meeting = meetingFromModel(m)

	ss, err := b.store.ListTimeSlotsByMeeting(ctx, tx, id)
	if err != nil {
		return invite, err
	}
	for _, s := range ss {
		invite.Slots = append(invite.Slots, slotFromModel(s))
	}

	invite.Participants, err = b.invitedParticipants(ctx, tx, id)

	return invite, err
}

func meetingFromModel(m models.Meeting) proto.Meeting {
	meeting := proto.Meeting{
		ID:          m.ID,
		OrganizerID: m.OrganizerID,
		Title:       m.Title,
		Description: m.Description,
		Status:      proto.ParseMeetingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.FinalizedSlot.Valid {
		meeting.FinalizedSlot = m.FinalizedSlot.String
	}

	return meeting
}

func slotFromModel(m models.TimeSlot) proto.TimeSlot {
	return proto.TimeSlot{
		ID:        m.ID,
		MeetingID: m.MeetingID,
		StartsAt:  m.StartsAt,
		Duration:  time.Duration(m.DurationMinutes) * time.Minute,
		CreatedAt: m.CreatedAt,
	}
}
