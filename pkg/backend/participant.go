package backend

import (
	"context"
	"errors"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/proto"
)

// maxTokenAttempts bounds regeneration when a fresh token collides with an
// existing one.
const maxTokenAttempts = 3

// AddParticipant binds a contact to a meeting and issues its access token.
//
// The operation is idempotent: if the binding exists its token is returned
// unchanged, so re-adding a participant never invalidates a previously
// emailed link. The contact must be reachable by the meeting's organizer.
func (b *Backend) AddParticipant(ctx context.Context, organizer proto.Organizer, meetingID, contactID int64) (proto.ParticipantBinding, error) {
	var m models.Participant
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		meeting, err := b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}
		if meeting.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}
		switch proto.ParseMeetingStatus(meeting.Status) {
		case proto.StatusFinalized:
			return proto.ErrMeetingFinalized
		case proto.StatusCancelled:
			return proto.ErrMeetingCancelled
		}

		if err := b.requireInvitable(ctx, tx, organizer, contactID); err != nil {
			return err
		}

		m, err = b.addParticipant(ctx, tx, meetingID, contactID)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ParticipantBinding{}, proto.ErrMeetingNotFound
		}

		return proto.ParticipantBinding{}, err
	}

	return bindingFromModel(m), nil
}

// addParticipant creates the (meeting, contact) binding inside tx, returning
// the existing binding when one is already present. Token collisions with a
// different binding regenerate the token.
func (b *Backend) addParticipant(ctx context.Context, tx *db.Tx, meetingID, contactID int64) (models.Participant, error) {
	if m, err := b.store.GetParticipant(ctx, tx, meetingID, contactID); err == nil {
		return m, nil
	} else if !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
		return models.Participant{}, err
	}

	var lastErr error
	for i := 0; i < maxTokenAttempts; i++ {
		m, err := b.store.CreateParticipant(ctx, tx, meetingID, contactID, GenerateToken())
		if err == nil {
			return m, nil
		}

		lastErr = err
		if !errors.Is(db.WrapError(err), db.ErrDuplicateKey) {
			return models.Participant{}, err
		}

		// Either the binding was created concurrently or the fresh token
		// collided. Re-read to tell the two apart.
		if m, err := b.store.GetParticipant(ctx, tx, meetingID, contactID); err == nil {
			return m, nil
		}
	}

	return models.Participant{}, lastErr
}

// requireInvitable checks that the contact is one of the organizer's own or
// reachable through a group shared with them.
func (b *Backend) requireInvitable(ctx context.Context, tx *db.Tx, organizer proto.Organizer, contactID int64) error {
	contact, err := b.store.GetContactByID(ctx, tx, contactID)
	if err != nil {
		return db.WrapError(err)
	}

	if contact.OwnerID == organizer.ID {
		return nil
	}

	shared, err := b.store.ListSharedContacts(ctx, tx, organizer.Email)
	if err != nil {
		return err
	}
	for _, c := range shared {
		if c.ID == contactID {
			return nil
		}
	}

	return proto.ErrContactNotFound
}

// ResolveToken resolves a participant token to its meeting and contact.
//
// Unknown tokens yield proto.ErrTokenNotFound and nothing else, tokens leak
// no information beyond found or not found.
func (b *Backend) ResolveToken(ctx context.Context, token string) (proto.Participation, error) {
	if p, ok := b.cache.Get(token); ok {
		return p, nil
	}

	var p proto.Participation
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetParticipantByToken(ctx, tx, token)
		if err != nil {
			return db.WrapError(err)
		}

		meeting, err := b.store.GetMeetingByID(ctx, tx, m.MeetingID)
		if err != nil {
			return db.WrapError(err)
		}

		contact, err := b.store.GetContactByID(ctx, tx, m.ContactID)
		if err != nil {
			return db.WrapError(err)
		}

		p = proto.Participation{
			Meeting: meetingFromModel(meeting),
			Contact: contactFromModel(contact),
			Binding: bindingFromModel(m),
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Participation{}, proto.ErrTokenNotFound
		}

		b.logger.Error("error resolving participant token", "error", err)
		return proto.Participation{}, err
	}

	b.cache.Set(token, p)

	return p, nil
}

// MeetingParticipants returns the participants invited to a meeting the
// organizer owns, with their bindings.
func (b *Backend) MeetingParticipants(ctx context.Context, organizer proto.Organizer, meetingID int64) ([]proto.InvitedParticipant, error) {
	var participants []proto.InvitedParticipant
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		meeting, err := b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}
		if meeting.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		participants, err = b.invitedParticipants(ctx, tx, meetingID)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrMeetingNotFound
		}

		return nil, err
	}

	return participants, nil
}

// invitedParticipants joins a meeting's bindings with their contacts inside
// tx.
func (b *Backend) invitedParticipants(ctx context.Context, tx *db.Tx, meetingID int64) ([]proto.InvitedParticipant, error) {
	bindings, err := b.store.ListParticipantsByMeeting(ctx, tx, meetingID)
	if err != nil {
		return nil, err
	}

	contacts, err := b.store.ListParticipantContacts(ctx, tx, meetingID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Contact, len(contacts))
	for _, c := range contacts {
		byID[c.ID] = c
	}

	participants := make([]proto.InvitedParticipant, 0, len(bindings))
	for _, m := range bindings {
		participants = append(participants, proto.InvitedParticipant{
			Contact: contactFromModel(byID[m.ContactID]),
			Binding: bindingFromModel(m),
		})
	}

	return participants, nil
}

func bindingFromModel(m models.Participant) proto.ParticipantBinding {
	binding := proto.ParticipantBinding{
		MeetingID: m.MeetingID,
		ContactID: m.ContactID,
		Token:     m.Token,
		Responded: m.Responded,
		InvitedAt: m.InvitedAt,
	}
	if m.RespondedAt.Valid {
		binding.RespondedAt = m.RespondedAt.Time
	}

	return binding
}
