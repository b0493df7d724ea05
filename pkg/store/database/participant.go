package database

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
)

type participantStore struct{}

var _ store.ParticipantStore = (*participantStore)(nil)

// CreateParticipant implements store.ParticipantStore.
func (s *participantStore) CreateParticipant(ctx context.Context, h db.Handler, meetingID int64, contactID int64, token string) (models.Participant, error) {
	query := h.Rebind(`INSERT INTO meeting_participants (meeting_id, contact_id, token, responded, invited_at)
			VALUES (?, ?, ?, false, CURRENT_TIMESTAMP)`)
	if _, err := h.ExecContext(ctx, query, meetingID, contactID, token); err != nil {
		return models.Participant{}, err //nolint:wrapcheck
	}

	return s.GetParticipant(ctx, h, meetingID, contactID)
}

// GetParticipant implements store.ParticipantStore.
func (*participantStore) GetParticipant(ctx context.Context, h db.Handler, meetingID int64, contactID int64) (models.Participant, error) {
	query := h.Rebind(`SELECT * FROM meeting_participants WHERE meeting_id = ? AND contact_id = ?`)
	var m models.Participant
	err := h.GetContext(ctx, &m, query, meetingID, contactID)
	return m, err //nolint:wrapcheck
}

// GetParticipantByToken implements store.ParticipantStore.
func (*participantStore) GetParticipantByToken(ctx context.Context, h db.Handler, token string) (models.Participant, error) {
	query := h.Rebind(`SELECT * FROM meeting_participants WHERE token = ?`)
	var m models.Participant
	err := h.GetContext(ctx, &m, query, token)
	return m, err //nolint:wrapcheck
}

// ListParticipantsByMeeting implements store.ParticipantStore.
func (*participantStore) ListParticipantsByMeeting(ctx context.Context, h db.Handler, meetingID int64) ([]models.Participant, error) {
	query := h.Rebind(`SELECT * FROM meeting_participants WHERE meeting_id = ? ORDER BY invited_at, contact_id`)
	var m []models.Participant
	err := h.SelectContext(ctx, &m, query, meetingID)
	return m, err //nolint:wrapcheck
}

// ListPendingParticipants implements store.ParticipantStore.
func (*participantStore) ListPendingParticipants(ctx context.Context, h db.Handler, meetingID int64) ([]models.Participant, error) {
	query := h.Rebind(`SELECT * FROM meeting_participants WHERE meeting_id = ? AND responded = false ORDER BY invited_at, contact_id`)
	var m []models.Participant
	err := h.SelectContext(ctx, &m, query, meetingID)
	return m, err //nolint:wrapcheck
}

// ListParticipantContacts implements store.ParticipantStore.
func (*participantStore) ListParticipantContacts(ctx context.Context, h db.Handler, meetingID int64) ([]models.Contact, error) {
	query := h.Rebind(`SELECT contacts.*
			FROM contacts
			INNER JOIN meeting_participants ON meeting_participants.contact_id = contacts.id
			WHERE meeting_participants.meeting_id = ?
			ORDER BY contacts.name, contacts.email`)
	var m []models.Contact
	err := h.SelectContext(ctx, &m, query, meetingID)
	return m, err //nolint:wrapcheck
}

// MarkParticipantResponded implements store.ParticipantStore.
func (*participantStore) MarkParticipantResponded(ctx context.Context, h db.Handler, meetingID int64, contactID int64) error {
	query := h.Rebind(`UPDATE meeting_participants SET responded = true, responded_at = CURRENT_TIMESTAMP
			WHERE meeting_id = ? AND contact_id = ?`)
	_, err := h.ExecContext(ctx, query, meetingID, contactID)
	return err //nolint:wrapcheck
}

// CountParticipationsByContact implements store.ParticipantStore.
func (*participantStore) CountParticipationsByContact(ctx context.Context, h db.Handler, contactID int64) (int64, error) {
	query := h.Rebind(`SELECT COUNT(*) FROM meeting_participants WHERE contact_id = ?`)
	var n int64
	err := h.GetContext(ctx, &n, query, contactID)
	return n, err //nolint:wrapcheck
}

// DeleteParticipantsByMeeting implements store.ParticipantStore.
func (*participantStore) DeleteParticipantsByMeeting(ctx context.Context, h db.Handler, meetingID int64) error {
	query := h.Rebind(`DELETE FROM meeting_participants WHERE meeting_id = ?`)
	_, err := h.ExecContext(ctx, query, meetingID)
	return err //nolint:wrapcheck
}
