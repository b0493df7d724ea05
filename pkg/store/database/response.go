package database

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
)

type responseStore struct{}

var _ store.ResponseStore = (*responseStore)(nil)

// UpsertResponse implements store.ResponseStore.
func (*responseStore) UpsertResponse(ctx context.Context, h db.Handler, meetingID int64, contactID int64, slotID int64, availability string) error {
	query := h.Rebind(`INSERT INTO responses (meeting_id, contact_id, slot_id, availability, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (meeting_id, contact_id, slot_id) DO UPDATE
			SET availability = excluded.availability, updated_at = CURRENT_TIMESTAMP`)
	_, err := h.ExecContext(ctx, query, meetingID, contactID, slotID, availability)
	return err //nolint:wrapcheck
}

// ListResponsesByMeeting implements store.ResponseStore.
func (*responseStore) ListResponsesByMeeting(ctx context.Context, h db.Handler, meetingID int64) ([]models.Response, error) {
	query := h.Rebind(`SELECT * FROM responses WHERE meeting_id = ? ORDER BY slot_id, contact_id`)
	var m []models.Response
	err := h.SelectContext(ctx, &m, query, meetingID)
	return m, err //nolint:wrapcheck
}

// ListResponsesByParticipant implements store.ResponseStore.
func (*responseStore) ListResponsesByParticipant(ctx context.Context, h db.Handler, meetingID int64, contactID int64) ([]models.Response, error) {
	query := h.Rebind(`SELECT * FROM responses WHERE meeting_id = ? AND contact_id = ? ORDER BY slot_id`)
	var m []models.Response
	err := h.SelectContext(ctx, &m, query, meetingID, contactID)
	return m, err //nolint:wrapcheck
}

// DeleteResponsesBySlot implements store.ResponseStore.
func (*responseStore) DeleteResponsesBySlot(ctx context.Context, h db.Handler, slotID int64) error {
	query := h.Rebind(`DELETE FROM responses WHERE slot_id = ?`)
	_, err := h.ExecContext(ctx, query, slotID)
	return err //nolint:wrapcheck
}

// DeleteResponsesByMeeting implements store.ResponseStore.
func (*responseStore) DeleteResponsesByMeeting(ctx context.Context, h db.Handler, meetingID int64) error {
	query := h.Rebind(`DELETE FROM responses WHERE meeting_id = ?`)
	_, err := h.ExecContext(ctx, query, meetingID)
	return err //nolint:wrapcheck
}
