package database

import (
	"context"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
)

type meetingStore struct{}

var _ store.MeetingStore = (*meetingStore)(nil)

// CreateMeeting implements store.MeetingStore.
func (s *meetingStore) CreateMeeting(ctx context.Context, h db.Handler, organizerID int64, title string, description string) (models.Meeting, error) {
	query := h.Rebind(`INSERT INTO meetings (organizer_id, title, description, status, created_at, updated_at)
			VALUES (?, ?, ?, 'draft', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP) RETURNING id`)

	var id int64
	if err := h.GetContext(ctx, &id, query, organizerID, title, description); err != nil {
		return models.Meeting{}, err //nolint:wrapcheck
	}

	return s.GetMeetingByID(ctx, h, id)
}

// GetMeetingByID implements store.MeetingStore.
func (*meetingStore) GetMeetingByID(ctx context.Context, h db.Handler, id int64) (models.Meeting, error) {
	query := h.Rebind(`SELECT * FROM meetings WHERE id = ?`)
	var m models.Meeting
	err := h.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListMeetingsByOrganizer implements store.MeetingStore.
func (*meetingStore) ListMeetingsByOrganizer(ctx context.Context, h db.Handler, organizerID int64) ([]models.Meeting, error) {
	query := h.Rebind(`SELECT * FROM meetings WHERE organizer_id = ? ORDER BY created_at DESC, id DESC`)
	var m []models.Meeting
	err := h.SelectContext(ctx, &m, query, organizerID)
	return m, err //nolint:wrapcheck
}

// ListMeetingsByStatusUpdatedBefore implements store.MeetingStore.
func (*meetingStore) ListMeetingsByStatusUpdatedBefore(ctx context.Context, h db.Handler, status string, before time.Time) ([]models.Meeting, error) {
	query := h.Rebind(`SELECT * FROM meetings WHERE status = ? AND updated_at < ? ORDER BY updated_at`)
	var m []models.Meeting
	err := h.SelectContext(ctx, &m, query, status, before)
	return m, err //nolint:wrapcheck
}

// SetMeetingStatus implements store.MeetingStore.
func (*meetingStore) SetMeetingStatus(ctx context.Context, h db.Handler, id int64, status string) error {
	query := h.Rebind(`UPDATE meetings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, status, id)
	return err //nolint:wrapcheck
}

// FinalizeMeeting implements store.MeetingStore.
//
// The status predicate makes concurrent finalize attempts race through the
// database rather than through application locks. Exactly one caller observes
// an affected row.
func (*meetingStore) FinalizeMeeting(ctx context.Context, h db.Handler, id int64, finalizedSlot string) (bool, error) {
	query := h.Rebind(`UPDATE meetings SET status = 'finalized', finalized_slot = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = 'sent'`)
	r, err := h.ExecContext(ctx, query, finalizedSlot, id)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	n, err := r.RowsAffected()
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return n > 0, nil
}

// DeleteMeeting implements store.MeetingStore.
func (*meetingStore) DeleteMeeting(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`DELETE FROM meetings WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}
