package database

import (
	"context"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
)

type slotStore struct{}

var _ store.SlotStore = (*slotStore)(nil)

// CreateTimeSlot implements store.SlotStore.
func (s *slotStore) CreateTimeSlot(ctx context.Context, h db.Handler, meetingID int64, startsAt time.Time, durationMinutes int) (models.TimeSlot, error) {
	query := h.Rebind(`INSERT INTO time_slots (meeting_id, starts_at, duration_minutes, created_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id`)

	var id int64
	if err := h.GetContext(ctx, &id, query, meetingID, startsAt.UTC(), durationMinutes); err != nil {
		return models.TimeSlot{}, err //nolint:wrapcheck
	}

	return s.GetTimeSlotByID(ctx, h, id)
}

// GetTimeSlotByID implements store.SlotStore.
func (*slotStore) GetTimeSlotByID(ctx context.Context, h db.Handler, id int64) (models.TimeSlot, error) {
	query := h.Rebind(`SELECT * FROM time_slots WHERE id = ?`)
	var m models.TimeSlot
	err := h.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListTimeSlotsByMeeting implements store.SlotStore.
func (*slotStore) ListTimeSlotsByMeeting(ctx context.Context, h db.Handler, meetingID int64) ([]models.TimeSlot, error) {
	query := h.Rebind(`SELECT * FROM time_slots WHERE meeting_id = ? ORDER BY starts_at, id`)
	var m []models.TimeSlot
	err := h.SelectContext(ctx, &m, query, meetingID)
	return m, err //nolint:wrapcheck
}

// DeleteTimeSlot implements store.SlotStore.
func (*slotStore) DeleteTimeSlot(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`DELETE FROM time_slots WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// DeleteTimeSlotsByMeeting implements store.SlotStore.
func (*slotStore) DeleteTimeSlotsByMeeting(ctx context.Context, h db.Handler, meetingID int64) error {
	query := h.Rebind(`DELETE FROM time_slots WHERE meeting_id = ?`)
	_, err := h.ExecContext(ctx, query, meetingID)
	return err //nolint:wrapcheck
}
