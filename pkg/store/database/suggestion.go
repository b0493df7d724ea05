package database

import (
	"context"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
)

type suggestionStore struct{}

var _ store.SuggestionStore = (*suggestionStore)(nil)

// ReplaceSuggestion implements store.SuggestionStore.
func (*suggestionStore) ReplaceSuggestion(ctx context.Context, h db.Handler, meetingID int64, contactID int64, start time.Time, note string) error {
	query := h.Rebind(`DELETE FROM suggested_slots WHERE meeting_id = ? AND contact_id = ?`)
	if _, err := h.ExecContext(ctx, query, meetingID, contactID); err != nil {
		return err //nolint:wrapcheck
	}

	query = h.Rebind(`INSERT INTO suggested_slots (meeting_id, contact_id, suggested_start, note, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`)
	_, err := h.ExecContext(ctx, query, meetingID, contactID, start.UTC(), note)
	return err //nolint:wrapcheck
}

// GetSuggestion implements store.SuggestionStore.
func (*suggestionStore) GetSuggestion(ctx context.Context, h db.Handler, meetingID int64, contactID int64) (models.SuggestedSlot, error) {
	query := h.Rebind(`SELECT * FROM suggested_slots WHERE meeting_id = ? AND contact_id = ?`)
	var m models.SuggestedSlot
	err := h.GetContext(ctx, &m, query, meetingID, contactID)
	return m, err //nolint:wrapcheck
}

// ListSuggestionsByMeeting implements store.SuggestionStore.
func (*suggestionStore) ListSuggestionsByMeeting(ctx context.Context, h db.Handler, meetingID int64) ([]models.SuggestedSlot, error) {
	query := h.Rebind(`SELECT * FROM suggested_slots WHERE meeting_id = ? ORDER BY suggested_start, contact_id`)
	var m []models.SuggestedSlot
	err := h.SelectContext(ctx, &m, query, meetingID)
	return m, err //nolint:wrapcheck
}

// DeleteSuggestionsByMeeting implements store.SuggestionStore.
func (*suggestionStore) DeleteSuggestionsByMeeting(ctx context.Context, h db.Handler, meetingID int64) error {
	query := h.Rebind(`DELETE FROM suggested_slots WHERE meeting_id = ?`)
	_, err := h.ExecContext(ctx, query, meetingID)
	return err //nolint:wrapcheck
}
