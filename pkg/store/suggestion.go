package store

import (
	"context"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// SuggestionStore is an interface for managing suggested alternative slots.
type SuggestionStore interface {
	// ReplaceSuggestion removes any previous suggestion by the same
	// (meeting, contact) pair and records the new one.
	ReplaceSuggestion(ctx context.Context, h db.Handler, meetingID int64, contactID int64, start time.Time, note string) error

	GetSuggestion(ctx context.Context, h db.Handler, meetingID int64, contactID int64) (models.SuggestedSlot, error)
	ListSuggestionsByMeeting(ctx context.Context, h db.Handler, meetingID int64) ([]models.SuggestedSlot, error)
	DeleteSuggestionsByMeeting(ctx context.Context, h db.Handler, meetingID int64) error
}
