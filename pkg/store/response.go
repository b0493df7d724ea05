package store

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// ResponseStore is an interface for managing participant responses.
type ResponseStore interface {
	// UpsertResponse inserts the response row, or overwrites its
	// availability and timestamp when one already exists for the
	// (meeting, contact, slot) triple.
	UpsertResponse(ctx context.Context, h db.Handler, meetingID int64, contactID int64, slotID int64, availability string) error

	ListResponsesByMeeting(ctx context.Context, h db.Handler, meetingID int64) ([]models.Response, error)
	ListResponsesByParticipant(ctx context.Context, h db.Handler, meetingID int64, contactID int64) ([]models.Response, error)
	DeleteResponsesBySlot(ctx context.Context, h db.Handler, slotID int64) error
	DeleteResponsesByMeeting(ctx context.Context, h db.Handler, meetingID int64) error
}
