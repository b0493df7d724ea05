package store

import (
	"context"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// MeetingStore is an interface for managing meetings and their lifecycle.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, h db.Handler, organizerID int64, title string, description string) (models.Meeting, error)
	GetMeetingByID(ctx context.Context, h db.Handler, id int64) (models.Meeting, error)
	ListMeetingsByOrganizer(ctx context.Context, h db.Handler, organizerID int64) ([]models.Meeting, error)
	ListMeetingsByStatusUpdatedBefore(ctx context.Context, h db.Handler, status string, before time.Time) ([]models.Meeting, error)
	SetMeetingStatus(ctx context.Context, h db.Handler, id int64, status string) error

	// FinalizeMeeting commits the finalized slot rendering iff the meeting
	// status is still "sent". It reports whether the transition took effect.
	FinalizeMeeting(ctx context.Context, h db.Handler, id int64, finalizedSlot string) (bool, error)

	DeleteMeeting(ctx context.Context, h db.Handler, id int64) error
}
