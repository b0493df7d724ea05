package store

import (
	"context"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// SlotStore is an interface for managing meeting time slots.
type SlotStore interface {
	CreateTimeSlot(ctx context.Context, h db.Handler, meetingID int64, startsAt time.Time, durationMinutes int) (models.TimeSlot, error)
	GetTimeSlotByID(ctx context.Context, h db.Handler, id int64) (models.TimeSlot, error)
	ListTimeSlotsByMeeting(ctx context.Context, h db.Handler, meetingID int64) ([]models.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, h db.Handler, id int64) error
	DeleteTimeSlotsByMeeting(ctx context.Context, h db.Handler, meetingID int64) error
}
