package webhook

import (
	"context"

	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/store"
)

// MeetingEvent is a meeting payload.
type MeetingEvent struct {
	Common

	// Action is the meeting event action.
	Action MeetingEventAction `json:"action" url:"action"`
}

// MeetingEventAction is a meeting event action.
type MeetingEventAction string

const (
	// MeetingEventActionSent is a meeting invitations sent event.
	MeetingEventActionSent MeetingEventAction = "sent"
	// MeetingEventActionFinalized is a meeting finalized event.
	MeetingEventActionFinalized MeetingEventAction = "finalized"
	// MeetingEventActionCancelled is a meeting cancelled event.
	MeetingEventActionCancelled MeetingEventAction = "cancelled"
)

// NewMeetingEvent builds a meeting event payload.
func NewMeetingEvent(ctx context.Context, sender proto.Organizer, meeting proto.Meeting, action MeetingEventAction) (MeetingEvent, error) {
	var event Event
	switch action {
	case MeetingEventActionFinalized:
		event = EventMeetingFinalized
	case MeetingEventActionCancelled:
		event = EventMeetingCancelled
	default:
		event = EventMeetingSent
	}

	payload := MeetingEvent{
		Action: action,
		Common: Common{
			EventType: event,
			Meeting: Meeting{
				ID:            meeting.ID,
				Title:         meeting.Title,
				Description:   meeting.Description,
				Status:        meeting.Status.String(),
				FinalizedSlot: meeting.FinalizedSlot,
				CreatedAt:     meeting.CreatedAt,
				UpdatedAt:     meeting.UpdatedAt,
			},
			Sender: Organizer{
				ID:    sender.ID,
				Name:  sender.Name,
				Email: sender.Email,
			},
		},
	}

	cfg := config.FromContext(ctx)
	payload.Meeting.HTTPURL = meetingURL(cfg.HTTP.PublicURL, meeting.ID)

	// Find meeting owner.
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)
	owner, err := datastore.GetOrganizerByID(ctx, dbx, meeting.OrganizerID)
	if err != nil {
		return MeetingEvent{}, db.WrapError(err)
	}

	payload.Meeting.Owner.ID = owner.ID
	payload.Meeting.Owner.Name = owner.Name
	payload.Meeting.Owner.Email = owner.Email

	return payload, nil
}
