package webhook

import (
	"context"
	"time"

	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/store"
)

// Participant is the participant payload fields.
type Participant struct {
	ContactID int64  `json:"contact_id" url:"contact_id"`
	Name      string `json:"name" url:"name"`
	Email     string `json:"email" url:"email"`
}

// SlotResponse is a single slot verdict in a response event.
type SlotResponse struct {
	SlotID       int64     `json:"slot_id" url:"slot_id"`
	StartsAt     time.Time `json:"starts_at" url:"starts_at"`
	Availability string    `json:"availability" url:"availability"`
}

// ResponseEvent is a participant response event.
type ResponseEvent struct {
	Common

	// Participant is the responding participant.
	Participant Participant `json:"participant" url:"participant"`
	// Responses is the list of slot verdicts submitted.
	Responses []SlotResponse `json:"responses" url:"responses"`
}

// NewResponseEvent builds a response event payload.
func NewResponseEvent(ctx context.Context, contact proto.Contact, meeting proto.Meeting, responses []proto.Response) (ResponseEvent, error) {
	payload := ResponseEvent{
		Participant: Participant{
			ContactID: contact.ID,
			Name:      contact.Name,
			Email:     contact.Email,
		},
		Common: Common{
			EventType: EventResponseReceived,
			Meeting: Meeting{
				ID:            meeting.ID,
				Title:         meeting.Title,
				Description:   meeting.Description,
				Status:        meeting.Status.String(),
				FinalizedSlot: meeting.FinalizedSlot,
				CreatedAt:     meeting.CreatedAt,
				UpdatedAt:     meeting.UpdatedAt,
			},
		},
	}

	cfg := config.FromContext(ctx)
	payload.Meeting.HTTPURL = meetingURL(cfg.HTTP.PublicURL, meeting.ID)

	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)

	// Find meeting owner. Response events are sent on behalf of the
	// participant, so the owner is also the sender.
	owner, err := datastore.GetOrganizerByID(ctx, dbx, meeting.OrganizerID)
	if err != nil {
		return ResponseEvent{}, db.WrapError(err)
	}

	payload.Meeting.Owner.ID = owner.ID
	payload.Meeting.Owner.Name = owner.Name
	payload.Meeting.Owner.Email = owner.Email
	payload.Sender = payload.Meeting.Owner

	slots, err := datastore.ListTimeSlotsByMeeting(ctx, dbx, meeting.ID)
	if err != nil {
		return ResponseEvent{}, db.WrapError(err)
	}

	starts := make(map[int64]time.Time, len(slots))
	for _, s := range slots {
		starts[s.ID] = s.StartsAt
	}

	for _, r := range responses {
		payload.Responses = append(payload.Responses, SlotResponse{
			SlotID:       r.SlotID,
			StartsAt:     starts[r.SlotID],
			Availability: r.Availability.String(),
		})
	}

	return payload, nil
}
