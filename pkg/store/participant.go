package store

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// ParticipantStore is an interface for managing participant bindings and
// their access tokens.
type ParticipantStore interface {
	CreateParticipant(ctx context.Context, h db.Handler, meetingID int64, contactID int64, token string) (models.Participant, error)
	GetParticipant(ctx context.Context, h db.Handler, meetingID int64, contactID int64) (models.Participant, error)
	GetParticipantByToken(ctx context.Context, h db.Handler, token string) (models.Participant, error)
	ListParticipantsByMeeting(ctx context.Context, h db.Handler, meetingID int64) ([]models.Participant, error)
	ListPendingParticipants(ctx context.Context, h db.Handler, meetingID int64) ([]models.Participant, error)

	// ListParticipantContacts returns the contacts invited to a meeting.
	ListParticipantContacts(ctx context.Context, h db.Handler, meetingID int64) ([]models.Contact, error)

	MarkParticipantResponded(ctx context.Context, h db.Handler, meetingID int64, contactID int64) error
	CountParticipationsByContact(ctx context.Context, h db.Handler, contactID int64) (int64, error)
	DeleteParticipantsByMeeting(ctx context.Context, h db.Handler, meetingID int64) error
}
