package proto

import (
	"encoding"
	"errors"
	"time"
)

// MeetingStatus is the lifecycle status of a meeting.
type MeetingStatus int

const (
	// StatusDraft is a meeting that has not sent invitations yet.
	StatusDraft MeetingStatus = iota

	// StatusSent is a meeting whose invitations have been dispatched.
	StatusSent

	// StatusFinalized is a meeting with a committed final slot. Terminal.
	StatusFinalized

	// StatusCancelled is a cancelled meeting. Terminal.
	StatusCancelled
)

// String returns the string representation of the meeting status.
func (s MeetingStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusSent:
		return "sent"
	case StatusFinalized:
		return "finalized"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseMeetingStatus parses a meeting status string.
func ParseMeetingStatus(s string) MeetingStatus {
	switch s {
	case "draft":
		return StatusDraft
	case "sent":
		return StatusSent
	case "finalized":
		return StatusFinalized
	case "cancelled":
		return StatusCancelled
	default:
		return MeetingStatus(-1)
	}
}

var (
	_ encoding.TextMarshaler   = MeetingStatus(0)
	_ encoding.TextUnmarshaler = (*MeetingStatus)(nil)
)

// ErrInvalidMeetingStatus is returned when an invalid meeting status is provided.
var ErrInvalidMeetingStatus = errors.New("invalid meeting status")

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *MeetingStatus) UnmarshalText(text []byte) error {
	m := ParseMeetingStatus(string(text))
	if m < 0 {
		return ErrInvalidMeetingStatus
	}

	*s = m

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s MeetingStatus) MarshalText() (text []byte, err error) {
	return []byte(s.String()), nil
}

// Meeting represents a schedulable meeting.
type Meeting struct {
	ID          int64
	OrganizerID int64
	Title       string
	Description string
	Status      MeetingStatus

	// FinalizedSlot is the human-readable rendering of the committed slot.
	// It is set exactly once, when the meeting is finalized.
	FinalizedSlot string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Accepting reports whether the meeting still accepts participant responses.
func (m Meeting) Accepting() bool {
	return m.Status == StatusDraft || m.Status == StatusSent
}

// InvitedParticipant pairs an invited contact with its binding.
type InvitedParticipant struct {
	Contact Contact
	Binding ParticipantBinding
}

// MeetingInvite is a meeting together with its slots and invited
// participants.
type MeetingInvite struct {
	Meeting      Meeting
	Slots        []TimeSlot
	Participants []InvitedParticipant
}

// ResponseReceipt summarizes a participant's submission.
type ResponseReceipt struct {
	Meeting   Meeting
	Contact   Contact
	Saved     int
	Responded time.Time
}

// FinalizeReceipt summarizes a committed finalization.
type FinalizeReceipt struct {
	Meeting   Meeting
	Slot      TimeSlot
	Invited   int
	Responded int
}
