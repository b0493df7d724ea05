package proto

import "time"

// ParticipantBinding binds a contact to a meeting through an opaque access
// token. The token is immutable once issued.
type ParticipantBinding struct {
	MeetingID   int64
	ContactID   int64
	Token       string
	Responded   bool
	RespondedAt time.Time
	InvitedAt   time.Time
}

// Participation is the resolved view of a participant token.
type Participation struct {
	Meeting Meeting
	Contact Contact
	Binding ParticipantBinding
}

// ParticipantView is everything a participant sees behind their response
// link: the meeting, its slots, their saved responses, and any pending
// suggestion.
type ParticipantView struct {
	Participation
	Slots      []TimeSlot
	Responses  []Response
	Suggestion *SuggestedSlot
}
