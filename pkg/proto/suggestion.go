package proto

import "time"

// SuggestedSlot is a participant's proposed alternative meeting time. A
// meeting holds at most one suggestion per contact; a new suggestion replaces
// the previous one.
type SuggestedSlot struct {
	MeetingID      int64
	ContactID      int64
	SuggestedStart time.Time
	Note           string
	UpdatedAt      time.Time
}

// ParticipantSuggestion is a suggestion joined with the suggesting contact
// for the organizer view.
type ParticipantSuggestion struct {
	Contact        Contact
	SuggestedStart time.Time
	Note           string
	UpdatedAt      time.Time
}
