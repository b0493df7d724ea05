package models

import "time"

// SuggestedSlot is a participant's proposed alternative meeting time.
type SuggestedSlot struct {
	MeetingID      int64     `db:"meeting_id"`
	ContactID      int64     `db:"contact_id"`
	SuggestedStart time.Time `db:"suggested_start"`
	Note           string    `db:"note"`
	UpdatedAt      time.Time `db:"updated_at"`
}
