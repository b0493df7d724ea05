package models

import "time"

// Response records a participant's availability for one slot.
type Response struct {
	MeetingID    int64     `db:"meeting_id"`
	ContactID    int64     `db:"contact_id"`
	SlotID       int64     `db:"slot_id"`
	Availability string    `db:"availability"`
	UpdatedAt    time.Time `db:"updated_at"`
}
