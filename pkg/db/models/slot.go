package models

import "time"

// TimeSlot represents a candidate start time proposed for a meeting.
type TimeSlot struct {
	ID              int64     `db:"id"`
	MeetingID       int64     `db:"meeting_id"`
	StartsAt        time.Time `db:"starts_at"`
	DurationMinutes int       `db:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at"`
}
