package models

import "time"

// Settings represents a per-organizer settings record.
type Settings struct {
	ID          int64     `db:"id"`
	OrganizerID int64     `db:"organizer_id"`
	Key         string    `db:"key"`
	Value       string    `db:"value"`
	UpdatedAt   time.Time `db:"updated_at"`
}
