package models

import (
	"database/sql"
	"time"
)

// Meeting represents a schedulable meeting.
type Meeting struct {
	ID            int64          `db:"id"`
	OrganizerID   int64          `db:"organizer_id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Status        string         `db:"status"`
	FinalizedSlot sql.NullString `db:"finalized_slot"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
