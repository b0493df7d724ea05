package models

import (
	"database/sql"
	"time"
)

// Participant binds a contact to a meeting through an access token.
type Participant struct {
	MeetingID   int64        `db:"meeting_id"`
	ContactID   int64        `db:"contact_id"`
	Token       string       `db:"token"`
	Responded   bool         `db:"responded"`
	RespondedAt sql.NullTime `db:"responded_at"`
	InvitedAt   time.Time    `db:"invited_at"`
}
