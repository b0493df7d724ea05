package models

import "time"

// Contact represents a person an organizer can invite.
type Contact struct {
	ID        int64     `db:"id"`
	OwnerID   int64     `db:"owner_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
