package models

import "time"

// ContactGroup represents a named set of contacts.
type ContactGroup struct {
	ID          int64     `db:"id"`
	OwnerID     int64     `db:"owner_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Shared      bool      `db:"shared"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// GroupMember represents a contact's membership in a group.
type GroupMember struct {
	GroupID   int64     `db:"group_id"`
	ContactID int64     `db:"contact_id"`
	CreatedAt time.Time `db:"created_at"`
}

// GroupShare grants another organizer read access to a group.
type GroupShare struct {
	GroupID      int64     `db:"group_id"`
	GranteeEmail string    `db:"grantee_email"`
	CreatedAt    time.Time `db:"created_at"`
}
