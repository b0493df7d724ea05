package proto

import "time"

// Contact represents a person an organizer can invite to meetings. Contacts
// are private to their owning organizer unless reached through a shared
// group.
type Contact struct {
	ID        int64
	OwnerID   int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
