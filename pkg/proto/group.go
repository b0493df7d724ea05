package proto

import (
	"time"

	"github.com/convenehq/convene/pkg/access"
)

// ContactGroup represents a named set of contacts owned by one organizer.
type ContactGroup struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Shared      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GroupInfo is a contact group tagged with the access kind the requesting
// organizer has to it.
type GroupInfo struct {
	ContactGroup
	Access access.AccessKind
}

// GroupShare grants one organizer read access to another organizer's group.
// Grants exist only while the group's shared flag is set.
type GroupShare struct {
	GroupID      int64
	GranteeEmail string
	CreatedAt    time.Time
}
