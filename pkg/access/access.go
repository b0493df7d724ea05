package access

import (
	"encoding"
	"errors"
)

// AccessKind is the kind of access an organizer has to a contact group.
type AccessKind int // nolint: revive

const (
	// NoAccess does not allow access to the group.
	NoAccess AccessKind = iota

	// SharedAccess allows read-only access to a group owned by another
	// organizer.
	SharedAccess

	// OwnedAccess allows full access to a group the organizer owns.
	OwnedAccess
)

// String returns the string representation of the access kind.
func (a AccessKind) String() string {
	switch a {
	case NoAccess:
		return "no-access"
	case SharedAccess:
		return "shared"
	case OwnedAccess:
		return "owned"
	default:
		return "unknown"
	}
}

// ParseAccessKind parses an access kind string.
func ParseAccessKind(s string) AccessKind {
	switch s {
	case "no-access":
		return NoAccess
	case "shared":
		return SharedAccess
	case "owned":
		return OwnedAccess
	default:
		return AccessKind(-1)
	}
}

var (
	_ encoding.TextMarshaler   = AccessKind(0)
	_ encoding.TextUnmarshaler = (*AccessKind)(nil)
)

// ErrInvalidAccessKind is returned when an invalid access kind is provided.
var ErrInvalidAccessKind = errors.New("invalid access kind")

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccessKind) UnmarshalText(text []byte) error {
	k := ParseAccessKind(string(text))
	if k < 0 {
		return ErrInvalidAccessKind
	}

	*a = k

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a AccessKind) MarshalText() (text []byte, err error) {
	return []byte(a.String()), nil
}
