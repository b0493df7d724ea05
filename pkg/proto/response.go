package proto

import (
	"encoding"
	"errors"
	"time"
)

// Availability is a participant's verdict for one time slot.
type Availability int

const (
	// Available means the participant can attend the slot.
	Available Availability = iota

	// Maybe means the participant could attend the slot if needed.
	Maybe

	// Unavailable means the participant cannot attend the slot.
	Unavailable
)

// String returns the string representation of the availability.
func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Maybe:
		return "maybe"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ParseAvailability parses an availability string.
func ParseAvailability(s string) Availability {
	switch s {
	case "available":
		return Available
	case "maybe":
		return Maybe
	case "unavailable":
		return Unavailable
	default:
		return Availability(-1)
	}
}

var (
	_ encoding.TextMarshaler   = Availability(0)
	_ encoding.TextUnmarshaler = (*Availability)(nil)
)

// ErrInvalidAvailability is returned when an invalid availability is provided.
var ErrInvalidAvailability = errors.New("invalid availability")

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Availability) UnmarshalText(text []byte) error {
	v := ParseAvailability(string(text))
	if v < 0 {
		return ErrInvalidAvailability
	}

	*a = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Availability) MarshalText() (text []byte, err error) {
	return []byte(a.String()), nil
}

// Response records a participant's availability for one slot of a meeting.
type Response struct {
	MeetingID    int64
	ContactID    int64
	SlotID       int64
	Availability Availability
	UpdatedAt    time.Time
}
