package webhook

import (
	"encoding"
	"errors"
	"time"
)

// Event is a webhook event type.
type Event int8

const (
	// EventMeetingSent is triggered when a meeting's invitations go out.
	EventMeetingSent Event = iota + 1
	// EventMeetingFinalized is triggered when a meeting time is confirmed.
	EventMeetingFinalized
	// EventMeetingCancelled is triggered when a meeting is cancelled.
	EventMeetingCancelled
	// EventResponseReceived is triggered when a participant responds.
	EventResponseReceived
)

var eventStrings = map[Event]string{
	EventMeetingSent:      "meeting.sent",
	EventMeetingFinalized: "meeting.finalized",
	EventMeetingCancelled: "meeting.cancelled",
	EventResponseReceived: "response.received",
}

// String returns the string representation of the event.
func (e Event) String() string {
	return eventStrings[e]
}

var stringEvent = map[string]Event{
	"meeting.sent":      EventMeetingSent,
	"meeting.finalized": EventMeetingFinalized,
	"meeting.cancelled": EventMeetingCancelled,
	"response.received": EventResponseReceived,
}

// ErrInvalidEvent is returned when the event is invalid.
var ErrInvalidEvent = errors.New("invalid event")

// ParseEvent parses an event string and returns the event.
func ParseEvent(s string) (Event, error) {
	if e, ok := stringEvent[s]; ok {
		return e, nil
	}

	return -1, ErrInvalidEvent
}

var (
	_ encoding.TextMarshaler   = Event(0)
	_ encoding.TextUnmarshaler = (*Event)(nil)
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Event) UnmarshalText(text []byte) error {
	ev, err := ParseEvent(string(text))
	if err != nil {
		return err
	}

	*e = ev
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Event) MarshalText() (text []byte, err error) {
	ev := e.String()
	if ev == "" {
		return nil, ErrInvalidEvent
	}

	return []byte(ev), nil
}

// EventPayload is a webhook event payload.
type EventPayload interface {
	// Event returns the event type.
	Event() Event

	// OrganizerID returns the organizer the payload belongs to.
	OrganizerID() int64
}

// Organizer is the organizer payload fields.
type Organizer struct {
	ID    int64  `json:"id" url:"id"`
	Name  string `json:"name" url:"name"`
	Email string `json:"email" url:"email"`
}

// Meeting is the meeting payload fields.
type Meeting struct {
	ID            int64     `json:"id" url:"id"`
	Title         string    `json:"title" url:"title"`
	Description   string    `json:"description" url:"description"`
	Status        string    `json:"status" url:"status"`
	FinalizedSlot string    `json:"finalized_slot,omitempty" url:"finalized_slot,omitempty"`
	HTTPURL       string    `json:"http_url" url:"http_url"`
	CreatedAt     time.Time `json:"created_at" url:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" url:"updated_at"`
	Owner         Organizer `json:"owner" url:"owner"`
}

// Common is the payload fields common to all events.
type Common struct {
	EventType Event     `json:"event" url:"event"`
	Meeting   Meeting   `json:"meeting" url:"meeting"`
	Sender    Organizer `json:"sender" url:"sender"`
}

// Event implements EventPayload.
func (c Common) Event() Event {
	return c.EventType
}

// OrganizerID implements EventPayload.
func (c Common) OrganizerID() int64 {
	return c.Meeting.Owner.ID
}
