// Package notify delivers meeting notifications to contacts and organizers.
package notify

import "context"

// Kind is the kind of a notification.
type Kind int

const (
	// KindInvitation invites a participant to respond to a meeting.
	KindInvitation Kind = iota
	// KindReminder nudges a participant who has not responded yet.
	KindReminder
	// KindResponseReceived tells the organizer a participant responded.
	KindResponseReceived
	// KindScheduleUpdate tells a participant the proposed slots changed.
	KindScheduleUpdate
	// KindFinalized tells a participant the meeting time is confirmed.
	KindFinalized
	// KindCancelled tells a respondent the meeting was cancelled.
	KindCancelled
)

var kindStrings = map[Kind]string{
	KindInvitation:       "invitation",
	KindReminder:         "reminder",
	KindResponseReceived: "response-received",
	KindScheduleUpdate:   "schedule-update",
	KindFinalized:        "finalized",
	KindCancelled:        "cancelled",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}

	return "unknown"
}

// Outcome is the result of a delivery attempt.
type Outcome int

const (
	// OutcomeDelivered means the message was handed to the mail server.
	OutcomeDelivered Outcome = iota
	// OutcomeSimulated means delivery was logged instead of sent.
	OutcomeSimulated
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeSimulated:
		return "simulated"
	default:
		return "unknown"
	}
}

// Recipient is a notification recipient.
type Recipient struct {
	Name  string
	Email string
}

// Notification is a single message addressed to one recipient.
type Notification struct {
	Kind      Kind
	Recipient Recipient
	Subject   string
	Body      string
}

// Notifier delivers notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n Notification) (Outcome, error)
}
