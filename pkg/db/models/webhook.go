package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Webhook is an outbound event subscription owned by an organizer.
type Webhook struct {
	ID          int64     `db:"id"`
	OrganizerID int64     `db:"organizer_id"`
	URL         string    `db:"url"`
	Secret      string    `db:"secret"`
	ContentType int       `db:"content_type"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// WebhookEvent subscribes a webhook to a single event kind.
type WebhookEvent struct {
	ID        int64     `db:"id"`
	WebhookID int64     `db:"webhook_id"`
	Event     int       `db:"event"`
	CreatedAt time.Time `db:"created_at"`
}

// WebhookDelivery records one delivery attempt, request and response
// both, so organizers can audit what left the system.
type WebhookDelivery struct {
	ID        uuid.UUID `db:"id"`
	WebhookID int64     `db:"webhook_id"`
	Event     int       `db:"event"`
	CreatedAt time.Time `db:"created_at"`

	RequestURL     string         `db:"request_url"`
	RequestMethod  string         `db:"request_method"`
	RequestHeaders string         `db:"request_headers"`
	RequestBody    string         `db:"request_body"`
	RequestError   sql.NullString `db:"request_error"`

	ResponseStatus  int    `db:"response_status"`
	ResponseHeaders string `db:"response_headers"`
	ResponseBody    string `db:"response_body"`
}
