// Package proto defines the domain types shared across Convene components.
package proto

import "time"

// Organizer represents an organizer account.
type Organizer struct {
	ID        int64
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
