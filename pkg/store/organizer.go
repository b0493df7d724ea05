// Package store defines the storage interfaces for Convene.
package store

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// OrganizerStore is an interface for managing organizer accounts.
type OrganizerStore interface {
	CreateOrganizer(ctx context.Context, h db.Handler, email string, name string, passwordHash string, recoveryHash string) (models.Organizer, error)
	GetOrganizerByID(ctx context.Context, h db.Handler, id int64) (models.Organizer, error)
	GetOrganizerByEmail(ctx context.Context, h db.Handler, email string) (models.Organizer, error)
	ListOrganizers(ctx context.Context, h db.Handler) ([]models.Organizer, error)
	UpdateOrganizerName(ctx context.Context, h db.Handler, id int64, name string) error
	UpdateOrganizerPassword(ctx context.Context, h db.Handler, id int64, passwordHash string) error
}
