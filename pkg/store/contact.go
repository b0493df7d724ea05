package store

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// ContactStore is an interface for managing contacts.
type ContactStore interface {
	CreateContact(ctx context.Context, h db.Handler, ownerID int64, name string, email string) (models.Contact, error)
	GetContactByID(ctx context.Context, h db.Handler, id int64) (models.Contact, error)
	GetContactByOwnerAndEmail(ctx context.Context, h db.Handler, ownerID int64, email string) (models.Contact, error)
	ListContactsByOwner(ctx context.Context, h db.Handler, ownerID int64) ([]models.Contact, error)
	ListContactsByIDs(ctx context.Context, h db.Handler, ids []int64) ([]models.Contact, error)
	UpdateContact(ctx context.Context, h db.Handler, id int64, name string, email string) error
	DeleteContact(ctx context.Context, h db.Handler, id int64) error
}
