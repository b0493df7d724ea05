package database

import (
	"context"
	"strings"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
	"github.com/jmoiron/sqlx"
)

type contactStore struct{}

var _ store.ContactStore = (*contactStore)(nil)

// CreateContact implements store.ContactStore.
func (s *contactStore) CreateContact(ctx context.Context, h db.Handler, ownerID int64, name string, email string) (models.Contact, error) {
	email = strings.ToLower(email)
	query := h.Rebind(`INSERT INTO contacts (owner_id, name, email, created_at, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP) RETURNING id`)

	var id int64
	if err := h.GetContext(ctx, &id, query, ownerID, name, email); err != nil {
		return models.Contact{}, err //nolint:wrapcheck
	}

	return s.GetContactByID(ctx, h, id)
}

// GetContactByID implements store.ContactStore.
func (*contactStore) GetContactByID(ctx context.Context, h db.Handler, id int64) (models.Contact, error) {
	query := h.Rebind(`SELECT * FROM contacts WHERE id = ?`)
	var m models.Contact
	err := h.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// GetContactByOwnerAndEmail implements store.ContactStore.
func (*contactStore) GetContactByOwnerAndEmail(ctx context.Context, h db.Handler, ownerID int64, email string) (models.Contact, error) {
	query := h.Rebind(`SELECT * FROM contacts WHERE owner_id = ? AND email = ?`)
	var m models.Contact
	err := h.GetContext(ctx, &m, query, ownerID, strings.ToLower(email))
	return m, err //nolint:wrapcheck
}

// ListContactsByOwner implements store.ContactStore.
func (*contactStore) ListContactsByOwner(ctx context.Context, h db.Handler, ownerID int64) ([]models.Contact, error) {
	query := h.Rebind(`SELECT * FROM contacts WHERE owner_id = ? ORDER BY name, email`)
	var m []models.Contact
	err := h.SelectContext(ctx, &m, query, ownerID)
	return m, err //nolint:wrapcheck
}

// ListContactsByIDs implements store.ContactStore.
func (*contactStore) ListContactsByIDs(ctx context.Context, h db.Handler, ids []int64) ([]models.Contact, error) {
	var m []models.Contact
	if len(ids) == 0 {
		return m, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM contacts WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	query = h.Rebind(query)
	err = h.SelectContext(ctx, &m, query, args...)
	return m, err //nolint:wrapcheck
}

// UpdateContact implements store.ContactStore.
func (*contactStore) UpdateContact(ctx context.Context, h db.Handler, id int64, name string, email string) error {
	query := h.Rebind(`UPDATE contacts SET name = ?, email = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, name, strings.ToLower(email), id)
	return err //nolint:wrapcheck
}

// DeleteContact implements store.ContactStore.
func (*contactStore) DeleteContact(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`DELETE FROM contacts WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}
