// Package database provides database store implementations.
package database

import (
	"context"
	"strings"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
)

type organizerStore struct{}

var _ store.OrganizerStore = (*organizerStore)(nil)

// CreateOrganizer implements store.OrganizerStore.
func (s *organizerStore) CreateOrganizer(ctx context.Context, h db.Handler, email string, name string, passwordHash string, recoveryHash string) (models.Organizer, error) {
	email = strings.ToLower(email)
	query := h.Rebind(`INSERT INTO organizers (email, name, password_hash, recovery_hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP) RETURNING id`)

	var id int64
	if err := h.GetContext(ctx, &id, query, email, name, passwordHash, recoveryHash); err != nil {
		return models.Organizer{}, err //nolint:wrapcheck
	}

	return s.GetOrganizerByID(ctx, h, id)
}

// GetOrganizerByID implements store.OrganizerStore.
func (*organizerStore) GetOrganizerByID(ctx context.Context, h db.Handler, id int64) (models.Organizer, error) {
	query := h.Rebind(`SELECT * FROM organizers WHERE id = ?`)
	var m models.Organizer
	err := h.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// GetOrganizerByEmail implements store.OrganizerStore.
func (*organizerStore) GetOrganizerByEmail(ctx context.Context, h db.Handler, email string) (models.Organizer, error) {
	query := h.Rebind(`SELECT * FROM organizers WHERE email = ?`)
	var m models.Organizer
	err := h.GetContext(ctx, &m, query, strings.ToLower(email))
	return m, err //nolint:wrapcheck
}

// ListOrganizers implements store.OrganizerStore.
func (*organizerStore) ListOrganizers(ctx context.Context, h db.Handler) ([]models.Organizer, error) {
	query := h.Rebind(`SELECT * FROM organizers ORDER BY email`)
	var m []models.Organizer
	err := h.SelectContext(ctx, &m, query)
	return m, err //nolint:wrapcheck
}

// UpdateOrganizerName implements store.OrganizerStore.
func (*organizerStore) UpdateOrganizerName(ctx context.Context, h db.Handler, id int64, name string) error {
	query := h.Rebind(`UPDATE organizers SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, name, id)
	return err //nolint:wrapcheck
}

// UpdateOrganizerPassword implements store.OrganizerStore.
func (*organizerStore) UpdateOrganizerPassword(ctx context.Context, h db.Handler, id int64, passwordHash string) error {
	query := h.Rebind(`UPDATE organizers SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, passwordHash, id)
	return err //nolint:wrapcheck
}
