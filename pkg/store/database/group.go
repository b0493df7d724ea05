package database

import (
	"context"
	"strings"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
)

type groupStore struct{}

var _ store.GroupStore = (*groupStore)(nil)

// CreateGroup implements store.GroupStore.
func (s *groupStore) CreateGroup(ctx context.Context, h db.Handler, ownerID int64, name string, description string) (models.ContactGroup, error) {
	query := h.Rebind(`INSERT INTO contact_groups (owner_id, name, description, shared, created_at, updated_at)
			VALUES (?, ?, ?, false, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP) RETURNING id`)

	var id int64
	if err := h.GetContext(ctx, &id, query, ownerID, name, description); err != nil {
		return models.ContactGroup{}, err //nolint:wrapcheck
	}

	return s.GetGroupByID(ctx, h, id)
}

// GetGroupByID implements store.GroupStore.
func (*groupStore) GetGroupByID(ctx context.Context, h db.Handler, id int64) (models.ContactGroup, error) {
	query := h.Rebind(`SELECT * FROM contact_groups WHERE id = ?`)
	var m models.ContactGroup
	err := h.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListGroupsByOwner implements store.GroupStore.
func (*groupStore) ListGroupsByOwner(ctx context.Context, h db.Handler, ownerID int64) ([]models.ContactGroup, error) {
	query := h.Rebind(`SELECT * FROM contact_groups WHERE owner_id = ? ORDER BY name`)
	var m []models.ContactGroup
	err := h.SelectContext(ctx, &m, query, ownerID)
	return m, err //nolint:wrapcheck
}

// ListGroupsSharedWith implements store.GroupStore.
func (*groupStore) ListGroupsSharedWith(ctx context.Context, h db.Handler, granteeEmail string) ([]models.ContactGroup, error) {
	query := h.Rebind(`SELECT contact_groups.*
			FROM contact_groups
			INNER JOIN group_shares ON group_shares.group_id = contact_groups.id
			WHERE group_shares.grantee_email = ?
			ORDER BY contact_groups.name`)
	var m []models.ContactGroup
	err := h.SelectContext(ctx, &m, query, strings.ToLower(granteeEmail))
	return m, err //nolint:wrapcheck
}

// UpdateGroup implements store.GroupStore.
func (*groupStore) UpdateGroup(ctx context.Context, h db.Handler, id int64, name string, description string) error {
	query := h.Rebind(`UPDATE contact_groups SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, name, description, id)
	return err //nolint:wrapcheck
}

// SetGroupShared implements store.GroupStore.
func (*groupStore) SetGroupShared(ctx context.Context, h db.Handler, id int64, shared bool) error {
	query := h.Rebind(`UPDATE contact_groups SET shared = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, shared, id)
	return err //nolint:wrapcheck
}

// DeleteGroup implements store.GroupStore.
func (*groupStore) DeleteGroup(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`DELETE FROM contact_groups WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// AddGroupMember implements store.GroupStore.
func (*groupStore) AddGroupMember(ctx context.Context, h db.Handler, groupID int64, contactID int64) error {
	query := h.Rebind(`INSERT INTO group_members (group_id, contact_id, created_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)`)
	_, err := h.ExecContext(ctx, query, groupID, contactID)
	return err //nolint:wrapcheck
}

// RemoveGroupMember implements store.GroupStore.
func (*groupStore) RemoveGroupMember(ctx context.Context, h db.Handler, groupID int64, contactID int64) error {
	query := h.Rebind(`DELETE FROM group_members WHERE group_id = ? AND contact_id = ?`)
	_, err := h.ExecContext(ctx, query, groupID, contactID)
	return err //nolint:wrapcheck
}

// ListGroupMembers implements store.GroupStore.
func (*groupStore) ListGroupMembers(ctx context.Context, h db.Handler, groupID int64) ([]models.Contact, error) {
	query := h.Rebind(`SELECT contacts.*
			FROM contacts
			INNER JOIN group_members ON group_members.contact_id = contacts.id
			WHERE group_members.group_id = ?
			ORDER BY contacts.name, contacts.email`)
	var m []models.Contact
	err := h.SelectContext(ctx, &m, query, groupID)
	return m, err //nolint:wrapcheck
}

// GrantGroupShare implements store.GroupStore.
func (*groupStore) GrantGroupShare(ctx context.Context, h db.Handler, groupID int64, granteeEmail string) error {
	query := h.Rebind(`INSERT INTO group_shares (group_id, grantee_email, created_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)`)
	_, err := h.ExecContext(ctx, query, groupID, strings.ToLower(granteeEmail))
	return err //nolint:wrapcheck
}

// RevokeGroupShare implements store.GroupStore.
func (*groupStore) RevokeGroupShare(ctx context.Context, h db.Handler, groupID int64, granteeEmail string) error {
	query := h.Rebind(`DELETE FROM group_shares WHERE group_id = ? AND grantee_email = ?`)
	_, err := h.ExecContext(ctx, query, groupID, strings.ToLower(granteeEmail))
	return err //nolint:wrapcheck
}

// ListGroupShares implements store.GroupStore.
func (*groupStore) ListGroupShares(ctx context.Context, h db.Handler, groupID int64) ([]models.GroupShare, error) {
	query := h.Rebind(`SELECT * FROM group_shares WHERE group_id = ? ORDER BY grantee_email`)
	var m []models.GroupShare
	err := h.SelectContext(ctx, &m, query, groupID)
	return m, err //nolint:wrapcheck
}

// DeleteGroupShares implements store.GroupStore.
func (*groupStore) DeleteGroupShares(ctx context.Context, h db.Handler, groupID int64) error {
	query := h.Rebind(`DELETE FROM group_shares WHERE group_id = ?`)
	_, err := h.ExecContext(ctx, query, groupID)
	return err //nolint:wrapcheck
}

// ListSharedContacts implements store.GroupStore.
func (*groupStore) ListSharedContacts(ctx context.Context, h db.Handler, granteeEmail string) ([]models.Contact, error) {
	query := h.Rebind(`SELECT DISTINCT contacts.*
			FROM contacts
			INNER JOIN group_members ON group_members.contact_id = contacts.id
			INNER JOIN group_shares ON group_shares.group_id = group_members.group_id
			WHERE group_shares.grantee_email = ?
			ORDER BY contacts.name, contacts.email`)
	var m []models.Contact
	err := h.SelectContext(ctx, &m, query, strings.ToLower(granteeEmail))
	return m, err //nolint:wrapcheck
}
