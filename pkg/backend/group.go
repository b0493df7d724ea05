package backend

import (
	"context"
	"errors"

	"github.com/convenehq/convene/pkg/access"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/utils"
)

// CreateGroup creates a contact group owned by the organizer.
func (b *Backend) CreateGroup(ctx context.Context, organizer proto.Organizer, name, description string) (proto.ContactGroup, error) {
	if err := utils.ValidateName(name); err != nil {
		return proto.ContactGroup{}, err
	}

	var m models.ContactGroup
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.CreateGroup(ctx, tx, organizer.ID, name, description)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrDuplicateKey) {
			return proto.ContactGroup{}, proto.ErrGroupExist
		}

		b.logger.Error("error creating group", "owner", organizer.ID, "name", name, "error", err)
		return proto.ContactGroup{}, err
	}

	return groupFromModel(m), nil
}

// Group finds a group the organizer can read, tagged with the access kind.
//
// Readable groups are the organizer's own and the ones shared with them.
func (b *Backend) Group(ctx context.Context, organizer proto.Organizer, id int64) (proto.GroupInfo, error) {
	var info proto.GroupInfo
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetGroupByID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		kind, err := b.groupAccess(ctx, tx, m, organizer)
		if err != nil {
			return err
		}
		if kind == access.NoAccess {
			return proto.ErrGroupNotFound
		}

		info = proto.GroupInfo{ContactGroup: groupFromModel(m), Access: kind}
		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.GroupInfo{}, proto.ErrGroupNotFound
		}

		return proto.GroupInfo{}, err
	}

	return info, nil
}

// Groups returns the union of the organizer's own groups and the groups
// shared with them, each tagged by access kind.
func (b *Backend) Groups(ctx context.Context, organizer proto.Organizer) ([]proto.GroupInfo, error) {
	var groups []proto.GroupInfo
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		owned, err := b.store.ListGroupsByOwner(ctx, tx, organizer.ID)
		if err != nil {
			return err
		}

		for _, m := range owned {
			groups = append(groups, proto.GroupInfo{ContactGroup: groupFromModel(m), Access: access.OwnedAccess})
		}

		shared, err := b.store.ListGroupsSharedWith(ctx, tx, organizer.Email)
		if err != nil {
			return err
		}

		for _, m := range shared {
			groups = append(groups, proto.GroupInfo{ContactGroup: groupFromModel(m), Access: access.SharedAccess})
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return groups, nil
}

// UpdateGroup renames a group. Owner-only, shared groups are read-only to
// grantees.
func (b *Backend) UpdateGroup(ctx context.Context, organizer proto.Organizer, id int64, name, description string) error {
	if err := utils.ValidateName(name); err != nil {
		return err
	}

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.requireGroupOwner(ctx, tx, id, organizer); err != nil {
			return err
		}

		return b.store.UpdateGroup(ctx, tx, id, name, description)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrGroupNotFound
		}
		if errors.Is(err, db.ErrDuplicateKey) {
			return proto.ErrGroupExist
		}

		return err
	}

	return nil
}

// DeleteGroup deletes a group along with its memberships and shares.
func (b *Backend) DeleteGroup(ctx context.Context, organizer proto.Organizer, id int64) error {
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.requireGroupOwner(ctx, tx, id, organizer); err != nil {
			return err
		}

		return b.store.DeleteGroup(ctx, tx, id)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrGroupNotFound
		}

		return err
	}

	return nil
}

// AddGroupMember adds one of the organizer's contacts to a group they own.
//
// The contact and group must share the same owner.
func (b *Backend) AddGroupMember(ctx context.Context, organizer proto.Organizer, groupID, contactID int64) error {
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.requireGroupOwner(ctx, tx, groupID, organizer); err != nil {
			return err
		}

		contact, err := b.store.GetContactByID(ctx, tx, contactID)
		if err != nil {
			return db.WrapError(err)
		}
		if contact.OwnerID != organizer.ID {
			return proto.ErrContactNotFound
		}

		return b.store.AddGroupMember(ctx, tx, groupID, contactID)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrContactNotFound
		}
		if errors.Is(err, db.ErrDuplicateKey) {
			return proto.ErrMemberExist
		}

		return err
	}

	return nil
}

// RemoveGroupMember removes a contact from a group the organizer owns.
// Removing a contact that is not a member is a no-op.
func (b *Backend) RemoveGroupMember(ctx context.Context, organizer proto.Organizer, groupID, contactID int64) error {
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.requireGroupOwner(ctx, tx, groupID, organizer); err != nil {
			return err
		}

		return b.store.RemoveGroupMember(ctx, tx, groupID, contactID)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrGroupNotFound
		}

		return err
	}

	return nil
}

// GroupMembers returns the contacts in a group the organizer can read.
func (b *Backend) GroupMembers(ctx context.Context, organizer proto.Organizer, groupID int64) ([]proto.Contact, error) {
	var members []proto.Contact
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetGroupByID(ctx, tx, groupID)
		if err != nil {
			return db.WrapError(err)
		}

		kind, err := b.groupAccess(ctx, tx, m, organizer)
		if err != nil {
			return err
		}
		if kind == access.NoAccess {
			return proto.ErrGroupNotFound
		}

		ms, err := b.store.ListGroupMembers(ctx, tx, groupID)
		if err != nil {
			return err
		}

		for _, c := range ms {
			members = append(members, contactFromModel(c))
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrGroupNotFound
		}

		return nil, err
	}

	return members, nil
}

// SetGroupShared flips a group's shared flag. Unsetting it revokes every
// grant in the same transaction.
func (b *Backend) SetGroupShared(ctx context.Context, organizer proto.Organizer, groupID int64, shared bool) error {
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.requireGroupOwner(ctx, tx, groupID, organizer); err != nil {
			return err
		}

		if err := b.store.SetGroupShared(ctx, tx, groupID, shared); err != nil {
			return err
		}

		if !shared {
			return b.store.DeleteGroupShares(ctx, tx, groupID)
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrGroupNotFound
		}

		return err
	}

	return nil
}

// GrantGroupShare grants another organizer read access to a shared group.
// Granting to the same email twice is a no-op.
func (b *Backend) GrantGroupShare(ctx context.Context, organizer proto.Organizer, groupID int64, granteeEmail string) error {
	granteeEmail = utils.SanitizeEmail(granteeEmail)
	if err := utils.ValidateEmail(granteeEmail); err != nil {
		return err
	}

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.requireGroupOwner(ctx, tx, groupID, organizer); err != nil {
			return err
		}

		m, err := b.store.GetGroupByID(ctx, tx, groupID)
		if err != nil {
			return db.WrapError(err)
		}
		if !m.Shared {
			return proto.ErrGroupNotShared
		}

		return b.store.GrantGroupShare(ctx, tx, groupID, granteeEmail)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil
		}
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrGroupNotFound
		}

		return err
	}

	return nil
}

// RevokeGroupShare revokes a grant. Independent of the shared flag, and a
// no-op when the grant does not exist.
func (b *Backend) RevokeGroupShare(ctx context.Context, organizer proto.Organizer, groupID int64, granteeEmail string) error {
	granteeEmail = utils.SanitizeEmail(granteeEmail)

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.requireGroupOwner(ctx, tx, groupID, organizer); err != nil {
			return err
		}

		return b.store.RevokeGroupShare(ctx, tx, groupID, granteeEmail)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrGroupNotFound
		}

		return err
	}

	return nil
}

// GroupShares lists the grants on a group the organizer owns.
func (b *Backend) GroupShares(ctx context.Context, organizer proto.Organizer, groupID int64) ([]proto.GroupShare, error) {
	var shares []proto.GroupShare
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.requireGroupOwner(ctx, tx, groupID, organizer); err != nil {
			return err
		}

		ms, err := b.store.ListGroupShares(ctx, tx, groupID)
		if err != nil {
			return err
		}

		for _, m := range ms {
			shares = append(shares, proto.GroupShare{
				GroupID:      m.GroupID,
				GranteeEmail: m.GranteeEmail,
				CreatedAt:    m.CreatedAt,
			})
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrGroupNotFound
		}

		return nil, err
	}

	return shares, nil
}

// requireGroupOwner loads the group and rejects mutation by anyone but the
// owner. Grantees of a shared group hold read-only access.
func (b *Backend) requireGroupOwner(ctx context.Context, tx *db.Tx, groupID int64, organizer proto.Organizer) error {
	m, err := b.store.GetGroupByID(ctx, tx, groupID)
	if err != nil {
		return db.WrapError(err)
	}

	if m.OwnerID != organizer.ID {
		return proto.ErrGroupAccessDenied
	}

	return nil
}

func (b *Backend) groupAccess(ctx context.Context, tx *db.Tx, m models.ContactGroup, organizer proto.Organizer) (access.AccessKind, error) {
	if m.OwnerID == organizer.ID {
		return access.OwnedAccess, nil
	}

	if m.Shared {
		shares, err := b.store.ListGroupShares(ctx, tx, m.ID)
		if err != nil {
			return access.NoAccess, err
		}

		for _, s := range shares {
			if s.GranteeEmail == organizer.Email {
				return access.SharedAccess, nil
			}
		}
	}

	return access.NoAccess, nil
}

func groupFromModel(m models.ContactGroup) proto.ContactGroup {
	return proto.ContactGroup{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		Shared:      m.Shared,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
