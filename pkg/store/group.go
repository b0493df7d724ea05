package store

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// GroupStore is an interface for managing contact groups, their members, and
// sharing grants.
type GroupStore interface {
	CreateGroup(ctx context.Context, h db.Handler, ownerID int64, name string, description string) (models.ContactGroup, error)
	GetGroupByID(ctx context.Context, h db.Handler, id int64) (models.ContactGroup, error)
	ListGroupsByOwner(ctx context.Context, h db.Handler, ownerID int64) ([]models.ContactGroup, error)
	ListGroupsSharedWith(ctx context.Context, h db.Handler, granteeEmail string) ([]models.ContactGroup, error)
	UpdateGroup(ctx context.Context, h db.Handler, id int64, name string, description string) error
	SetGroupShared(ctx context.Context, h db.Handler, id int64, shared bool) error
	DeleteGroup(ctx context.Context, h db.Handler, id int64) error

	AddGroupMember(ctx context.Context, h db.Handler, groupID int64, contactID int64) error
	RemoveGroupMember(ctx context.Context, h db.Handler, groupID int64, contactID int64) error
	ListGroupMembers(ctx context.Context, h db.Handler, groupID int64) ([]models.Contact, error)

	GrantGroupShare(ctx context.Context, h db.Handler, groupID int64, granteeEmail string) error
	RevokeGroupShare(ctx context.Context, h db.Handler, groupID int64, granteeEmail string) error
	ListGroupShares(ctx context.Context, h db.Handler, groupID int64) ([]models.GroupShare, error)
	DeleteGroupShares(ctx context.Context, h db.Handler, groupID int64) error

	// ListSharedContacts returns the contacts reachable by an organizer
	// through groups shared with them.
	ListSharedContacts(ctx context.Context, h db.Handler, granteeEmail string) ([]models.Contact, error)
}
