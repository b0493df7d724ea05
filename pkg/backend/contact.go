package backend

import (
	"context"
	"errors"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/utils"
)

// CreateContact creates a contact in the organizer's private contact list.
//
// Creation is idempotent per (owner, email): when the address is already on
// the list the existing contact is returned unchanged. The unique constraint
// is the source of truth, concurrent identical requests race through the
// database and the loser re-reads the winner's row.
func (b *Backend) CreateContact(ctx context.Context, organizer proto.Organizer, name, email string) (proto.Contact, error) {
	email = utils.SanitizeEmail(email)
	if err := utils.ValidateEmail(email); err != nil {
		return proto.Contact{}, err
	}
	if err := utils.ValidateName(name); err != nil {
		return proto.Contact{}, err
	}

	var m models.Contact
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.CreateContact(ctx, tx, organizer.ID, name, email)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if !errors.Is(err, db.ErrDuplicateKey) {
			b.logger.Error("error creating contact", "owner", organizer.ID, "email", email, "error", err)
			return proto.Contact{}, err
		}

		if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
			var err error
			m, err = b.store.GetContactByOwnerAndEmail(ctx, tx, organizer.ID, email)
			return err
		}); err != nil {
			return proto.Contact{}, db.WrapError(err)
		}
	}

	return contactFromModel(m), nil
}

// Contact finds a contact in the organizer's contact list.
func (b *Backend) Contact(ctx context.Context, organizer proto.Organizer, id int64) (proto.Contact, error) {
	var m models.Contact
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.GetContactByID(ctx, tx, id)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Contact{}, proto.ErrContactNotFound
		}

		b.logger.Error("error finding contact", "id", id, "error", err)
		return proto.Contact{}, err
	}

	// Contacts are private. Existence is not revealed across owners.
	if m.OwnerID != organizer.ID {
		return proto.Contact{}, proto.ErrContactNotFound
	}

	return contactFromModel(m), nil
}

// Contacts returns the organizer's contact list, name-ordered.
func (b *Backend) Contacts(ctx context.Context, organizer proto.Organizer) ([]proto.Contact, error) {
	var contacts []proto.Contact
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ms, err := b.store.ListContactsByOwner(ctx, tx, organizer.ID)
		if err != nil {
			return err
		}

		for _, m := range ms {
			contacts = append(contacts, contactFromModel(m))
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return contacts, nil
}

// SharedContacts returns the contacts reachable by the organizer through
// groups shared with them.
func (b *Backend) SharedContacts(ctx context.Context, organizer proto.Organizer) ([]proto.Contact, error) {
	var contacts []proto.Contact
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ms, err := b.store.ListSharedContacts(ctx, tx, organizer.Email)
		if err != nil {
			return err
		}

		for _, m := range ms {
			contacts = append(contacts, contactFromModel(m))
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return contacts, nil
}

// UpdateContact updates a contact's name and email.
func (b *Backend) UpdateContact(ctx context.Context, organizer proto.Organizer, id int64, name, email string) error {
	email = utils.SanitizeEmail(email)
	if err := utils.ValidateEmail(email); err != nil {
		return err
	}
	if err := utils.ValidateName(name); err != nil {
		return err
	}

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetContactByID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		if m.OwnerID != organizer.ID {
			return proto.ErrContactNotFound
		}

		return b.store.UpdateContact(ctx, tx, id, name, email)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrContactNotFound
		}
		if errors.Is(err, db.ErrDuplicateKey) {
			return proto.ErrContactExist
		}

		return err
	}

	return nil
}

// DeleteContact deletes a contact from the organizer's list.
//
// A contact still bound to any meeting cannot be deleted.
func (b *Backend) DeleteContact(ctx context.Context, organizer proto.Organizer, id int64) error {
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetContactByID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		if m.OwnerID != organizer.ID {
			return proto.ErrContactNotFound
		}

		n, err := b.store.CountParticipationsByContact(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}
		if n > 0 {
			return proto.ErrContactInUse
		}

		return b.store.DeleteContact(ctx, tx, id)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrContactNotFound
		}

		return err
	}

	return nil
}

func contactFromModel(m models.Contact) proto.Contact {
	return proto.Contact{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
