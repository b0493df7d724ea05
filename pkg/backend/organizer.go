package backend

import (
	"context"
	"errors"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/utils"
)

// Register creates a new organizer account.
//
// The recovery phrase is the only way to reset a lost password. Both secrets
// are stored as bcrypt hashes and never leave this boundary in plaintext.
func (b *Backend) Register(ctx context.Context, email, password, name, recoveryPhrase string) (proto.Organizer, error) {
	email = utils.SanitizeEmail(email)
	if err := utils.ValidateEmail(email); err != nil {
		return proto.Organizer{}, err
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return proto.Organizer{}, err
	}

	recoveryHash, err := HashPassword(recoveryPhrase)
	if err != nil {
		return proto.Organizer{}, err
	}

	var m models.Organizer
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.CreateOrganizer(ctx, tx, email, name, passwordHash, recoveryHash)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrDuplicateKey) {
			return proto.Organizer{}, proto.ErrOrganizerExist
		}

		b.logger.Error("error creating organizer", "email", email, "error", err)
		return proto.Organizer{}, err
	}

	return organizerFromModel(m), nil
}

// Authenticate verifies an organizer's credentials.
//
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (b *Backend) Authenticate(ctx context.Context, email, password string) (proto.Organizer, error) {
	email = utils.SanitizeEmail(email)

	var m models.Organizer
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.GetOrganizerByEmail(ctx, tx, email)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Organizer{}, proto.ErrUnauthorized
		}

		b.logger.Error("error finding organizer", "email", email, "error", err)
		return proto.Organizer{}, err
	}

	if !VerifyPassword(password, m.PasswordHash) {
		return proto.Organizer{}, proto.ErrUnauthorized
	}

	return organizerFromModel(m), nil
}

// ResetPassword replaces an organizer's password after checking the recovery
// phrase.
func (b *Backend) ResetPassword(ctx context.Context, email, recoveryPhrase, newPassword string) error {
	email = utils.SanitizeEmail(email)

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetOrganizerByEmail(ctx, tx, email)
		if err != nil {
			return db.WrapError(err)
		}

		if !VerifyPassword(recoveryPhrase, m.RecoveryHash) {
			return proto.ErrRecoveryMismatch
		}

		return b.store.UpdateOrganizerPassword(ctx, tx, m.ID, passwordHash)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrOrganizerNotFound
		}

		return err
	}

	return nil
}

// Organizer finds an organizer by email.
func (b *Backend) Organizer(ctx context.Context, email string) (proto.Organizer, error) {
	email = utils.SanitizeEmail(email)

	var m models.Organizer
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.GetOrganizerByEmail(ctx, tx, email)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Organizer{}, proto.ErrOrganizerNotFound
		}

		b.logger.Error("error finding organizer", "email", email, "error", err)
		return proto.Organizer{}, err
	}

	return organizerFromModel(m), nil
}

// OrganizerByID finds an organizer by ID.
func (b *Backend) OrganizerByID(ctx context.Context, id int64) (proto.Organizer, error) {
	var m models.Organizer
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.GetOrganizerByID(ctx, tx, id)
		return err
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Organizer{}, proto.ErrOrganizerNotFound
		}

		b.logger.Error("error finding organizer", "id", id, "error", err)
		return proto.Organizer{}, err
	}

	return organizerFromModel(m), nil
}

// Organizers returns all organizer accounts.
func (b *Backend) Organizers(ctx context.Context) ([]proto.Organizer, error) {
	var organizers []proto.Organizer
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ms, err := b.store.ListOrganizers(ctx, tx)
		if err != nil {
			return err
		}

		for _, m := range ms {
			organizers = append(organizers, organizerFromModel(m))
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return organizers, nil
}

// SetOrganizerName sets an organizer's display name.
func (b *Backend) SetOrganizerName(ctx context.Context, id int64, name string) error {
	if err := utils.ValidateName(name); err != nil {
		return err
	}

	return db.WrapError(
		b.db.TransactionContext(ctx, func(tx *db.Tx) error {
			return b.store.UpdateOrganizerName(ctx, tx, id, name)
		}),
	)
}

// SetPassword sets an organizer's password.
func (b *Backend) SetPassword(ctx context.Context, id int64, rawPassword string) error {
	passwordHash, err := HashPassword(rawPassword)
	if err != nil {
		return err
	}

	return db.WrapError(
		b.db.TransactionContext(ctx, func(tx *db.Tx) error {
			return b.store.UpdateOrganizerPassword(ctx, tx, id, passwordHash)
		}),
	)
}

func organizerFromModel(m models.Organizer) proto.Organizer {
	return proto.Organizer{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
