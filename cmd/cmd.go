package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/store"
	"github.com/convenehq/convene/pkg/store/database"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// InitBackendContext opens the database and seeds the command context
// with the store and backend. When CONVENE_ORGANIZER names a registered
// organizer, that account is placed in the context too, so admin
// subcommands act on its behalf.
func InitBackendContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	if err := ensureDataPath(cfg.DataPath); err != nil {
		return err
	}

	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	ctx = db.WithContext(ctx, dbx)

	dbstore := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, dbstore)

	be := backend.New(ctx, cfg, dbx, dbstore)
	ctx = backend.WithContext(ctx, be)

	if email, ok := os.LookupEnv("CONVENE_ORGANIZER"); ok {
		if organizer, err := be.Organizer(ctx, email); err == nil {
			ctx = proto.WithOrganizerContext(ctx, &organizer)
		}
	}

	cmd.SetContext(ctx)
	return nil
}

func ensureDataPath(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	return nil
}

// CloseDBContext closes the database opened by InitBackendContext.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	dbx := db.FromContext(cmd.Context())
	if dbx == nil {
		return nil
	}
	if err := dbx.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// CreateInitialOrganizers registers the organizer accounts listed in the
// configuration if they don't exist yet. Each new account gets a random
// password and a recovery phrase that is logged exactly once; the password
// is set through the reset endpoint using that phrase.
func CreateInitialOrganizers(ctx context.Context, cfg *config.Config, be *backend.Backend) error {
	logger := log.FromContext(ctx)
	for _, email := range cfg.InitialAdminEmails {
		if _, err := be.Organizer(ctx, email); err == nil {
			continue
		} else if !errors.Is(err, proto.ErrOrganizerNotFound) {
			return fmt.Errorf("look up organizer %q: %w", email, err)
		}

		phrase := uuid.NewString()
		if _, err := be.Register(ctx, email, uuid.NewString(), "", phrase); err != nil {
			return fmt.Errorf("create organizer %q: %w", email, err)
		}

		logger.Info("created initial organizer, reset the password with the recovery phrase",
			"email", email, "recovery_phrase", phrase)
	}

	return nil
}
