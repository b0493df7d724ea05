package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*organizerStore
	*contactStore
	*groupStore
	*meetingStore
	*slotStore
	*participantStore
	*responseStore
	*suggestionStore
	*settingsStore
	*webhookStore
}

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		organizerStore:   &organizerStore{},
		contactStore:     &contactStore{},
		groupStore:       &groupStore{},
		meetingStore:     &meetingStore{},
		slotStore:        &slotStore{},
		participantStore: &participantStore{},
		responseStore:    &responseStore{},
		suggestionStore:  &suggestionStore{},
		settingsStore:    &settingsStore{},
		webhookStore:     &webhookStore{},
	}

	return s
}
