// Package backend implements the scheduling engine behind Convene.
package backend

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/notify"
	"github.com/convenehq/convene/pkg/store"
	"github.com/convenehq/convene/pkg/task"
)

// Backend is the Convene backend that handles organizers, contacts,
// meetings, and their collected responses.
type Backend struct {
	ctx      context.Context
	cfg      *config.Config
	db       *db.DB
	store    store.Store
	logger   *log.Logger
	cache    *cache
	manager  *task.Manager
	notifier notify.Notifier
}

// New returns a new Convene backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:      ctx,
		cfg:      cfg,
		db:       db,
		store:    st,
		logger:   logger,
		manager:  task.NewManager(ctx),
		notifier: notify.New(ctx, cfg),
	}

	// TODO: implement a proper caching interface
	cache := newCache(b, 1000)
	b.cache = cache

	return b
}
