package store

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
)

// SettingStore is an interface for managing per-organizer settings.
type SettingStore interface {
	SetSetting(ctx context.Context, h db.Handler, organizerID int64, key string, value string) error
	GetSetting(ctx context.Context, h db.Handler, organizerID int64, key string) (string, error)
	ListSettings(ctx context.Context, h db.Handler, organizerID int64) ([]models.Settings, error)
	DeleteSetting(ctx context.Context, h db.Handler, organizerID int64, key string) error
}
