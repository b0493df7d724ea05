package database

import (
	"context"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
)

type settingsStore struct{}

var _ store.SettingStore = (*settingsStore)(nil)

// SetSetting implements store.SettingStore.
func (*settingsStore) SetSetting(ctx context.Context, h db.Handler, organizerID int64, key string, value string) error {
	query := h.Rebind(`INSERT INTO settings (organizer_id, key, value, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (organizer_id, key) DO UPDATE
			SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`)
	_, err := h.ExecContext(ctx, query, organizerID, key, value)
	return err //nolint:wrapcheck
}

// GetSetting implements store.SettingStore.
func (*settingsStore) GetSetting(ctx context.Context, h db.Handler, organizerID int64, key string) (string, error) {
	query := h.Rebind(`SELECT value FROM settings WHERE organizer_id = ? AND key = ?`)
	var v string
	err := h.GetContext(ctx, &v, query, organizerID, key)
	return v, err //nolint:wrapcheck
}

// ListSettings implements store.SettingStore.
func (*settingsStore) ListSettings(ctx context.Context, h db.Handler, organizerID int64) ([]models.Settings, error) {
	query := h.Rebind(`SELECT * FROM settings WHERE organizer_id = ? ORDER BY key`)
	var m []models.Settings
	err := h.SelectContext(ctx, &m, query, organizerID)
	return m, err //nolint:wrapcheck
}

// DeleteSetting implements store.SettingStore.
func (*settingsStore) DeleteSetting(ctx context.Context, h db.Handler, organizerID int64, key string) error {
	query := h.Rebind(`DELETE FROM settings WHERE organizer_id = ? AND key = ?`)
	_, err := h.ExecContext(ctx, query, organizerID, key)
	return err //nolint:wrapcheck
}
