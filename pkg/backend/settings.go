package backend

import (
	"context"
	"errors"
	"strconv"

	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/proto"
)

// Setting keys recognized by the backend. SMTP overrides let an organizer
// deliver mail through their own server instead of the global one.
const (
	SettingBaseURL      = "base_url"
	SettingSMTPHost     = "smtp.host"
	SettingSMTPPort     = "smtp.port"
	SettingSMTPUsername = "smtp.username"
	SettingSMTPPassword = "smtp.password"
	SettingSMTPFrom     = "smtp.from"
	SettingSMTPTLS      = "smtp.tls"
)

// Settings returns the organizer's settings as a key-value map.
func (b *Backend) Settings(ctx context.Context, organizer proto.Organizer) (map[string]string, error) {
	settings := make(map[string]string)
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ms, err := b.store.ListSettings(ctx, tx, organizer.ID)
		if err != nil {
			return err
		}

		for _, m := range ms {
			settings[m.Key] = m.Value
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return settings, nil
}

// SetSetting stores one of the organizer's settings.
func (b *Backend) SetSetting(ctx context.Context, organizer proto.Organizer, key, value string) error {
	return db.WrapError(
		b.db.TransactionContext(ctx, func(tx *db.Tx) error {
			return b.store.SetSetting(ctx, tx, organizer.ID, key, value)
		}),
	)
}

// DeleteSetting removes one of the organizer's settings, falling back to the
// server-wide value.
func (b *Backend) DeleteSetting(ctx context.Context, organizer proto.Organizer, key string) error {
	return db.WrapError(
		b.db.TransactionContext(ctx, func(tx *db.Tx) error {
			return b.store.DeleteSetting(ctx, tx, organizer.ID, key)
		}),
	)
}

// organizerSMTP merges the organizer's SMTP overrides over the server
// configuration. Empty or unreadable values keep the server default.
func (b *Backend) organizerSMTP(ctx context.Context, organizerID int64) config.SMTPConfig {
	smtp := b.cfg.SMTP

	var ms map[string]string
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		settings, err := b.store.ListSettings(ctx, tx, organizerID)
		if err != nil {
			return err
		}

		ms = make(map[string]string, len(settings))
		for _, m := range settings {
			ms[m.Key] = m.Value
		}

		return nil
	}); err != nil {
		if !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			b.logger.Error("error loading organizer settings", "organizer", organizerID, "error", err)
		}
		return smtp
	}

	if v := ms[SettingSMTPHost]; v != "" {
		smtp.Host = v
	}
	if v := ms[SettingSMTPPort]; v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			smtp.Port = port
		}
	}
	if v := ms[SettingSMTPUsername]; v != "" {
		smtp.Username = v
	}
	if v := ms[SettingSMTPPassword]; v != "" {
		smtp.Password = v
	}
	if v := ms[SettingSMTPFrom]; v != "" {
		smtp.From = v
	}
	if v := ms[SettingSMTPTLS]; v != "" {
		if tls, err := strconv.ParseBool(v); err == nil {
			smtp.TLS = tls
		}
	}

	return smtp
}

// organizerBaseURL returns the base URL used in the organizer's outbound
// links, honoring the base_url setting override.
func (b *Backend) organizerBaseURL(ctx context.Context, organizerID int64) string {
	base := b.cfg.HTTP.PublicURL

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		v, err := b.store.GetSetting(ctx, tx, organizerID, SettingBaseURL)
		if err != nil {
			return err
		}
		if v != "" {
			base = v
		}

		return nil
	}); err != nil && !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
		b.logger.Error("error loading organizer base url", "organizer", organizerID, "error", err)
	}

	return base
}
