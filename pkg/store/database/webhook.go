package database

import (
	"context"
	"database/sql"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type webhookStore struct{}

var _ store.WebhookStore = (*webhookStore)(nil)

// GetWebhookByID implements store.WebhookStore.
func (*webhookStore) GetWebhookByID(ctx context.Context, h db.Handler, organizerID int64, id int64) (models.Webhook, error) {
	query := h.Rebind(`SELECT * FROM webhooks WHERE organizer_id = ? AND id = ?`)
	var m models.Webhook
	err := h.GetContext(ctx, &m, query, organizerID, id)
	return m, err //nolint:wrapcheck
}

// GetWebhooksByOrganizerID implements store.WebhookStore.
func (*webhookStore) GetWebhooksByOrganizerID(ctx context.Context, h db.Handler, organizerID int64) ([]models.Webhook, error) {
	query := h.Rebind(`SELECT * FROM webhooks WHERE organizer_id = ? ORDER BY id`)
	var m []models.Webhook
	err := h.SelectContext(ctx, &m, query, organizerID)
	return m, err //nolint:wrapcheck
}

// GetWebhooksByOrganizerIDWhereEvent implements store.WebhookStore.
func (*webhookStore) GetWebhooksByOrganizerIDWhereEvent(ctx context.Context, h db.Handler, organizerID int64, events []int) ([]models.Webhook, error) {
	var m []models.Webhook
	if len(events) == 0 {
		return m, nil
	}

	query, args, err := sqlx.In(`SELECT DISTINCT webhooks.*
			FROM webhooks
			INNER JOIN webhook_events ON webhook_events.webhook_id = webhooks.id
			WHERE webhooks.organizer_id = ? AND webhook_events.event IN (?)`, organizerID, events)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	query = h.Rebind(query)
	err = h.SelectContext(ctx, &m, query, args...)
	return m, err //nolint:wrapcheck
}

// CreateWebhook implements store.WebhookStore.
func (*webhookStore) CreateWebhook(ctx context.Context, h db.Handler, organizerID int64, url string, secret string, contentType int, active bool) (int64, error) {
	query := h.Rebind(`INSERT INTO webhooks (organizer_id, url, secret, content_type, active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP) RETURNING id`)
	var id int64
	err := h.GetContext(ctx, &id, query, organizerID, url, secret, contentType, active)
	return id, err //nolint:wrapcheck
}

// UpdateWebhookByID implements store.WebhookStore.
func (*webhookStore) UpdateWebhookByID(ctx context.Context, h db.Handler, organizerID int64, id int64, url string, secret string, contentType int, active bool) error {
	query := h.Rebind(`UPDATE webhooks SET url = ?, secret = ?, content_type = ?, active = ?, updated_at = CURRENT_TIMESTAMP
			WHERE organizer_id = ? AND id = ?`)
	_, err := h.ExecContext(ctx, query, url, secret, contentType, active, organizerID, id)
	return err //nolint:wrapcheck
}

// DeleteWebhookForOrganizerByID implements store.WebhookStore.
func (*webhookStore) DeleteWebhookForOrganizerByID(ctx context.Context, h db.Handler, organizerID int64, id int64) error {
	query := h.Rebind(`DELETE FROM webhooks WHERE organizer_id = ? AND id = ?`)
	_, err := h.ExecContext(ctx, query, organizerID, id)
	return err //nolint:wrapcheck
}

// GetWebhookEventsByWebhookID implements store.WebhookStore.
func (*webhookStore) GetWebhookEventsByWebhookID(ctx context.Context, h db.Handler, webhookID int64) ([]models.WebhookEvent, error) {
	query := h.Rebind(`SELECT * FROM webhook_events WHERE webhook_id = ? ORDER BY event`)
	var m []models.WebhookEvent
	err := h.SelectContext(ctx, &m, query, webhookID)
	return m, err //nolint:wrapcheck
}

// CreateWebhookEvents implements store.WebhookStore.
func (*webhookStore) CreateWebhookEvents(ctx context.Context, h db.Handler, webhookID int64, events []int) error {
	query := h.Rebind(`INSERT INTO webhook_events (webhook_id, event, created_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)`)
	for _, event := range events {
		if _, err := h.ExecContext(ctx, query, webhookID, event); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

// DeleteWebhookEventsByID implements store.WebhookStore.
func (*webhookStore) DeleteWebhookEventsByID(ctx context.Context, h db.Handler, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM webhook_events WHERE id IN (?)`, ids)
	if err != nil {
		return err //nolint:wrapcheck
	}

	query = h.Rebind(query)
	_, err = h.ExecContext(ctx, query, args...)
	return err //nolint:wrapcheck
}

// GetWebhookDeliveryByID implements store.WebhookStore.
func (*webhookStore) GetWebhookDeliveryByID(ctx context.Context, h db.Handler, webhookID int64, id uuid.UUID) (models.WebhookDelivery, error) {
	query := h.Rebind(`SELECT * FROM webhook_deliveries WHERE webhook_id = ? AND id = ?`)
	var m models.WebhookDelivery
	err := h.GetContext(ctx, &m, query, webhookID, id)
	return m, err //nolint:wrapcheck
}

// ListWebhookDeliveriesByWebhookID implements store.WebhookStore.
func (*webhookStore) ListWebhookDeliveriesByWebhookID(ctx context.Context, h db.Handler, webhookID int64) ([]models.WebhookDelivery, error) {
	query := h.Rebind(`SELECT id, webhook_id, event, request_url, request_method, request_error, response_status, created_at
			FROM webhook_deliveries WHERE webhook_id = ? ORDER BY created_at DESC`)
	var m []models.WebhookDelivery
	err := h.SelectContext(ctx, &m, query, webhookID)
	return m, err //nolint:wrapcheck
}

// CreateWebhookDelivery implements store.WebhookStore.
func (*webhookStore) CreateWebhookDelivery(ctx context.Context, h db.Handler, id uuid.UUID, webhookID int64, event int, url string, method string, requestError error, requestHeaders string, requestBody string, responseStatus int, responseHeaders string, responseBody string) error {
	var reqErr sql.NullString
	if requestError != nil {
		reqErr = sql.NullString{String: requestError.Error(), Valid: true}
	}

	query := h.Rebind(`INSERT INTO webhook_deliveries
			(id, webhook_id, event, request_url, request_method, request_error, request_headers, request_body, response_status, response_headers, response_body, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`)
	_, err := h.ExecContext(ctx, query, id, webhookID, event, url, method, reqErr, requestHeaders, requestBody, responseStatus, responseHeaders, responseBody)
	return err //nolint:wrapcheck
}
