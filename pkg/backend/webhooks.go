package backend

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/webhook"
	"github.com/google/uuid"
)

// CreateWebhook creates a webhook for an organizer.
func (b *Backend) CreateWebhook(ctx context.Context, organizer proto.Organizer, url string, contentType webhook.ContentType, secret string, events []webhook.Event, active bool) error {
	if err := webhook.ValidateWebhookURL(url); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		lastID, err := b.store.CreateWebhook(ctx, tx, organizer.ID, url, secret, int(contentType), active)
		if err != nil {
			return db.WrapError(err)
		}

		evs := make([]int, len(events))
		for i, e := range events {
			evs[i] = int(e)
		}
		if err := b.store.CreateWebhookEvents(ctx, tx, lastID, evs); err != nil {
			return db.WrapError(err)
		}

		return nil
	})
}

// Webhook returns one of the organizer's webhooks.
func (b *Backend) Webhook(ctx context.Context, organizer proto.Organizer, id int64) (webhook.Hook, error) {
	var wh webhook.Hook
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		h, err := b.store.GetWebhookByID(ctx, tx, organizer.ID, id)
		if err != nil {
			return db.WrapError(err)
		}
		events, err := b.store.GetWebhookEventsByWebhookID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		wh = webhook.Hook{
			Webhook:     h,
			ContentType: webhook.ContentType(h.ContentType), //nolint:gosec
			Events:      make([]webhook.Event, len(events)),
		}
		for i, e := range events {
			wh.Events[i] = webhook.Event(e.Event)
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return webhook.Hook{}, proto.ErrWebhookNotFound
		}

		return webhook.Hook{}, err
	}

	return wh, nil
}

// ListWebhooks lists an organizer's webhooks.
func (b *Backend) ListWebhooks(ctx context.Context, organizer proto.Organizer) ([]webhook.Hook, error) {
	var webhooks []models.Webhook
	webhookEvents := map[int64][]models.WebhookEvent{}
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		webhooks, err = b.store.GetWebhooksByOrganizerID(ctx, tx, organizer.ID)
		if err != nil {
			return err
		}

		for _, h := range webhooks {
			events, err := b.store.GetWebhookEventsByWebhookID(ctx, tx, h.ID)
			if err != nil {
				return err
			}
			webhookEvents[h.ID] = events
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	hooks := make([]webhook.Hook, len(webhooks))
	for i, h := range webhooks {
		events := make([]webhook.Event, len(webhookEvents[h.ID]))
		for i, e := range webhookEvents[h.ID] {
			events[i] = webhook.Event(e.Event)
		}

		hooks[i] = webhook.Hook{
			Webhook:     h,
			ContentType: webhook.ContentType(h.ContentType), //nolint:gosec
			Events:      events,
		}
	}

	return hooks, nil
}

// UpdateWebhook updates a webhook, reconciling its subscribed events.
func (b *Backend) UpdateWebhook(ctx context.Context, organizer proto.Organizer, id int64, url string, contentType webhook.ContentType, secret string, updatedEvents []webhook.Event, active bool) error {
	if err := webhook.ValidateWebhookURL(url); err != nil {
		return err
	}

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.store.UpdateWebhookByID(ctx, tx, organizer.ID, id, url, secret, int(contentType), active); err != nil {
			return db.WrapError(err)
		}

		currentEvents, err := b.store.GetWebhookEventsByWebhookID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		// Delete events that are no longer in the list.
		toBeDeleted := make([]int64, 0)
		for _, e := range currentEvents {
			found := false
			for _, ne := range updatedEvents {
				if int(ne) == e.Event {
					found = true
					break
				}
			}
			if !found {
				toBeDeleted = append(toBeDeleted, e.ID)
			}
		}

		if err := b.store.DeleteWebhookEventsByID(ctx, tx, toBeDeleted); err != nil {
			return db.WrapError(err)
		}

		// Prune events that are already in the list.
		newEvents := make([]int, 0)
		for _, e := range updatedEvents {
			found := false
			for _, ne := range currentEvents {
				if int(e) == ne.Event {
					found = true
					break
				}
			}
			if !found {
				newEvents = append(newEvents, int(e))
			}
		}

		if err := b.store.CreateWebhookEvents(ctx, tx, id, newEvents); err != nil {
			return db.WrapError(err)
		}

		return nil
	}); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrWebhookNotFound
		}

		return err
	}

	return nil
}

// DeleteWebhook deletes one of the organizer's webhooks.
func (b *Backend) DeleteWebhook(ctx context.Context, organizer proto.Organizer, id int64) error {
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		_, err := b.store.GetWebhookByID(ctx, tx, organizer.ID, id)
		if err != nil {
			return db.WrapError(err)
		}
		if err := b.store.DeleteWebhookForOrganizerByID(ctx, tx, organizer.ID, id); err != nil {
			return db.WrapError(err)
		}

		return nil
	}); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrWebhookNotFound
		}

		return err
	}

	return nil
}

// ListWebhookDeliveries lists webhook deliveries for a webhook.
func (b *Backend) ListWebhookDeliveries(ctx context.Context, id int64) ([]webhook.Delivery, error) {
	var deliveries []models.WebhookDelivery
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		deliveries, err = b.store.ListWebhookDeliveriesByWebhookID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	ds := make([]webhook.Delivery, len(deliveries))
	for i, d := range deliveries {
		ds[i] = webhook.Delivery{
			WebhookDelivery: d,
			Event:           webhook.Event(d.Event),
		}
	}

	return ds, nil
}

// RedeliverWebhookDelivery redelivers a webhook delivery.
func (b *Backend) RedeliverWebhookDelivery(ctx context.Context, organizer proto.Organizer, id int64, delID uuid.UUID) error {
	var delivery models.WebhookDelivery
	var wh models.Webhook
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		wh, err = b.store.GetWebhookByID(ctx, tx, organizer.ID, id)
		if err != nil {
			return db.WrapError(err)
		}

		delivery, err = b.store.GetWebhookDeliveryByID(ctx, tx, id, delID)
		if err != nil {
			return db.WrapError(err)
		}

		return nil
	}); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrWebhookNotFound
		}

		return err
	}

	var payload json.RawMessage
	if err := json.Unmarshal([]byte(delivery.RequestBody), &payload); err != nil {
		b.logger.Error("error unmarshaling webhook payload", "webhook", id, "delivery", delID, "error", err)
		return err
	}

	return webhook.SendWebhook(ctx, wh, webhook.Event(delivery.Event), payload)
}

// WebhookDelivery returns a webhook delivery.
func (b *Backend) WebhookDelivery(ctx context.Context, webhookID int64, id uuid.UUID) (webhook.Delivery, error) {
	var delivery webhook.Delivery
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		d, err := b.store.GetWebhookDeliveryByID(ctx, tx, webhookID, id)
		if err != nil {
			return db.WrapError(err)
		}

		delivery = webhook.Delivery{
			WebhookDelivery: d,
			Event:           webhook.Event(d.Event),
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return webhook.Delivery{}, proto.ErrWebhookNotFound
		}

		return webhook.Delivery{}, err
	}

	return delivery, nil
}
