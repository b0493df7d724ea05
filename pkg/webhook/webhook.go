// Package webhook delivers meeting lifecycle events to organizer-owned
// HTTP endpoints, recording every exchange for audit and redelivery.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/store"
	"github.com/convenehq/convene/pkg/version"
	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

// Hook is an organizer webhook with its subscriptions decoded.
type Hook struct {
	models.Webhook
	ContentType ContentType
	Events      []Event
}

// Delivery is one recorded webhook exchange.
type Delivery struct {
	models.WebhookDelivery
	Event Event
}

// deliveryClient refuses connections into private address space and
// never follows redirects, so the URL that was validated at creation
// time is the only one ever dialed.
var deliveryClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if err := validateDialAddr(addr); err != nil {
				return nil, err
			}
			d := &net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}
			return d.DialContext(ctx, network, addr)
		},
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	},
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// SendEvent delivers payload to every hook of the organizer that
// subscribes to its event.
func SendEvent(ctx context.Context, payload EventPayload) error {
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)

	hooks, err := datastore.GetWebhooksByOrganizerIDWhereEvent(ctx, dbx, payload.OrganizerID(), []int{int(payload.Event())})
	if err != nil {
		return db.WrapError(err)
	}

	for _, h := range hooks {
		if err := SendWebhook(ctx, h, payload.Event(), payload); err != nil {
			return err
		}
	}

	return nil
}

// SendWebhook posts one event to one hook and records the exchange,
// reply included, whether or not the request went through.
func SendWebhook(ctx context.Context, w models.Webhook, event Event, payload interface{}) error {
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)

	contentType := ContentType(w.ContentType) //nolint:gosec
	body, err := encodePayload(contentType, payload)
	if err != nil {
		return err
	}

	id, err := uuid.NewUUID()
	if err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Content-Type", contentType.String())
	headers.Set("User-Agent", "Convene/"+version.Version)
	headers.Set("X-Convene-Event", event.String())
	headers.Set("X-Convene-Delivery", id.String())
	if w.Secret != "" {
		headers.Set("X-Convene-Signature", "sha256="+signPayload(w.Secret, body))
	}

	res, reqErr := post(ctx, w.URL, headers, strings.NewReader(body))

	resStatus := 0
	var resHeaders, resBody string
	if res != nil {
		defer res.Body.Close() // nolint: errcheck
		resStatus = res.StatusCode
		resHeaders = flattenHeader(res.Header)
		b, err := io.ReadAll(res.Body)
		if err != nil {
			return err
		}
		resBody = string(b)
	}

	return db.WrapError(datastore.CreateWebhookDelivery(ctx, dbx, id, w.ID, int(event), w.URL, http.MethodPost, reqErr, flattenHeader(headers), body, resStatus, resHeaders, resBody))
}

func post(ctx context.Context, url string, headers http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header = headers
	return deliveryClient.Do(req) //nolint:wrapcheck
}

func encodePayload(ct ContentType, payload interface{}) (string, error) {
	switch ct {
	case ContentTypeJSON:
		b, err := json.Marshal(payload)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case ContentTypeForm:
		v, err := query.Values(payload)
		if err != nil {
			return "", err
		}
		return v.Encode(), nil
	}
	return "", ErrInvalidContentType
}

func signPayload(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body)) // nolint: errcheck
	return hex.EncodeToString(mac.Sum(nil))
}

func flattenHeader(h http.Header) string {
	var sb strings.Builder
	for k, v := range h {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(v, ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func meetingURL(publicURL string, id int64) string {
	return fmt.Sprintf("%s/meetings/%d", publicURL, id)
}
