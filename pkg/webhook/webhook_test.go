package webhook

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestEncodePayload(t *testing.T) {
	type payload struct {
		Action string `json:"action" url:"action"`
		Count  int    `json:"count" url:"count"`
	}
	p := payload{Action: "meeting.sent", Count: 3}

	got, err := encodePayload(ContentTypeJSON, p)
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"action":"meeting.sent","count":3}` {
		t.Errorf("json encoding = %q", got)
	}

	got, err = encodePayload(ContentTypeForm, p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "action=meeting.sent&count=3" {
		t.Errorf("form encoding = %q", got)
	}

	if _, err := encodePayload(ContentType(7), p); !errors.Is(err, ErrInvalidContentType) {
		t.Errorf("expected ErrInvalidContentType, got %v", err)
	}
}

func TestSignPayload(t *testing.T) {
	const want = "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"
	if got := signPayload("key", "The quick brown fox jumps over the lazy dog"); got != want {
		t.Errorf("signPayload = %q, want %q", got, want)
	}
}

func TestFlattenHeader(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("X-Convene-Event", "meeting.sent")

	got := flattenHeader(h)
	if !strings.Contains(got, "Content-Type: application/json\n") {
		t.Errorf("missing content type in %q", got)
	}
	if !strings.Contains(got, "X-Convene-Event: meeting.sent\n") {
		t.Errorf("missing event header in %q", got)
	}
}
