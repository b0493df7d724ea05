package webhook

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseContentType(t *testing.T) {
	tests := []struct {
		in      string
		want    ContentType
		wantErr bool
	}{
		{"application/json", ContentTypeJSON, false},
		{"application/json; charset=utf-8", ContentTypeJSON, false},
		{"application/x-www-form-urlencoded", ContentTypeForm, false},
		{"text/plain", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseContentType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseContentType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseContentType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Requests carry the content type as a string field, so the JSON codec
// has to go through the text marshaler.
func TestContentTypeInJSONBody(t *testing.T) {
	var req struct {
		ContentType ContentType `json:"content_type"`
	}
	if err := json.Unmarshal([]byte(`{"content_type": "application/x-www-form-urlencoded"}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.ContentType != ContentTypeForm {
		t.Errorf("got %v, want ContentTypeForm", req.ContentType)
	}

	err := json.Unmarshal([]byte(`{"content_type": "text/plain"}`), &req)
	if !errors.Is(err, ErrInvalidContentType) {
		t.Errorf("expected ErrInvalidContentType, got %v", err)
	}
}

func TestContentTypeMarshalText(t *testing.T) {
	b, err := ContentTypeJSON.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "application/json" {
		t.Errorf("got %q, want application/json", b)
	}

	if _, err := ContentType(9).MarshalText(); !errors.Is(err, ErrInvalidContentType) {
		t.Errorf("expected ErrInvalidContentType, got %v", err)
	}
}
