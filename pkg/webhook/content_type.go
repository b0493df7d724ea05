package webhook

import (
	"encoding"
	"errors"
	"strings"
)

// ContentType selects the encoding of a webhook request body.
type ContentType int8

const (
	// ContentTypeJSON encodes payloads as a JSON document.
	ContentTypeJSON ContentType = iota
	// ContentTypeForm encodes payloads as URL-encoded form values.
	ContentTypeForm
)

// ErrInvalidContentType is returned for content types other than JSON
// and form.
var ErrInvalidContentType = errors.New("invalid content type")

var (
	_ encoding.TextMarshaler   = ContentType(0)
	_ encoding.TextUnmarshaler = (*ContentType)(nil)
)

// String returns the MIME type, or an empty string for unknown values.
func (c ContentType) String() string {
	switch c {
	case ContentTypeJSON:
		return "application/json"
	case ContentTypeForm:
		return "application/x-www-form-urlencoded"
	}
	return ""
}

// ParseContentType maps a MIME type to a ContentType. Parameters after
// the media type, like a charset, are ignored.
func ParseContentType(s string) (ContentType, error) {
	switch {
	case strings.HasPrefix(s, "application/json"):
		return ContentTypeJSON, nil
	case strings.HasPrefix(s, "application/x-www-form-urlencoded"):
		return ContentTypeForm, nil
	}
	return -1, ErrInvalidContentType
}

// MarshalText implements encoding.TextMarshaler.
func (c ContentType) MarshalText() ([]byte, error) {
	s := c.String()
	if s == "" {
		return nil, ErrInvalidContentType
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ContentType) UnmarshalText(text []byte) error {
	ct, err := ParseContentType(string(text))
	if err != nil {
		return err
	}
	*c = ct
	return nil
}
