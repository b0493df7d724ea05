package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidEmail is returned when an email address fails validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidName is returned when a display name fails validation.
	ErrInvalidName = errors.New("invalid name")
)

// SanitizeEmail returns a sanitized, lowercased version of the given email
// address.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail returns an error if the given email address is invalid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidEmail)
	}

	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" {
		return fmt.Errorf("%w: missing local part or domain", ErrInvalidEmail)
	}

	for _, r := range email {
		if unicode.IsSpace(r) {
			return fmt.Errorf("%w: contains whitespace", ErrInvalidEmail)
		}
	}

	return nil
}

// ValidateName returns an error if the given display name is invalid.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	return nil
}
