package middleware

import (
	"errors"
	"unicode/utf8"
)

// ValidateUserID validates an external user identifier.
func ValidateUserID(id string) error {
	if len(id) == 0 {
		return errors.New("user ID cannot be empty")
	}
	if len(id) > 64 {
		return errors.New("user ID exceeds maximum length")
	}
	return nil
}

// ValidateContactName validates a contact name.
func ValidateContactName(name string) error {
	if len(name) > 256 {
		return errors.New("name exceeds maximum length")
	}
	if !utf8.ValidString(name) {
		return errors.New("name must be valid UTF-8")
	}
	return nil
}

// ValidateNote validates a research note before it is appended.
func ValidateNote(text string) error {
	if len(text) == 0 {
		return errors.New("note cannot be empty")
	}
	if len(text) > 10000 {
		return errors.New("note exceeds maximum length")
	}
	if !utf8.ValidString(text) {
		return errors.New("note must be valid UTF-8")
	}
	return nil
}

// ValidateSummary validates a research summary.
func ValidateSummary(text string) error {
	if len(text) > 5000 {
		return errors.New("summary exceeds maximum length")
	}
	if !utf8.ValidString(text) {
		return errors.New("summary must be valid UTF-8")
	}
	return nil
}

// ValidateSearchQuery validates a search query before caching.
func ValidateSearchQuery(query string) error {
	if len(query) == 0 {
		return errors.New("query cannot be empty")
	}
	if len(query) > 512 {
		return errors.New("query exceeds maximum length")
	}
	return nil
}
