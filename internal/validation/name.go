package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxNameLength = 100

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name is too long (max 100 characters)")
	ErrNameInvalid  = errors.New("name cannot contain control characters")
)

// ValidateName checks a display name as shown on user cards and messages.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.ContainsFunc(trimmed, unicode.IsControl) {
		return ErrNameInvalid
	}
	return nil
}
