package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxMessageLength     = 2000
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxSkillLength       = 100
)

var ErrMessageTooLong = errors.New("message is too long (max 2000 characters)")

// ValidateMessageBody checks length only; emptiness is reported by the caller
// together with a missing recipient.
func ValidateMessageBody(body string) error {
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// ValidateProjectRequest validates a collaboration request
func ValidateProjectRequest(title, description, skillNeeded string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return errors.New("title is required")
	case strings.TrimSpace(description) == "":
		return errors.New("description is required")
	case strings.TrimSpace(skillNeeded) == "":
		return errors.New("skill needed is required")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return errors.New("title is too long (max 200 characters)")
	case utf8.RuneCountInString(description) > MaxDescriptionLength:
		return errors.New("description is too long (max 5000 characters)")
	case utf8.RuneCountInString(skillNeeded) > MaxSkillLength:
		return errors.New("skill needed is too long (max 100 characters)")
	}
	return nil
}
