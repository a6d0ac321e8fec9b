package validation

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const dobLayout = "2006-01-02"

// MaxContactLength matches the narrowest contact column across dialects.
const MaxContactLength = 255

var ErrContactTooLong = errors.New("contact is too long (max 255 characters)")

// ValidateContact bounds the optional contact details. Surrounding whitespace
// does not count.
func ValidateContact(contact string) error {
	if utf8.RuneCountInString(strings.TrimSpace(contact)) > MaxContactLength {
		return ErrContactTooLong
	}
	return nil
}

// ParseDOB parses an optional YYYY-MM-DD date of birth. Empty input yields nil.
func ParseDOB(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	dob, err := time.Parse(dobLayout, value)
	if err != nil {
		return nil, errors.New("date of birth must be in YYYY-MM-DD format")
	}
	if dob.After(now) {
		return nil, errors.New("date of birth cannot be in the future")
	}
	return &dob, nil
}

// ParseAge parses an optional age. When empty and a date of birth is known,
// the age is derived from it.
func ParseAge(value string, dob *time.Time, now time.Time) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if dob == nil {
			return nil, nil
		}
		age := AgeAt(*dob, now)
		return &age, nil
	}

	age, err := strconv.Atoi(value)
	if err != nil || age < 0 || age > 150 {
		return nil, errors.New("age must be a number between 0 and 150")
	}
	return &age, nil
}

// AgeAt returns the age in whole years on the given day.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// ValidatePictureURL accepts an empty value or an absolute http(s) URL.
func ValidatePictureURL(value string) error {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("profile picture must be an http(s) URL")
	}
	if len(value) > 1024 {
		return errors.New("profile picture URL is too long")
	}
	return nil
}
