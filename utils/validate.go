package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyField indicates a required field is missing
	ErrEmptyField = errors.New("required field is empty")

	// ErrInvalidPhone indicates the phone is not +<country><number> with 11-15 digits
	ErrInvalidPhone = errors.New("phone must be in international format, e.g. +8801XXXXXXXXX")

	// ErrInvalidNID indicates the NID number is not exactly 17 digits
	ErrInvalidNID = errors.New("NID number must be exactly 17 digits")

	// ErrInvalidUsername indicates the username contains whitespace
	ErrInvalidUsername = errors.New("username must not contain spaces")
)

var (
	phoneRegex      = regexp.MustCompile(`^\+\d{11,15}$`)
	nidRegex        = regexp.MustCompile(`^\d{17}$`)
	whitespaceRegex = regexp.MustCompile(`\s`)
)

// ValidatePhone checks the +<country><number> pattern (11-15 digits after +).
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrEmptyField
	}
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateNID checks that the national id number is exactly 17 digits.
func ValidateNID(nid string) error {
	nid = strings.TrimSpace(nid)
	if nid == "" {
		return ErrEmptyField
	}
	if !nidRegex.MatchString(nid) {
		return ErrInvalidNID
	}
	return nil
}

// ValidateUsername rejects empty and whitespace-carrying usernames.
// Usernames are compared case-insensitively; callers store the lowercase form.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyField
	}
	if whitespaceRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// NormalizeUsername returns the canonical stored form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
