package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid bd number", "+8801712345678", nil},
		{"valid 11 digits", "+88017123456", nil},
		{"valid 15 digits", "+880171234567890", nil},
		{"empty", "", ErrEmptyField},
		{"missing plus", "8801712345678", ErrInvalidPhone},
		{"too short", "+8801712345", ErrInvalidPhone},
		{"too long", "+8801712345678901", ErrInvalidPhone},
		{"letters", "+880171234567a", ErrInvalidPhone},
		{"internal space", "+880 1712345678", ErrInvalidPhone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePhone(tc.input)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateNID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid 17 digits", "12345678901234567", nil},
		{"empty", "", ErrEmptyField},
		{"four digits", "1234", ErrInvalidNID},
		{"sixteen digits", "1234567890123456", ErrInvalidNID},
		{"eighteen digits", "123456789012345678", ErrInvalidNID},
		{"letters mixed in", "1234567890123456a", ErrInvalidNID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNID(tc.input)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("sea_breeze99"))
	assert.ErrorIs(t, ValidateUsername(""), ErrEmptyField)
	assert.ErrorIs(t, ValidateUsername("   "), ErrEmptyField)
	assert.ErrorIs(t, ValidateUsername("sea breeze"), ErrInvalidUsername)
	assert.ErrorIs(t, ValidateUsername("sea\tbreeze"), ErrInvalidUsername)
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "seabreeze", NormalizeUsername("  SeaBreeze "))
}
