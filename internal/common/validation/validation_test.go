package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateExchangeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"default", "global-exchange", false},
		{"underscore and digits", "office_2025", false},
		{"empty", "", true},
		{"space", "office party", true},
		{"slash", "a/b", true},
		{"colon", "a:b", true},
		{"max length", strings.Repeat("a", MaxExchangeIDLength), false},
		{"too long", strings.Repeat("a", MaxExchangeIDLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExchangeID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, !tt.wantErr, IsValidExchangeID(tt.id))
		})
	}
}

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID("u-alice"))
	assert.Error(t, ValidateUserID("  "))
	assert.Error(t, ValidateUserID("user:1"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("Alice <alice@example.com>"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("x", MaxNameLength+1)))
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole("admin", "user", "admin"))
	assert.Error(t, ValidateRole("moderator", "user", "admin"))
}

func TestValidateMaxLength(t *testing.T) {
	assert.NoError(t, ValidateMaxLength("", 3, "interests"))
	assert.Error(t, ValidateMaxLength("abcd", 3, "interests"))
}
