package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

const (
	MaxExchangeIDLength = 128
	MaxUserIDLength     = 128
	MaxNameLength       = 100
	MaxEmailLength      = 254
	MaxInterestsLength  = 1000
	MaxURLLength        = 2048
)

var idRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateExchangeID checks an exchange partition key.
func ValidateExchangeID(id string) error {
	if id == "" {
		return fmt.Errorf("exchange id cannot be empty")
	}
	if len(id) > MaxExchangeIDLength {
		return fmt.Errorf("exchange id cannot exceed %d characters", MaxExchangeIDLength)
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("exchange id must contain only letters, digits, '-' and '_'")
	}
	return nil
}

// ValidateUserID checks a caller supplied participant id.
func ValidateUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("user id cannot be empty")
	}
	if len(id) > MaxUserIDLength {
		return fmt.Errorf("user id cannot exceed %d characters", MaxUserIDLength)
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("user id must contain only letters, digits, '-' and '_'")
	}
	return nil
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("email cannot exceed %d characters", MaxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email %q is not a valid address", email)
	}
	return nil
}

// ValidateMaxLength rejects values longer than limit; empty values pass.
func ValidateMaxLength(value string, limit int, fieldName string) error {
	if len(value) > limit {
		return fmt.Errorf("%s cannot exceed %d characters", fieldName, limit)
	}
	return nil
}

// ValidateRole checks value against the allowed roles.
func ValidateRole(role string, allowed ...string) error {
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return fmt.Errorf("invalid role: %s. Valid roles: %v", role, allowed)
}

func IsValidExchangeID(id string) bool {
	return ValidateExchangeID(id) == nil
}
