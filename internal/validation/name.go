package validation

import (
	"errors"
	"strings"
)

// ValidateActivityName validates an activity name
func ValidateActivityName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("activity name is required")
	}

	if len(trimmed) > 100 {
		return errors.New("activity name is too long (max 100 characters)")
	}

	return nil
}
