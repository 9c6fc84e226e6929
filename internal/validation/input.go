// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"

	"murmur/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword checks password length bounds. Composition rules are
// left to clients; bcrypt truncates input past 72 bytes so the upper bound
// also keeps every byte of the password significant.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 characters")
	}

	return nil
}

// ValidateSort checks that a sort parameter names a supported ordering.
func ValidateSort(sort string) error {
	switch sort {
	case models.SortNewest, models.SortOldest, models.SortMostLiked:
		return nil
	}
	return fmt.Errorf("sort must be one of %q, %q, %q", models.SortNewest, models.SortOldest, models.SortMostLiked)
}

// ValidateBody checks a post or comment body.
func ValidateBody(body string, maxLen int) error {
	if body == "" {
		return fmt.Errorf("body must not be empty")
	}
	if maxLen > 0 && len(body) > maxLen {
		return fmt.Errorf("body must not exceed %d characters", maxLen)
	}
	return nil
}
