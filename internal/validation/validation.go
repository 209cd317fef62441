// Package validation holds field-level checks for user-supplied identity and
// query strings. Failures come back as 400-status errors with messages meant
// for direct display.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	internal_errors "github.com/blogcore-dev/blogcore/internal/errors"
)

const (
	MaxUsernameLength = 150
	MinUsernameLength = 3
	MaxEmailLength    = 254
	MaxLocalPartLength = 64 // RFC 5321

	MinSearchQueryLength = 2
	MaxSearchQueryLength = 200
)

func Username(username string) error {
	username = strings.TrimSpace(username)

	if username == "" {
		return internal_errors.Validation("Username cannot be empty")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return internal_errors.Validation(fmt.Sprintf("Username exceeds maximum length of %d", MaxUsernameLength))
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return internal_errors.Validation(fmt.Sprintf("Username must be at least %d characters", MinUsernameLength))
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return internal_errors.Validation("Username can only contain letters, numbers, underscore, and hyphen")
		}
	}
	return nil
}

func Email(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" {
		return internal_errors.Validation("Email cannot be empty")
	}
	if len(email) > MaxEmailLength {
		return internal_errors.Validation(fmt.Sprintf("Email exceeds maximum length of %d", MaxEmailLength))
	}
	if strings.Count(email, "@") != 1 {
		return internal_errors.Validation("Invalid email format")
	}

	local, domain, _ := strings.Cut(email, "@")
	if local == "" || domain == "" || !strings.Contains(domain, ".") {
		return internal_errors.Validation("Invalid email format")
	}
	if len(local) > MaxLocalPartLength {
		return internal_errors.Validation("Email local part exceeds maximum length")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return internal_errors.Validation("Invalid email format")
	}
	return nil
}

var queryStripper = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")

// SearchQuery validates and cleans a blog search query, returning the cleaned
// form with markup-significant characters removed.
func SearchQuery(query string) (string, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		return "", internal_errors.Validation("Search query cannot be empty")
	}
	if utf8.RuneCountInString(query) < MinSearchQueryLength {
		return "", internal_errors.Validation(fmt.Sprintf("Search query must be at least %d characters", MinSearchQueryLength))
	}
	if utf8.RuneCountInString(query) > MaxSearchQueryLength {
		return "", internal_errors.Validation(fmt.Sprintf("Search query cannot exceed %d characters", MaxSearchQueryLength))
	}

	return queryStripper.Replace(query), nil
}
