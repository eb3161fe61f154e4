// utils/valid.go
package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9._@-]{3,64}$`)

// SanitizeLine flattens a value destined for a single-line context such
// as a mail header: surrounding whitespace and all control characters,
// line breaks included, are removed.
func SanitizeLine(input string) string {
	input = strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// SanitizeText trims a free-form value and strips control characters
// except line breaks and tabs. The result goes into text/plain mail
// bodies, so no markup escaping is applied.
func SanitizeText(input string) string {
	input = strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// SanitizeUsername normalizes and validates a login name. Usernames
// are case-insensitive; the lowercased form is what gets stored.
func SanitizeUsername(username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernameRegex.MatchString(username) {
		return "", errors.New("invalid username format")
	}
	return username, nil
}
