// Package normalize canonicalizes the identity strings the rest of the
// system compares on: email addresses, phone numbers, and registration
// numbers. All functions are pure and total; bad input yields a normalized
// empty string or false, never an error.
package normalize

import (
	"regexp"
	"strings"
)

// emailPattern accepts the local@domain.tld shape with no embedded
// whitespace. Matching is done against the already-lowercased input.
var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9\-]+(\.[a-z0-9\-]+)*\.[a-z]{2,}$`)

// Email lowercases and trims an email address. Identity uniqueness is
// defined over this canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone trims surrounding whitespace from a phone number.
func Phone(s string) string {
	return strings.TrimSpace(s)
}

// RegNumber uppercases and trims a registration or matriculation number.
func RegNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidEmail reports whether s normalizes to a plausible address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(Email(s))
}

// ValidPhone reports whether s is exactly 11 decimal digits after trimming.
func ValidPhone(s string) bool {
	p := Phone(s)
	if len(p) != 11 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FullName joins name parts with single spaces, dropping empties. Used for
// the derived full-name field that listing search matches against.
func FullName(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Fold lowercases and trims a string for exact-match filtering, e.g.
// department and level comparisons.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
