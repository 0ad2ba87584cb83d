// Package validation holds the pure field checks and normalizers applied to event
// and booking records before they are persisted. Nothing here performs I/O.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
// Intentionally permissive: it is not RFC 5322.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// IsNonEmptyString reports whether v is a string with at least one non-space character.
func IsNonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// IsStorableText reports whether s is valid UTF-8 without NUL bytes. Postgres
// TEXT columns reject anything else.
func IsStorableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// IsNonEmptyStringArray reports whether v is a non-empty []string (or []any) whose
// every element satisfies IsNonEmptyString.
func IsNonEmptyStringArray(v any) bool {
	switch vs := v.(type) {
	case []string:
		if len(vs) == 0 {
			return false
		}
		for _, s := range vs {
			if !IsNonEmptyString(s) {
				return false
			}
		}
		return true
	case []any:
		if len(vs) == 0 {
			return false
		}
		for _, s := range vs {
			if !IsNonEmptyString(s) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsValidEmail reports whether the trimmed value has the local@domain.tld shape.
func IsValidEmail(v string) bool {
	return IsStorableText(v) && emailRegex.MatchString(strings.TrimSpace(v))
}

// IsValidSlug reports whether v consists only of lowercase ASCII letters, digits and hyphens.
func IsValidSlug(v string) bool {
	return slugRegex.MatchString(v)
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// trimAll returns a trimmed copy of vs.
func trimAll(vs []string) []string {
	out := make([]string, len(vs))
	for i, s := range vs {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
