// Package sanitizer normalizes free-text fields before validation so that
// stray whitespace or control characters never reach storage.
package sanitizer

import (
	"strings"
	"unicode"
)

// CleanText collapses runs of whitespace to single spaces, strips control
// characters and trims the result. Used for addresses and instructions.
func CleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsControl(r):
			// drop
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanID trims an identifier and removes anything that is not a letter,
// digit or dash. IDs are opaque but must stay query-safe.
func CleanID(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
