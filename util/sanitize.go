package util

import (
	"strings"
	"unicode"
)

// SanitizeString prepares free-form input for storage: surrounding
// whitespace is trimmed and control characters are dropped, so names and
// descriptions cannot carry NULs or escape sequences into responses.
func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
