package normalization

import (
	"strings"
)

// ParseInputString lower-cases and trims user-supplied text. Emails are
// always run through this before storage or lookup, which is what makes
// email matching case-insensitive.
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// TrimInputString trims without folding case, for fields where case is
// user-visible (names, titles).
func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}
