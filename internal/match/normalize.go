package match

import (
	"strings"
	"unicode"
)

// Fold returns the comparison form of an identifier: lower case with the
// separators _, - and space removed, so "order_id", "orderID" and "OrderId"
// fold to the same string.
func Fold(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
