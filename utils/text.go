package utils

import "strings"

// UnderscoreSpaces replaces every whitespace run with a single underscore
func UnderscoreSpaces(s string) string {
	return strings.Join(strings.Fields(s), "_")
}
