// checker/normalize.go

package checker

import "strings"

// NormalizeText lowercases, trims, and collapses internal whitespace runs to
// single spaces, so "  Большая   Садовая " and "большая садовая" compare equal.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeNumber lowercases and removes all whitespace. House numbers like
// "12 Б" and "12б" must compare equal, so spaces are dropped entirely rather
// than collapsed.
func NormalizeNumber(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}
