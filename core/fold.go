package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures have no canonical decomposition, so they are expanded by hand.
var ligatures = strings.NewReplacer("œ", "oe", "æ", "ae", "ß", "ss")

// Lower returns the lowercase form of s.
func Lower(s string) string {
	return strings.ToLower(s)
}

// Fold lowercases s and removes combining diacritics, so that
// "Échographie" and "echographie" fold to the same text.
func Fold(s string) string {
	lower := ligatures.Replace(strings.ToLower(s))
	// Transformers keep state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return folded
}

// Tokens splits folded text on whitespace.
func Tokens(s string) []string {
	return strings.Fields(s)
}
