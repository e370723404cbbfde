package search

import (
	"strings"

	"github.com/poiesic/labsearch/core"
)

// normalizeQuery folds a query and collapses its whitespace.
// It returns the normalized query and its terms.
func normalizeQuery(query string) (string, []string) {
	terms := core.Tokens(core.Fold(strings.TrimSpace(query)))
	return strings.Join(terms, " "), terms
}

// containsAll reports whether every term is a substring of text.
func containsAll(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
