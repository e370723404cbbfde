package search

import (
	"strings"

	"github.com/poiesic/labsearch/core"
	"github.com/sahilm/fuzzy"
)

// nameSource exposes folded names to the fuzzy matcher.
type nameSource []core.Analysis

func (s nameSource) String(i int) string { return s[i].FoldedName() }

func (s nameSource) Len() int { return len(s) }

// Fuzzy ranks analyses by how closely their name matches query,
// tolerating skipped characters (e.g. "hmglbne" finds "Hémoglobine").
// Best matches come first.
// It is meant as a fallback when Search finds nothing.
func (idx *Index) Fuzzy(query string, limit int) []core.Analysis {
	folded := strings.Join(core.Tokens(core.Fold(query)), " ")
	results := make([]core.Analysis, 0)
	if folded == "" || limit <= 0 {
		return results
	}

	for _, match := range fuzzy.FindFrom(folded, nameSource(idx.records)) {
		results = append(results, idx.records[match.Index])
		if len(results) == limit {
			break
		}
	}
	return results
}
