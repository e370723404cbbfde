package search

import (
	"cmp"
	"slices"

	"github.com/poiesic/labsearch/core"
	"golang.org/x/text/collate"
)

// CategoryGroup is the set of analyses sharing a category, in name order.
type CategoryGroup struct {
	Category core.Category
	Records  []core.Analysis
}

// CategoryCount is the number of analyses in a category.
type CategoryCount struct {
	Category core.Category
	Count    int
}

// buildGroups groups name-sorted records by category.
// Groups are ordered by collated category label.
func buildGroups(records []core.Analysis, collator *collate.Collator) []CategoryGroup {
	positions := make(map[core.Category]int)
	groups := make([]CategoryGroup, 0)
	for _, a := range records {
		i, ok := positions[a.Category]
		if !ok {
			i = len(groups)
			positions[a.Category] = i
			groups = append(groups, CategoryGroup{Category: a.Category})
		}
		groups[i].Records = append(groups[i].Records, a)
	}
	slices.SortFunc(groups, func(a, b CategoryGroup) int {
		if c := collator.CompareString(string(a.Category), string(b.Category)); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return groups
}

// Groups returns every category with its analyses.
// Only categories with at least one analysis appear.
func (idx *Index) Groups() []CategoryGroup {
	out := make([]CategoryGroup, len(idx.groups))
	for i, g := range idx.groups {
		out[i] = CategoryGroup{Category: g.Category, Records: slices.Clone(g.Records)}
	}
	return out
}

// TopCategories returns the n largest categories, largest first.
// Equal counts keep category label order. A non-positive n returns all categories.
func (idx *Index) TopCategories(n int) []CategoryCount {
	counts := make([]CategoryCount, len(idx.groups))
	for i, g := range idx.groups {
		counts[i] = CategoryCount{Category: g.Category, Count: len(g.Records)}
	}
	slices.SortStableFunc(counts, func(a, b CategoryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
