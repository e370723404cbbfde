package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/poiesic/labsearch/classify"
	"github.com/poiesic/labsearch/core"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// DefaultSuggestLimit caps autocomplete lists.
	DefaultSuggestLimit = 8

	// MinSuggestLength is the shortest input worth suggesting for.
	MinSuggestLength = 2
)

// Index holds an immutable, name-sorted set of analyses and answers queries over it.
// All query methods are safe for concurrent use.
type Index struct {
	records  []core.Analysis
	byID     map[core.ID]int
	groups   []CategoryGroup
	dropped  []*core.MalformedRecordError
	taxonomy *classify.Taxonomy
	language language.Tag
}

// Option configures an Index.
type Option func(*Index) error

// WithTaxonomy sets the category taxonomy.
// Default is classify.Default(); nil keeps the default.
func WithTaxonomy(taxonomy *classify.Taxonomy) Option {
	return func(idx *Index) error {
		if taxonomy == nil {
			taxonomy = classify.Default()
		}
		idx.taxonomy = taxonomy
		return nil
	}
}

// WithLanguage sets the collation language used to sort names and category labels.
// Default is French.
func WithLanguage(tag language.Tag) Option {
	return func(idx *Index) error {
		if tag == language.Und {
			return ErrLanguageRequired
		}
		idx.language = tag
		return nil
	}
}

// Load validates, classifies and sorts records into a new Index.
//
// Records with a blank name or an unusable price are dropped and reported by
// Dropped. Accepted records receive IDs 1..n in input order, before sorting.
// Returns core.ErrEmptyDataset when nothing is accepted.
func Load(records []core.RawRecord, opts ...Option) (*Index, error) {
	idx := &Index{
		taxonomy: classify.Default(),
		language: language.French,
	}
	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}

	accepted := make([]core.Analysis, 0, len(records))
	for pos, raw := range records {
		price, err := core.ValidateRawRecord(raw)
		if err != nil {
			idx.dropped = append(idx.dropped, &core.MalformedRecordError{
				Position: pos,
				Name:     raw.Name,
				Err:      causeOf(err),
			})
			continue
		}
		id := core.ID(len(accepted) + 1)
		accepted = append(accepted, core.NewAnalysis(id, raw, price, idx.taxonomy.Classify(raw.Name)))
	}
	if len(accepted) == 0 {
		return nil, core.ErrEmptyDataset
	}

	// Loose collation ignores case and accents; exact name and ID break ties
	// so the order is total and repeatable.
	loose := collate.New(idx.language, collate.Loose)
	slices.SortFunc(accepted, func(a, b core.Analysis) int {
		if c := loose.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	idx.records = accepted
	idx.byID = make(map[core.ID]int, len(accepted))
	for i, a := range accepted {
		idx.byID[a.ID] = i
	}
	idx.groups = buildGroups(accepted, loose)
	return idx, nil
}

// causeOf strips the ErrMalformedRecord wrapper added by validation.
func causeOf(err error) error {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			if e != core.ErrMalformedRecord {
				return e
			}
		}
	}
	return err
}

// Len returns the number of loaded analyses.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Records returns all analyses in name order.
func (idx *Index) Records() []core.Analysis {
	return slices.Clone(idx.records)
}

// Get returns the analysis with the given ID.
func (idx *Index) Get(id core.ID) (core.Analysis, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return core.Analysis{}, false
	}
	return idx.records[i], true
}

// Dropped reports the input records rejected during Load.
func (idx *Index) Dropped() []*core.MalformedRecordError {
	return slices.Clone(idx.dropped)
}

// Taxonomy returns the taxonomy used to classify records.
func (idx *Index) Taxonomy() *classify.Taxonomy {
	return idx.taxonomy
}

// Classify returns the category the index assigns to name.
func (idx *Index) Classify(name string) core.Category {
	return idx.taxonomy.Classify(name)
}

// Search returns analyses whose name or code contains term, or whose name
// has a word starting with term. Results keep name order.
// Returns core.ErrEmptySearchTerm for a blank term.
func (idx *Index) Search(term string) ([]core.Analysis, error) {
	folded := core.Fold(strings.TrimSpace(term))
	if folded == "" {
		return nil, core.ErrEmptySearchTerm
	}

	results := make([]core.Analysis, 0)
	for _, a := range idx.records {
		if strings.Contains(a.FoldedName(), folded) ||
			strings.Contains(a.FoldedCode(), folded) ||
			a.HasWordPrefix(folded) {
			results = append(results, a)
		}
	}
	return results, nil
}

// RankedSearch returns analyses containing every query term in their code,
// name or description. An exact code match ranks first, then names
// containing the whole query; remaining ties keep name order.
// A blank query matches nothing.
func (idx *Index) RankedSearch(query string) []core.Analysis {
	full, terms := normalizeQuery(query)
	results := make([]core.Analysis, 0)
	if len(terms) == 0 {
		return results
	}

	for _, a := range idx.records {
		if containsAll(a.Haystack(), terms) {
			results = append(results, a)
		}
	}

	rank := func(a core.Analysis) int {
		switch {
		case a.FoldedCode() == full:
			return 0
		case strings.Contains(a.FoldedName(), full):
			return 1
		default:
			return 2
		}
	}
	slices.SortStableFunc(results, func(a, b core.Analysis) int {
		return cmp.Compare(rank(a), rank(b))
	})
	return results
}

// Suggest returns up to limit analyses whose name or code contains prefix, in name order.
// A blank prefix or a non-positive limit yields no suggestions.
func (idx *Index) Suggest(prefix string, limit int) []core.Analysis {
	folded := core.Fold(strings.TrimSpace(prefix))
	results := make([]core.Analysis, 0)
	if folded == "" || limit <= 0 {
		return results
	}

	for _, a := range idx.records {
		if strings.Contains(a.FoldedName(), folded) || strings.Contains(a.FoldedCode(), folded) {
			results = append(results, a)
			if len(results) == limit {
				break
			}
		}
	}
	return results
}
