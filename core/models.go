package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies an analysis within a loaded index.
// IDs are 1-based and follow the accepted input order.
type ID uint64

// Category is the classification bucket of an analysis.
type Category string

// RawRecord is an analysis as read from a source, before validation.
// Price is kept as text; it is coerced when the index is built.
type RawRecord struct {
	Code        string
	Name        string
	Sector      string
	Delay       string
	Description string
	Price       string
}

// NewRawRecord builds a RawRecord from a numeric price.
func NewRawRecord(code, name string, price float64) RawRecord {
	return RawRecord{
		Code:  code,
		Name:  name,
		Price: strconv.FormatFloat(price, 'f', -1, 64),
	}
}

// Analysis is a validated, classified analysis record.
// Values are immutable once produced by the index.
type Analysis struct {
	ID          ID
	Code        string
	Name        string
	Sector      string
	Delay       string
	Description string
	Price       float64
	Category    Category
	SearchName  string // strings.ToLower(Name)

	foldedName     string
	foldedCode     string
	foldedHaystack string
	tokens         []string
}

// NewAnalysis builds an Analysis from a validated raw record.
// It computes the lowercase and folded forms used for matching.
func NewAnalysis(id ID, raw RawRecord, price float64, category Category) Analysis {
	a := Analysis{
		ID:          id,
		Code:        raw.Code,
		Name:        raw.Name,
		Sector:      raw.Sector,
		Delay:       raw.Delay,
		Description: raw.Description,
		Price:       price,
		Category:    category,
		SearchName:  Lower(raw.Name),
	}
	a.foldedName = Fold(a.Name)
	a.foldedCode = Fold(a.Code)
	a.foldedHaystack = a.foldedCode + " " + a.foldedName + " " + Fold(a.Description)
	a.tokens = Tokens(a.foldedName)
	return a
}

// FoldedName returns the case and diacritic folded name.
func (a Analysis) FoldedName() string { return a.foldedName }

// FoldedCode returns the case and diacritic folded code.
func (a Analysis) FoldedCode() string { return a.foldedCode }

// Haystack returns the folded "code name description" text used by ranked search.
func (a Analysis) Haystack() string { return a.foldedHaystack }

// NameTokens returns the whitespace-delimited tokens of the folded name.
func (a Analysis) NameTokens() []string {
	out := make([]string, len(a.tokens))
	copy(out, a.tokens)
	return out
}

// HasWordPrefix reports whether a word of the folded name starts with prefix.
func (a Analysis) HasWordPrefix(prefix string) bool {
	for _, token := range a.tokens {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// DisplayPrice formats the price the way the catalog prints it.
func (a Analysis) DisplayPrice() string {
	return fmt.Sprintf("%.2f DH", a.Price)
}

// Raw returns the record as it would be re-imported.
func (a Analysis) Raw() RawRecord {
	return RawRecord{
		Code:        a.Code,
		Name:        a.Name,
		Sector:      a.Sector,
		Delay:       a.Delay,
		Description: a.Description,
		Price:       strconv.FormatFloat(a.Price, 'f', -1, 64),
	}
}

// SnapshotInfo describes a persisted catalog snapshot.
type SnapshotInfo struct {
	Fingerprint ID
	Count       int
	Source      string
	ImportedAt  int64 // Unix microseconds
}
