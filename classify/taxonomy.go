package classify

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/labsearch/core"
	"gopkg.in/yaml.v3"
)

// DefaultCategory is assigned when no rule matches.
const DefaultCategory core.Category = "Examens généraux"

// Rule maps a category to the keywords that select it.
type Rule struct {
	Category core.Category `yaml:"name"`
	Keywords []string      `yaml:"keywords"`
}

// Taxonomy is an ordered list of rules. The first matching rule wins,
// so the order of Rules is part of the classification result.
type Taxonomy struct {
	rules    []Rule
	lowered  [][]string
	fallback core.Category
}

var defaultRules = []Rule{
	{Category: "Analyses sanguines", Keywords: []string{"sang", "hémoglobine", "cholestérol", "glycémie", "glucose", "nfs", "numération"}},
	{Category: "Analyses hormonales", Keywords: []string{"tsh", "hormone", "testosterone", "oestradiol", "prolactine", "cortisol", "insuline"}},
	{Category: "Sérologies", Keywords: []string{"sérologie", "hépatite", "hiv", "sida", "rubéole", "toxoplasmose", "cmv", "syphilis"}},
	{Category: "Marqueurs tumoraux", Keywords: []string{"psa", "ca 125", "ca 19", "cea", "afp", "marqueur", "cancer"}},
	{Category: "Examens cardiaques", Keywords: []string{"troponine", "bnp", "cardiaque", "ckmb"}},
	{Category: "Biochimie", Keywords: []string{"créatinine", "urée", "alat", "asat", "bilirubine", "gamma", "phosphatase"}},
	{Category: "Vitamines", Keywords: []string{"vitamine", "b12", "folate", "acide folique"}},
	{Category: "Fer", Keywords: []string{"fer", "ferritine", "transferrine"}},
	{Category: "Examens bactériologiques", Keywords: []string{"ecbu", "culture", "helicobacter", "parasitologie"}},
	{Category: "Examens immunologiques", Keywords: []string{"anticorps", "fan", "facteur", "auto-immun"}},
}

// Default returns the built-in medical analysis taxonomy.
func Default() *Taxonomy {
	t, _ := New(defaultRules, DefaultCategory)
	return t
}

// New builds a taxonomy from rules in the given order.
func New(rules []Rule, fallback core.Category) (*Taxonomy, error) {
	if strings.TrimSpace(string(fallback)) == "" {
		return nil, fmt.Errorf("%w: default category is empty", ErrInvalidTaxonomy)
	}

	t := &Taxonomy{
		rules:    make([]Rule, 0, len(rules)),
		lowered:  make([][]string, 0, len(rules)),
		fallback: fallback,
	}
	seen := make(map[core.Category]bool, len(rules))
	for i, rule := range rules {
		if strings.TrimSpace(string(rule.Category)) == "" {
			return nil, fmt.Errorf("%w: rule %d has no category", ErrInvalidTaxonomy, i)
		}
		if seen[rule.Category] {
			return nil, fmt.Errorf("%w: category %q declared twice", ErrInvalidTaxonomy, rule.Category)
		}
		seen[rule.Category] = true
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("%w: category %q has no keywords", ErrInvalidTaxonomy, rule.Category)
		}

		keywords := make([]string, len(rule.Keywords))
		lowered := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			if strings.TrimSpace(kw) == "" {
				return nil, fmt.Errorf("%w: category %q has an empty keyword", ErrInvalidTaxonomy, rule.Category)
			}
			keywords[j] = kw
			lowered[j] = core.Lower(kw)
		}
		t.rules = append(t.rules, Rule{Category: rule.Category, Keywords: keywords})
		t.lowered = append(t.lowered, lowered)
	}
	return t, nil
}

// Classify returns the first category, in declared order, whose keywords
// appear in name. Matching ignores case only: "fer" does not match "différentielle".
func (t *Taxonomy) Classify(name string) core.Category {
	lower := core.Lower(name)
	for i, keywords := range t.lowered {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return t.rules[i].Category
			}
		}
	}
	return t.fallback
}

// Categories lists the declared categories in order, followed by the default.
func (t *Taxonomy) Categories() []core.Category {
	out := make([]core.Category, 0, len(t.rules)+1)
	for _, rule := range t.rules {
		out = append(out, rule.Category)
	}
	return append(out, t.fallback)
}

// Rules returns a copy of the ordered rules.
func (t *Taxonomy) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, rule := range t.rules {
		out[i] = Rule{Category: rule.Category, Keywords: append([]string(nil), rule.Keywords...)}
	}
	return out
}

// Fallback returns the category used when no rule matches.
func (t *Taxonomy) Fallback() core.Category {
	return t.fallback
}

type taxonomyFile struct {
	Default    core.Category `yaml:"default"`
	Categories []Rule        `yaml:"categories"`
}

// Load reads a taxonomy from YAML:
//
//	default: Examens généraux
//	categories:
//	  - name: Fer
//	    keywords: [fer, ferritine]
//
// The list order is kept. A missing default uses DefaultCategory.
func Load(r io.Reader) (*Taxonomy, error) {
	var file taxonomyFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTaxonomy, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTaxonomy)
	}
	if file.Default == "" {
		file.Default = DefaultCategory
	}
	return New(file.Categories, file.Default)
}
