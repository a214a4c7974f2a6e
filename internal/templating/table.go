// Package templating renders per-locale chapter titles and sort keys: category prefixes,
// placeholder substitution, bracket styling, and sort-string sanitization.
package templating

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/jackzampolin/chapterbrainz/internal/types"
)

// Sentinel errors for the templating package.
var (
	// ErrUnknownCategory is returned when no prefix rule matches a chapter's category.
	// The chapter is still returned, unprefixed.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrAlreadyPrefixed is returned when Apply is given a chapter whose titles already
	// carry prefixes. The chapter is returned unchanged.
	ErrAlreadyPrefixed = errors.New("chapter already prefixed")

	// ErrInvalidRule is returned by NewTable for malformed rules.
	ErrInvalidRule = errors.New("invalid prefix rule")
)

// MatchMode selects how a rule's keywords are compared with a category label.
type MatchMode string

const (
	// MatchExact matches when the lowercased label equals a keyword.
	MatchExact MatchMode = "exact"
	// MatchContains matches when the lowercased label contains a keyword.
	MatchContains MatchMode = "contains"
)

// Rule maps a family of category labels to per-locale prefix templates.
// Templates may contain the |index| placeholder.
type Rule struct {
	Name      string
	Match     MatchMode
	Keywords  []string
	Templates map[types.Locale]string
}

func (r Rule) matches(label string) bool {
	for _, kw := range r.Keywords {
		switch r.Match {
		case MatchExact:
			if label == kw {
				return true
			}
		case MatchContains:
			if strings.Contains(label, kw) {
				return true
			}
		}
	}
	return false
}

func (r Rule) clone() Rule {
	return Rule{
		Name:      r.Name,
		Match:     r.Match,
		Keywords:  append([]string(nil), r.Keywords...),
		Templates: maps.Clone(r.Templates),
	}
}

// Table is an immutable, ordered set of prefix rules. The first matching rule wins.
type Table struct {
	rules []Rule
}

// NewTable validates and copies rules into a Table.
func NewTable(rules ...Rule) (*Table, error) {
	seen := make(map[string]bool, len(rules))
	t := &Table{rules: make([]Rule, 0, len(rules))}

	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: rule %d has no name", ErrInvalidRule, i)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("%w: duplicate rule %q", ErrInvalidRule, r.Name)
		}
		seen[r.Name] = true

		if r.Match != MatchExact && r.Match != MatchContains {
			return nil, fmt.Errorf("%w: rule %q has match mode %q", ErrInvalidRule, r.Name, r.Match)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("%w: rule %q has no keywords", ErrInvalidRule, r.Name)
		}

		c := r.clone()
		for j, kw := range c.Keywords {
			c.Keywords[j] = strings.ToLower(kw)
		}
		t.rules = append(t.rules, c)
	}
	return t, nil
}

// Classify returns the first rule matching the category label.
func (t *Table) Classify(category types.Category) (Rule, bool) {
	label := strings.ToLower(strings.TrimSpace(string(category)))
	for _, r := range t.rules {
		if r.matches(label) {
			return r.clone(), true
		}
	}
	return Rule{}, false
}

// Rules returns a copy of the rules in match order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.clone()
	}
	return out
}

// DefaultRules returns the stock chapter, bonus, and side story rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "chapter",
			Match:    MatchExact,
			Keywords: []string{"chapter"},
			Templates: map[types.Locale]string{
				types.LocaleEnglish:  "Chapter |index|: ",
				types.LocaleKanji:    "第|index|話 ",
				types.LocaleKana:     "ダイ|index|ワ ",
				types.LocaleHiragana: "だい|index|わ ",
				types.LocaleHepburn:  "Dai |index| Wa ",
			},
		},
		{
			Name:     "bonus",
			Match:    MatchContains,
			Keywords: []string{"bonus", "extra", "special"},
			Templates: map[types.Locale]string{
				types.LocaleEnglish:  "Bonus Chapter: ",
				types.LocaleKanji:    "番外編 ",
				types.LocaleKana:     "バンガイヘン ",
				types.LocaleHiragana: "ばんがいへん ",
				types.LocaleHepburn:  "Bangai‐hen ",
			},
		},
		{
			Name:     "side",
			Match:    MatchContains,
			Keywords: []string{"side"},
			Templates: map[types.Locale]string{
				types.LocaleEnglish:  "Side Story: ",
				types.LocaleKanji:    "外伝 ",
				types.LocaleKana:     "ガイデン ",
				types.LocaleHiragana: "がいでん ",
				types.LocaleHepburn:  "Gaiden ",
			},
		},
	}
}

// DefaultTable returns a Table built from DefaultRules.
func DefaultTable() *Table {
	t, err := NewTable(DefaultRules()...)
	if err != nil {
		panic(err)
	}
	return t
}
