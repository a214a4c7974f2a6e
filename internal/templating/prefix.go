package templating

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackzampolin/chapterbrainz/internal/numeral"
	"github.com/jackzampolin/chapterbrainz/internal/types"
)

// Options controls how prefixes are rendered.
type Options struct {
	// Brackets wraps Japanese-locale prefixes: 【…】 for CJK scripts, […] for hepburn.
	Brackets bool

	// Overrides replace the templated prefix for mainline chapters in plain locales.
	// They may contain |index|.
	Overrides map[types.Locale]string

	// IndexNotations selects the numeral notation for |index| in displayed titles,
	// SortIndexNotations for sort keys. Missing locales use numeral.Numeral.
	IndexNotations     map[types.Locale]numeral.Notation
	SortIndexNotations map[types.Locale]numeral.Notation
}

func (o Options) notation(l types.Locale, sort bool) numeral.Notation {
	m := o.IndexNotations
	if sort {
		m = o.SortIndexNotations
	}
	if n, ok := m[l]; ok && n != "" {
		return n
	}
	return numeral.Numeral
}

func (o Options) bracketed(l types.Locale) bool {
	return o.Brackets && l != types.LocaleEnglish
}

// Prefixed is the output of Apply. Chapter converts it back to a record marked as
// prefixed, which Apply rejects.
type Prefixed struct {
	Source   types.Chapter // the chapter as given to Apply
	Rule     string        // matched rule name, empty for unknown categories
	Titles   types.Titles  // display titles with prefixes
	SortKeys types.Titles  // bracket-free sort variants; absent locales sort by title
}

// Chapter returns the prefixed titles and sort keys as a chapter record.
func (p Prefixed) Chapter() types.Chapter {
	ch := p.Source.Clone()
	ch.Prefixed = true
	ch.Titles = p.Titles.Clone()
	ch.SortKeys = p.SortKeys.Clone()
	return ch
}

// SortKey returns the sort key for a locale, falling back to the display title.
func (p Prefixed) SortKey(l types.Locale) (string, bool) {
	if s, ok := p.SortKeys.Get(l); ok {
		return s, true
	}
	return p.Titles.Get(l)
}

// Apply prefixes every title of ch according to the first rule in table matching its
// category. The input chapter is not modified, so calling Apply twice on the same
// chapter yields the same result.
//
// A chapter already marked as prefixed yields ErrAlreadyPrefixed and is returned as is.
// An unknown category yields ErrUnknownCategory with the titles left unprefixed.
// Notation failures are joined into the returned error; the affected prefix falls back
// to the decimal index. Neither is fatal: the returned Prefixed is always usable.
func Apply(ch types.Chapter, table *Table, opts Options) (Prefixed, error) {
	out := Prefixed{
		Source:   ch.Clone(),
		Titles:   ch.Titles.Clone(),
		SortKeys: ch.SortKeys.Clone(),
	}

	if ch.Prefixed {
		return out, ErrAlreadyPrefixed
	}

	rule, ok := table.Classify(ch.Category)
	if !ok {
		return out, fmt.Errorf("%w: %q", ErrUnknownCategory, ch.Category)
	}
	out.Rule = rule.Name

	mainline := strings.EqualFold(strings.TrimSpace(string(ch.Category)), string(types.CategoryChapter))
	index := ch.IndexString()

	var errs []error
	for _, l := range types.Locales {
		tmpl, ok := rule.Templates[l]
		if !ok {
			continue
		}
		title, ok := ch.Titles.Get(l)
		if !ok {
			continue
		}
		sortBase, _ := ch.SortKey(l)

		if override := opts.Overrides[l]; mainline && override != "" && !opts.bracketed(l) {
			tmpl = override
		}

		prefix, err := Substitute(tmpl, index, "", opts.notation(l, false))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s prefix: %w", l, err))
		}
		sortPrefix, err := Substitute(tmpl, index, "", opts.notation(l, true))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s sort prefix: %w", l, err))
		}

		if opts.bracketed(l) {
			out.Titles.Set(l, bracket(prefix, l)+title)
			out.SortKeys.Set(l, sortPrefix+sortBase)
			continue
		}

		out.Titles.Set(l, prefix+title)
		if _, hasSort := ch.SortKeys.Get(l); hasSort || sortPrefix != prefix {
			out.SortKeys.Set(l, sortPrefix+sortBase)
		}
	}

	return out, errors.Join(errs...)
}

// bracket wraps a prefix, turning its last space into the closing bracket. CJK scripts
// use full-width brackets; latin-rendered Japanese keeps a space after the closer.
func bracket(prefix string, l types.Locale) string {
	open, closer := "[", "] "
	if l.IsCJK() {
		open, closer = "【", "】"
	}
	return open + replaceLast(prefix, " ", closer)
}

// replaceLast replaces the last occurrence of old in s. Without an occurrence the
// replacement is appended.
func replaceLast(s, old, replacement string) string {
	i := strings.LastIndex(s, old)
	if i < 0 {
		return s + replacement
	}
	return s[:i] + replacement + s[i+len(old):]
}
