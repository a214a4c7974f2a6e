// Package types provides shared types used across multiple packages.
// This package has no dependencies on other chapterbrainz packages to avoid import cycles.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Category labels a chapter record. The literal "Chapter" marks a mainline chapter;
// anything else ("Bonus Chapter", "Side Story", ...) is a special chapter.
type Category string

// CategoryChapter is the category of numbered mainline chapters.
const CategoryChapter Category = "Chapter"

// IsMainline reports whether the category is the literal mainline "Chapter" label.
func (c Category) IsMainline() bool {
	return c == CategoryChapter
}

// Locale identifies a title rendering.
type Locale string

const (
	LocaleEnglish  Locale = "english"
	LocaleKanji    Locale = "kanji"
	LocaleKana     Locale = "kana"
	LocaleHiragana Locale = "hiragana"
	LocaleHepburn  Locale = "hepburn"
)

// Locales lists every locale in canonical order.
var Locales = []Locale{LocaleEnglish, LocaleKanji, LocaleKana, LocaleHiragana, LocaleHepburn}

// ParseLocale converts a string to a Locale.
func ParseLocale(s string) (Locale, error) {
	switch l := Locale(strings.ToLower(strings.TrimSpace(s))); l {
	case LocaleEnglish, LocaleKanji, LocaleKana, LocaleHiragana, LocaleHepburn:
		return l, nil
	default:
		return "", fmt.Errorf("unknown locale: %q", s)
	}
}

// IsCJK reports whether the locale is written in Japanese script (as opposed to latin).
func (l Locale) IsCJK() bool {
	return l == LocaleKanji || l == LocaleKana || l == LocaleHiragana
}

// Titles holds one optional string per locale. A nil field means the locale is absent.
type Titles struct {
	English  *string `json:"english,omitempty" yaml:"english,omitempty"`
	Kanji    *string `json:"kanji,omitempty" yaml:"kanji,omitempty"`
	Kana     *string `json:"kana,omitempty" yaml:"kana,omitempty"`
	Hiragana *string `json:"hiragana,omitempty" yaml:"hiragana,omitempty"`
	Hepburn  *string `json:"hepburn,omitempty" yaml:"hepburn,omitempty"`
}

func (t *Titles) field(l Locale) **string {
	switch l {
	case LocaleEnglish:
		return &t.English
	case LocaleKanji:
		return &t.Kanji
	case LocaleKana:
		return &t.Kana
	case LocaleHiragana:
		return &t.Hiragana
	case LocaleHepburn:
		return &t.Hepburn
	default:
		return nil
	}
}

// Get returns the title for a locale and whether it is present.
func (t Titles) Get(l Locale) (string, bool) {
	f := t.field(l)
	if f == nil || *f == nil {
		return "", false
	}
	return **f, true
}

// Set stores a title for a locale. Unknown locales are ignored.
func (t *Titles) Set(l Locale, s string) {
	if f := t.field(l); f != nil {
		*f = &s
	}
}

// Present returns the locales that carry a value, in canonical order.
func (t Titles) Present() []Locale {
	var out []Locale
	for _, l := range Locales {
		if _, ok := t.Get(l); ok {
			out = append(out, l)
		}
	}
	return out
}

// Clone returns a deep copy so that callers never share string pointers.
func (t Titles) Clone() Titles {
	var c Titles
	for _, l := range t.Present() {
		v, _ := t.Get(l)
		c.Set(l, v)
	}
	return c
}

// Chapter is one entry in a serialized work.
type Chapter struct {
	Category Category `json:"category" yaml:"category"`
	Index    *float64 `json:"index,omitempty" yaml:"index,omitempty"` // nil until resolved
	Titles   Titles   `json:"titles" yaml:"titles"`
	SortKeys Titles   `json:"sort_keys" yaml:"sort_keys"` // absent locales sort by title
	Prefixed bool     `json:"prefixed,omitempty" yaml:"prefixed,omitempty"` // titles already carry prefixes
}

// HasIndex reports whether the chapter's index is known.
func (c Chapter) HasIndex() bool {
	return c.Index != nil
}

// IndexValue returns the index, or 0 if unresolved.
func (c Chapter) IndexValue() float64 {
	if c.Index == nil {
		return 0
	}
	return *c.Index
}

// IndexString renders the index in its shortest decimal form ("2", "1.5").
// Unresolved indices render as the empty string.
func (c Chapter) IndexString() string {
	if c.Index == nil {
		return ""
	}
	return strconv.FormatFloat(*c.Index, 'f', -1, 64)
}

// WithIndex returns a copy of the chapter with the given index.
func (c Chapter) WithIndex(v float64) Chapter {
	c.Index = &v
	return c
}

// Clone returns a deep copy of the chapter.
func (c Chapter) Clone() Chapter {
	out := Chapter{
		Category: c.Category,
		Prefixed: c.Prefixed,
		Titles:   c.Titles.Clone(),
		SortKeys: c.SortKeys.Clone(),
	}
	if c.Index != nil {
		v := *c.Index
		out.Index = &v
	}
	return out
}

// SortKey returns the sort override for a locale, falling back to the display title.
func (c Chapter) SortKey(l Locale) (string, bool) {
	if s, ok := c.SortKeys.Get(l); ok {
		return s, true
	}
	return c.Titles.Get(l)
}
