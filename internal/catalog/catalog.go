// Package catalog exports normalized chapters in the shape the DriverBrainz form filler
// consumes: a map from index to per-script subtitle entries, plus the ordered index list.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/chapterbrainz/internal/templating"
	"github.com/jackzampolin/chapterbrainz/internal/types"
)

// Sentinel errors for the catalog package.
var (
	// ErrUnresolvedIndex is returned when a chapter reaches export without an index.
	ErrUnresolvedIndex = errors.New("chapter has no index")

	// ErrDuplicateIndex is returned when two chapters render to the same key.
	ErrDuplicateIndex = errors.New("duplicate chapter index")
)

// Subtitle is one rendered title with its optional sort string.
type Subtitle struct {
	Title string `json:"title" yaml:"title"`
	Sort  string `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// Entry holds the subtitles of one chapter: "0" kanji, "1" English, "2" romanized.
type Entry struct {
	Kanji     *Subtitle `json:"0,omitempty" yaml:"0,omitempty"`
	English   *Subtitle `json:"1,omitempty" yaml:"1,omitempty"`
	Romanized *Subtitle `json:"2,omitempty" yaml:"2,omitempty"`
}

// For returns the subtitle slot a locale renders into. Kanji, kana and hiragana share
// slot "0".
func (e Entry) For(l types.Locale) (Subtitle, bool) {
	var s *Subtitle
	switch l {
	case types.LocaleKanji, types.LocaleKana, types.LocaleHiragana:
		s = e.Kanji
	case types.LocaleEnglish:
		s = e.English
	case types.LocaleHepburn:
		s = e.Romanized
	}
	if s == nil {
		return Subtitle{}, false
	}
	return *s, true
}

// Row is one chapter of the export.
type Row struct {
	Key   string
	Index float64
	Entry Entry
}

// Subtitles keeps rows in pipeline order and serializes as an ordered mapping keyed by
// the stringified index.
type Subtitles []Row

// MarshalJSON writes the rows as a JSON object in row order.
func (s Subtitles) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, row := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(row.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(row.Entry)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the rows as a YAML mapping in row order.
func (s Subtitles) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, row := range s {
		var value yaml.Node
		if err := value.Encode(row.Entry); err != nil {
			return nil, fmt.Errorf("failed to encode chapter %s: %w", row.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: row.Key},
			&value,
		)
	}
	return node, nil
}

// Catalog is the exported chapter set.
type Catalog struct {
	Subtitles Subtitles `json:"subtitles" yaml:"subtitles"`
	Range     []string  `json:"range" yaml:"range"`
}

// Export builds a catalog from prefixed chapters. Sort strings pass through
// templating.SanitizeSort. The kanji entry sorts by the hiragana reading when one is
// present, otherwise by the kanji sort key.
func Export(chapters []templating.Prefixed) (*Catalog, error) {
	c := &Catalog{
		Subtitles: make(Subtitles, 0, len(chapters)),
		Range:     make([]string, 0, len(chapters)),
	}
	seen := make(map[string]bool, len(chapters))

	for i, p := range chapters {
		if !p.Source.HasIndex() {
			return nil, fmt.Errorf("%w: position %d (%s)", ErrUnresolvedIndex, i, p.Source.Category)
		}
		key := p.Source.IndexString()
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIndex, key)
		}
		seen[key] = true

		c.Subtitles = append(c.Subtitles, Row{
			Key:   key,
			Index: p.Source.IndexValue(),
			Entry: entry(p),
		})
		c.Range = append(c.Range, key)
	}
	return c, nil
}

func entry(p templating.Prefixed) Entry {
	var e Entry

	if title, ok := p.Titles.Get(types.LocaleKanji); ok {
		sort, ok := p.SortKey(types.LocaleHiragana)
		if !ok {
			sort, _ = p.SortKey(types.LocaleKanji)
		}
		e.Kanji = &Subtitle{Title: title, Sort: templating.SanitizeSort(sort)}
	}

	if title, ok := p.Titles.Get(types.LocaleEnglish); ok {
		e.English = &Subtitle{Title: title}
		if sort, ok := p.SortKeys.Get(types.LocaleEnglish); ok {
			e.English.Sort = templating.SanitizeSort(sort)
		}
	}

	if title, ok := p.Titles.Get(types.LocaleHepburn); ok {
		e.Romanized = &Subtitle{Title: title}
		if sort, ok := p.SortKeys.Get(types.LocaleHepburn); ok {
			e.Romanized.Sort = templating.SanitizeSort(sort)
		}
	}
	return e
}

// Lookup returns the entry for a key.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	for _, row := range c.Subtitles {
		if row.Key == key {
			return row.Entry, true
		}
	}
	return Entry{}, false
}

// Len returns the number of chapters in the catalog.
func (c *Catalog) Len() int {
	return len(c.Subtitles)
}

// Between returns the chapters whose index lies in [start, end]. A nil bound is open.
func (c *Catalog) Between(start, end *float64) *Catalog {
	out := &Catalog{
		Subtitles: make(Subtitles, 0, len(c.Subtitles)),
		Range:     make([]string, 0, len(c.Range)),
	}
	for _, row := range c.Subtitles {
		if start != nil && row.Index < *start {
			continue
		}
		if end != nil && row.Index > *end {
			continue
		}
		out.Subtitles = append(out.Subtitles, row)
		out.Range = append(out.Range, row.Key)
	}
	return out
}
