// Package ingest loads raw chapter listings handed over by a markup scraper and turns
// them into chapter records.
package ingest

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/width"
	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/chapterbrainz/internal/punctuation"
	"github.com/jackzampolin/chapterbrainz/internal/types"
)

//go:embed schemas/document.json
var schemaFS embed.FS

const schemaName = "schemas/document.json"

// ErrInvalidDocument is returned when a listing cannot be decoded or fails validation.
var ErrInvalidDocument = errors.New("invalid chapter document")

// Item is one raw entry from the scraper. Label is the text in front of the title in the
// source list ("12", "Bonus Chapter", or empty); Category and Index, when set, take
// precedence over what the label implies.
type Item struct {
	Label    *string           `json:"label,omitempty" yaml:"label,omitempty"`
	Category *string           `json:"category,omitempty" yaml:"category,omitempty"`
	Index    *float64          `json:"index,omitempty" yaml:"index,omitempty"`
	English  *string           `json:"english,omitempty" yaml:"english,omitempty"`
	Kanji    *string           `json:"kanji,omitempty" yaml:"kanji,omitempty"`
	Kana     *string           `json:"kana,omitempty" yaml:"kana,omitempty"`
	Hiragana *string           `json:"hiragana,omitempty" yaml:"hiragana,omitempty"`
	Hepburn  *string           `json:"hepburn,omitempty" yaml:"hepburn,omitempty"`
	Sort     map[string]string `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// Document is a raw chapter listing in source order.
type Document struct {
	// Start numbers unindexed mainline chapters start, start+1, ... as in a
	// numbered list.
	Start    *float64 `json:"start,omitempty" yaml:"start,omitempty"`
	Chapters []Item   `json:"chapters" yaml:"chapters"`
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := schemaFS.ReadFile(schemaName)
		if err != nil {
			schemaErr = fmt.Errorf("failed to read document schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, bytes.NewReader(raw)); err != nil {
			schemaErr = fmt.Errorf("failed to load document schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaName)
	})
	return compiledSchema, schemaErr
}

// Decode parses a JSON or YAML listing and validates it against the document schema.
// A bare list of items is accepted as shorthand for {"chapters": [...]}.
func Decode(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if list, ok := raw.([]any); ok {
		raw = map[string]any{"chapters": list}
	}

	// Round-trip through JSON so the validator sees JSON types regardless of input format.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var doc any
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	schema, err := documentSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var out Document
	if err := json.Unmarshal(asJSON, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &out, nil
}

// Read decodes a listing from r.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapter document: %w", err)
	}
	return Decode(data)
}

// ReadFile decodes a listing from path; "-" reads standard input.
func ReadFile(path string) (*Document, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chapter document: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// ParseLabel classifies the text in front of a title. A decimal label (ASCII or
// full-width digits) is a mainline chapter with that index; any other non-empty label is
// a free-text category; an empty label is a mainline chapter of unknown index. A
// trailing "." is ignored.
func ParseLabel(label string) (types.Category, *float64) {
	label = strings.Trim(strings.TrimSpace(label), ".．")
	label = strings.TrimSpace(label)
	if label == "" {
		return types.CategoryChapter, nil
	}
	if digits := width.Narrow.String(label); isDecimal(digits) {
		if v, err := strconv.ParseFloat(digits, 64); err == nil {
			return types.CategoryChapter, &v
		}
	}
	return types.Category(label), nil
}

func isDecimal(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Records converts the listing into chapter records in source order.
// Titles are cleaned with punctuation.Typographic and kana readings with
// punctuation.CompactKana. A missing kanji or hepburn title falls back to the English one.
func (d *Document) Records(logger *slog.Logger) ([]types.Chapter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]types.Chapter, 0, len(d.Chapters))
	mainline := 0
	for i, item := range d.Chapters {
		ch, err := item.chapter()
		if err != nil {
			return nil, fmt.Errorf("chapter %d: %w", i, err)
		}

		if ch.Category.IsMainline() {
			if ch.Index == nil && d.Start != nil {
				ch = ch.WithIndex(*d.Start + float64(mainline))
			}
			mainline++
		}

		logger.Debug("ingested chapter", "position", i, "category", ch.Category, "index", ch.IndexString())
		out = append(out, ch)
	}
	return out, nil
}

func (item Item) chapter() (types.Chapter, error) {
	var label string
	if item.Label != nil {
		label = *item.Label
	}
	category, index := ParseLabel(label)
	if item.Category != nil && strings.TrimSpace(*item.Category) != "" {
		category = types.Category(strings.TrimSpace(*item.Category))
	}
	if item.Index != nil {
		v := *item.Index
		index = &v
	}

	ch := types.Chapter{Category: category, Index: index}

	english := item.English
	if english != nil {
		s := punctuation.Typographic(unquote(*english))
		english = &s
		ch.Titles.Set(types.LocaleEnglish, s)
	}
	for _, t := range []struct {
		locale types.Locale
		value  *string
	}{
		{types.LocaleKanji, item.Kanji},
		{types.LocaleHepburn, item.Hepburn},
	} {
		switch {
		case t.value != nil:
			ch.Titles.Set(t.locale, punctuation.Typographic(*t.value))
		case english != nil:
			ch.Titles.Set(t.locale, *english)
		}
	}
	if item.Kana != nil {
		ch.Titles.Set(types.LocaleKana, punctuation.CompactKana(*item.Kana))
	}
	if item.Hiragana != nil {
		ch.Titles.Set(types.LocaleHiragana, punctuation.CompactKana(*item.Hiragana))
	}

	for key, value := range item.Sort {
		l, err := types.ParseLocale(key)
		if err != nil {
			return types.Chapter{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		ch.SortKeys.Set(l, value)
	}
	return ch, nil
}

// unquote strips one pair of surrounding ASCII double quotes.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
