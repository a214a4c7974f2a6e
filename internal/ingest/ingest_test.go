package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/chapterbrainz/internal/types"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		input    string
		category types.Category
		index    float64 // 0 means no index
	}{
		{"12", types.CategoryChapter, 12},
		{"12.", types.CategoryChapter, 12},
		{" 3 ", types.CategoryChapter, 3},
		{"", types.CategoryChapter, 0},
		{".", types.CategoryChapter, 0},
		{"Bonus Chapter", "Bonus Chapter", 0},
		{"Side Story.", "Side Story", 0},
		{"1.5", "1.5", 0},
		{"１２", types.CategoryChapter, 12},
		{"１２．", types.CategoryChapter, 12},
		{"第１２話", "第１２話", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			category, index := ParseLabel(tt.input)
			if category != tt.category {
				t.Errorf("category = %q, want %q", category, tt.category)
			}
			switch {
			case tt.index == 0 && index != nil:
				t.Errorf("index = %v, want none", *index)
			case tt.index != 0 && (index == nil || *index != tt.index):
				t.Errorf("index = %v, want %v", index, tt.index)
			}
		})
	}
}

func TestDecode_JSONAndYAML(t *testing.T) {
	jsonDoc := `{"chapters": [
		{"label": "1", "english": "The Movie", "kanji": "映画に誘わせたい", "hepburn": "Eiga ni Sasowasetai"},
		{"label": "Bonus Chapter", "english": "Beach"}
	]}`
	yamlDoc := `
chapters:
  - label: "1"
    english: The Movie
    kanji: 映画に誘わせたい
    hepburn: Eiga ni Sasowasetai
  - label: Bonus Chapter
    english: Beach
`

	for name, input := range map[string]string{"json": jsonDoc, "yaml": yamlDoc} {
		t.Run(name, func(t *testing.T) {
			doc, err := Decode([]byte(input))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if len(doc.Chapters) != 2 {
				t.Fatalf("expected 2 chapters, got %d", len(doc.Chapters))
			}
			if doc.Chapters[0].Kanji == nil || *doc.Chapters[0].Kanji != "映画に誘わせたい" {
				t.Errorf("kanji not decoded: %v", doc.Chapters[0].Kanji)
			}
		})
	}
}

func TestDecode_BareList(t *testing.T) {
	doc, err := Decode([]byte(`[{"english": "One"}, {"english": "Two"}]`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(doc.Chapters) != 2 {
		t.Errorf("expected 2 chapters, got %d", len(doc.Chapters))
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"malformed", `{"chapters": [`},
		{"missing chapters", `{"start": 1}`},
		{"no title", `{"chapters": [{"label": "1"}]}`},
		{"null only title", `{"chapters": [{"english": null}]}`},
		{"unknown field", `{"chapters": [{"english": "A", "volume": 2}]}`},
		{"index not a number", `{"chapters": [{"english": "A", "index": "two"}]}`},
		{"unknown sort locale", `{"chapters": [{"english": "A", "sort": {"romaji": "a"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.input)); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("error = %v, want ErrInvalidDocument", err)
			}
		})
	}
}

func TestDocument_Records(t *testing.T) {
	doc, err := Decode([]byte(`{"chapters": [
		{"label": "1.", "english": "\"I Will Make You Invite Me to a Movie\"", "kanji": "映画に誘わせたい", "hiragana": "えいが  に さそわ せたい", "hepburn": "Eiga ni Sasowasetai"},
		{"label": "Bonus Chapter", "english": "Kaguya's Day Off"},
		{"label": "", "english": "Two Titles", "kanji": "二つ"},
		{"label": "Bonus Chapter", "category": "Side Story", "index": 2.5, "english": "Override", "sort": {"english": "override"}}
	]}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	chapters, err := doc.Records(nil)
	if err != nil {
		t.Fatalf("Chapters failed: %v", err)
	}
	if len(chapters) != 4 {
		t.Fatalf("expected 4 chapters, got %d", len(chapters))
	}

	first := chapters[0]
	if first.Category != types.CategoryChapter || first.IndexString() != "1" {
		t.Errorf("first chapter = %q %q", first.Category, first.IndexString())
	}
	if s, _ := first.Titles.Get(types.LocaleEnglish); s != "I Will Make You Invite Me to a Movie" {
		t.Errorf("english not unquoted: %q", s)
	}
	if s, _ := first.Titles.Get(types.LocaleHiragana); s != "えいが に さそわ せたい" {
		t.Errorf("hiragana not compacted: %q", s)
	}

	bonus := chapters[1]
	if bonus.Category != "Bonus Chapter" || bonus.HasIndex() {
		t.Errorf("bonus chapter = %q %q", bonus.Category, bonus.IndexString())
	}
	for _, l := range []types.Locale{types.LocaleEnglish, types.LocaleKanji, types.LocaleHepburn} {
		if s, _ := bonus.Titles.Get(l); s != "Kaguya’s Day Off" {
			t.Errorf("%s = %q, want english fallback with typographic apostrophe", l, s)
		}
	}
	if _, ok := bonus.Titles.Get(types.LocaleHiragana); ok {
		t.Error("hiragana should stay absent")
	}

	two := chapters[2]
	if s, _ := two.Titles.Get(types.LocaleKanji); s != "二つ" {
		t.Errorf("kanji = %q", s)
	}
	if s, _ := two.Titles.Get(types.LocaleHepburn); s != "Two Titles" {
		t.Errorf("hepburn should fall back to english, got %q", s)
	}

	override := chapters[3]
	if override.Category != "Side Story" || override.IndexString() != "2.5" {
		t.Errorf("explicit fields ignored: %q %q", override.Category, override.IndexString())
	}
	if s, _ := override.SortKeys.Get(types.LocaleEnglish); s != "override" {
		t.Errorf("sort key = %q", s)
	}
}

func TestDocument_RecordsStart(t *testing.T) {
	doc, err := Decode([]byte(`
start: 10
chapters:
  - english: Ten
  - english: Extra
    label: Bonus Chapter
  - english: Eleven
  - english: Explicit
    index: 20
  - english: Twelve
`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	chapters, err := doc.Records(nil)
	if err != nil {
		t.Fatalf("Chapters failed: %v", err)
	}

	expected := []string{"10", "", "11", "20", "13"}
	for i, want := range expected {
		if got := chapters[i].IndexString(); got != want {
			t.Errorf("chapter %d index = %q, want %q", i, got, want)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapters.yaml")
	if err := os.WriteFile(path, []byte("- english: Only\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(doc.Chapters) != 1 {
		t.Errorf("expected 1 chapter, got %d", len(doc.Chapters))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
