package numeral

import (
	"errors"
	"testing"
	"unicode/utf8"
)

// romanToInt converts a roman numeral to integer.
func romanToInt(s string) int {
	romanMap := map[byte]int{
		'I': 1, 'V': 5, 'X': 10, 'L': 50,
		'C': 100, 'D': 500, 'M': 1000,
	}

	result := 0
	for i := 0; i < len(s); i++ {
		val, ok := romanMap[s[i]]
		if !ok {
			return 0
		}
		if i+1 < len(s) && romanMap[s[i+1]] > val {
			result -= val
		} else {
			result += val
		}
	}
	return result
}

func TestFormat_Numeral(t *testing.T) {
	for _, n := range []int{0, 1, 42, 123456} {
		got, err := Format(n, Numeral)
		if err != nil {
			t.Fatalf("Format(%d) failed: %v", n, err)
		}
		if got == "" {
			t.Errorf("Format(%d) returned empty string", n)
		}
	}

	got, _ := Format(1234, Numeral)
	if got != "1234" {
		t.Errorf("got %q, want 1234", got)
	}
}

func TestFormat_Roman(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{1994, "MCMXCIV"},
		{3999, "MMMCMXCIX"},
	}

	for _, tt := range tests {
		got, err := Format(tt.n, Roman)
		if err != nil {
			t.Fatalf("Format(%d, roman) failed: %v", tt.n, err)
		}
		if got != tt.expected {
			t.Errorf("Format(%d, roman) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

func TestFormat_RomanRoundTrip(t *testing.T) {
	for n := 1; n <= 3999; n++ {
		s, err := Format(n, Roman)
		if err != nil {
			t.Fatalf("Format(%d, roman) failed: %v", n, err)
		}
		if back := romanToInt(s); back != n {
			t.Fatalf("round trip %d -> %q -> %d", n, s, back)
		}
	}
}

func TestFormat_RomanRejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1, -3999} {
		got, err := Format(n, Roman)
		if !errors.Is(err, ErrUnsupportedNotation) {
			t.Errorf("Format(%d, roman) error = %v, want ErrUnsupportedNotation", n, err)
		}
		if got != "" {
			t.Errorf("Format(%d, roman) = %q, want empty on error", n, got)
		}
	}
}

func TestFormat_Japanese(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		notation Notation
		expected string
	}{
		{"zero kanji", 0, Kanji, "零"},
		{"zero hiragana", 0, Hiragana, "れい"},
		{"zero hepburn", 0, Hepburn, "Rei"},
		{"one", 1, Kanji, "一"},
		{"ten elides one", 10, Kanji, "十"},
		{"eleven", 11, Kanji, "十一"},
		{"twenty", 20, Kanji, "二十"},
		{"hundred elides one", 100, Kanji, "百"},
		{"one hundred five", 105, Kanji, "百五"},
		{"thousand", 1000, Kanji, "千"},
		{"ten thousand", 10000, Kanji, "万"},
		{"mixed", 12345, Kanji, "万二千三百四十五"},
		{"max", 99999, Kanji, "九万九千九百九十九"},
		{"hiragana", 12, Hiragana, "じゅうに"},
		{"hepburn", 21, Hepburn, "NiJūIchi"},
		{"formal", 23, FormalKanji, "弐拾参"},
		{"formal hundred", 160, FormalKanji, "佰陸拾"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.n, tt.notation)
			if err != nil {
				t.Fatalf("Format(%d, %s) failed: %v", tt.n, tt.notation, err)
			}
			if got != tt.expected {
				t.Errorf("Format(%d, %s) = %q, want %q", tt.n, tt.notation, got, tt.expected)
			}
		})
	}
}

func TestFormat_JapaneseFullRange(t *testing.T) {
	for _, notation := range []Notation{Kanji, Hiragana, Hepburn, FormalKanji} {
		for n := 0; n <= MaxJapanese; n++ {
			got, err := Format(n, notation)
			if err != nil {
				t.Fatalf("Format(%d, %s) failed: %v", n, notation, err)
			}
			if got == "" {
				t.Fatalf("Format(%d, %s) returned empty string", n, notation)
			}
			// Five places, each at most a digit glyph plus a place glyph.
			if notation == Kanji || notation == FormalKanji {
				if count := utf8.RuneCountInString(got); count > 9 {
					t.Fatalf("Format(%d, %s) = %q has %d glyphs", n, notation, got, count)
				}
			}
		}
	}
}

func TestFormat_JapaneseOutOfRange(t *testing.T) {
	for _, notation := range []Notation{Kanji, Hiragana, Hepburn, FormalKanji} {
		for _, n := range []int{100_000, 100_000_000, -1} {
			if _, err := Format(n, notation); !errors.Is(err, ErrUnsupportedNotation) {
				t.Errorf("Format(%d, %s) error = %v, want ErrUnsupportedNotation", n, notation, err)
			}
		}
	}
}

func TestFormat_UnknownNotation(t *testing.T) {
	if _, err := Format(1, Notation("klingon")); !errors.Is(err, ErrUnsupportedNotation) {
		t.Errorf("expected ErrUnsupportedNotation, got %v", err)
	}
}

func TestFormatIndex(t *testing.T) {
	tests := []struct {
		name     string
		index    string
		notation Notation
		expected string
		wantErr  error
	}{
		{"numeral passes through", "12", Numeral, "12", nil},
		{"numeral keeps fractions", "1.5", Numeral, "1.5", nil},
		{"integral kanji", "12", Kanji, "十二", nil},
		{"integral written as float", "3.0", Roman, "III", nil},
		{"fraction passes through", "1.5", Kanji, "1.5", ErrNonIntegralInput},
		{"text passes through", "Extra", Hepburn, "Extra", ErrNonIntegralInput},
		{"out of range", "100000", Kanji, "", ErrUnsupportedNotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatIndex(tt.index, tt.notation)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("FormatIndex(%q, %s) = %q, want %q", tt.index, tt.notation, got, tt.expected)
			}
		})
	}
}

func TestParseNotation(t *testing.T) {
	for _, n := range Notations {
		got, err := ParseNotation(string(n))
		if err != nil {
			t.Fatalf("ParseNotation(%q) failed: %v", n, err)
		}
		if got != n {
			t.Errorf("got %q, want %q", got, n)
		}
	}

	if got, err := ParseNotation(" Kanji "); err != nil || got != Kanji {
		t.Errorf("expected case-insensitive parse, got %q, %v", got, err)
	}
	if _, err := ParseNotation("arabic"); !errors.Is(err, ErrUnsupportedNotation) {
		t.Errorf("expected ErrUnsupportedNotation, got %v", err)
	}
}
