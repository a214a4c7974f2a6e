// Package numeral renders whole numbers in the numeral systems used by chapter titles:
// Arabic digits, Roman numerals, and four Japanese renderings.
package numeral

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors for the numeral package.
var (
	// ErrUnsupportedNotation is returned for unknown notations and for magnitudes
	// a notation cannot express.
	ErrUnsupportedNotation = errors.New("unsupported notation")

	// ErrNonIntegralInput is returned alongside the unchanged input when a
	// fractional or non-numeric index is formatted. Callers treat it as "not applicable".
	ErrNonIntegralInput = errors.New("non-integral input")
)

// Notation is a numeral rendering system.
type Notation string

const (
	Numeral     Notation = "numeral"
	Roman       Notation = "roman_numeral"
	Kanji       Notation = "kanji"
	Hiragana    Notation = "hiragana"
	Hepburn     Notation = "hepburn"
	FormalKanji Notation = "formal_kanji"
)

// MaxJapanese is the largest magnitude the Japanese notations compose.
const MaxJapanese = 99_999

// Notations lists every supported notation.
var Notations = []Notation{Numeral, Roman, Kanji, Hiragana, Hepburn, FormalKanji}

// ParseNotation converts a string to a Notation.
func ParseNotation(s string) (Notation, error) {
	n := Notation(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNotation, s)
	}
	return n, nil
}

// Valid reports whether the notation is recognized.
func (n Notation) Valid() bool {
	switch n {
	case Numeral, Roman, Kanji, Hiragana, Hepburn, FormalKanji:
		return true
	}
	return false
}

func (n Notation) japanese() bool {
	return n == Kanji || n == Hiragana || n == Hepburn || n == FormalKanji
}

// Format renders n in the given notation.
func Format(n int, notation Notation) (string, error) {
	switch notation {
	case Numeral:
		return strconv.Itoa(n), nil
	case Roman:
		if n <= 0 {
			return "", fmt.Errorf("%w: roman numerals have no form for %d", ErrUnsupportedNotation, n)
		}
		return toRoman(n), nil
	case Kanji, Hiragana, Hepburn, FormalKanji:
		return toJapanese(n, notation)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNotation, notation)
	}
}

// FormatIndex renders a stringified chapter index. Indices that are not whole numbers
// ("1.5", "Extra") come back unchanged together with ErrNonIntegralInput.
func FormatIndex(index string, notation Notation) (string, error) {
	if !notation.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNotation, notation)
	}
	if notation == Numeral {
		return index, nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(index), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
		return index, fmt.Errorf("%w: %q", ErrNonIntegralInput, index)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return index, fmt.Errorf("%w: %q out of range", ErrUnsupportedNotation, index)
	}
	return Format(int(v), notation)
}

// toRoman converts an integer to roman numeral.
func toRoman(num int) string {
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var result strings.Builder
	for i := 0; i < len(values); i++ {
		for num >= values[i] {
			num -= values[i]
			result.WriteString(symbols[i])
		}
	}
	return result.String()
}
