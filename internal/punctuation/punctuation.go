// Package punctuation cleans raw chapter titles: Unicode normalization, typographic
// punctuation, and spacing of space-separated kana readings.
package punctuation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cleanup composes characters, turns line breaks and tabs into spaces, and drops the
// remaining control characters left over from markup. Chains carry state, so each
// call builds its own.
func cleanup() transform.Transformer {
	return transform.Chain(
		norm.NFC,
		runes.Map(func(r rune) rune {
			if r == '\t' || r == '\n' || r == '\r' {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.In(unicode.Cc)),
	)
}

var typographic = strings.NewReplacer(
	"...", "…",
	"'", "’",
	"-", "‐",
)

// Typographic NFC-normalizes s and swaps ASCII punctuation for its typographic form:
// apostrophes, hyphens, ellipses, and alternating curly double quotes.
func Typographic(s string) string {
	if out, _, err := transform.String(cleanup(), s); err == nil {
		s = out
	}
	s = typographic.Replace(s)

	if !strings.Contains(s, `"`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	open := true
	for _, r := range s {
		if r != '"' {
			b.WriteRune(r)
			continue
		}
		if open {
			b.WriteRune('“')
		} else {
			b.WriteRune('”')
		}
		open = !open
	}
	return b.String()
}

// tightChars never take a space on either side in a kana reading.
var tightChars = []string{
	"！", "、", "・", "·", "!", "?", ".", "×", "．", "‐", "「", "」", "【", "】",
	"〈", "〉", "(", ")", "[", "]", "{", "}", "　",
	"1", "2", "3", "4", "5", "6", "7", "8", "9",
}

// isTightSymbol reports enclosed alphanumerics, CJK symbols and punctuation, and
// full-width signs.
func isTightSymbol(r rune) bool {
	return (r >= 0x2460 && r <= 0x24FF) ||
		(r >= 0x3000 && r <= 0x303F) ||
		(r >= 0xFFE0 && r <= 0xFFEE)
}

// CompactKana tidies a space-separated kana reading (one word per token, as produced
// by morphological transliterators): runs of spaces collapse, spaces around
// punctuation and digits disappear, and a spaced-out "vs." is rejoined.
func CompactKana(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.NewReplacer(
		" ｖ ｓ ． ", "ｖｓ．",
		"ｖ ｓ ．", "ｖｓ．",
		" vs ． ", "vs．",
		"vs ．", "vs．",
	).Replace(s)

	for _, c := range tightChars {
		s = tighten(s, c)
	}

	seen := make(map[rune]bool)
	for _, r := range s {
		if isTightSymbol(r) && !seen[r] {
			seen[r] = true
			s = tighten(s, string(r))
		}
	}
	return strings.TrimSpace(s)
}

func tighten(s, c string) string {
	s = strings.ReplaceAll(s, " "+c+" ", c)
	s = strings.ReplaceAll(s, c+" ", c)
	return strings.ReplaceAll(s, " "+c, c)
}
