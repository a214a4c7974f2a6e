package numeral

import (
	"fmt"
	"strings"
)

// glyph holds one numeral in each Japanese notation.
type glyph struct {
	kanji       string
	hiragana    string
	hepburn     string
	formalKanji string
}

func (g glyph) in(n Notation) string {
	switch n {
	case Kanji:
		return g.kanji
	case Hiragana:
		return g.hiragana
	case Hepburn:
		return g.hepburn
	case FormalKanji:
		return g.formalKanji
	}
	return ""
}

// The formal kanji column follows the daiji used in series titles; digits without a
// common daiji keep their ordinary form.
var japaneseNumerals = map[int]glyph{
	0:           {"零", "れい", "Rei", "零"},
	1:           {"一", "いち", "Ichi", "壱"},
	2:           {"二", "に", "Ni", "弐"},
	3:           {"三", "さん", "San", "参"},
	4:           {"四", "し", "Shi", "四"},
	5:           {"五", "ご", "Go", "伍"},
	6:           {"六", "ろく", "Roku", "陸"},
	7:           {"七", "なな", "Nana", "七"},
	8:           {"八", "はち", "Hachi", "八"},
	9:           {"九", "きゅう", "Kyū", "九"},
	10:          {"十", "じゅう", "Jū", "拾"},
	100:         {"百", "ひゃく", "Hyaku", "佰"},
	1_000:       {"千", "せん", "Sen", "千"},
	10_000:      {"万", "まん", "Man", "万"},
	100_000_000: {"億", "おく", "Oku", "億"},
}

// placeValues are the powers of ten composed by toJapanese, largest first.
var placeValues = []int{10_000, 1_000, 100, 10, 1}

// toJapanese composes n from digit and place-value glyphs. A leading "one" is elided
// for every place above the units (十, not 一十).
func toJapanese(n int, notation Notation) (string, error) {
	if !notation.japanese() {
		return "", fmt.Errorf("%w: %q is not a Japanese notation", ErrUnsupportedNotation, notation)
	}
	if n < 0 || n > MaxJapanese {
		return "", fmt.Errorf("%w: %d is outside 0-%d for %s", ErrUnsupportedNotation, n, MaxJapanese, notation)
	}
	if n == 0 {
		return japaneseNumerals[0].in(notation), nil
	}

	var b strings.Builder
	rest := n
	for _, place := range placeValues {
		digit := rest / place
		rest %= place
		switch {
		case digit == 0:
		case place == 1:
			b.WriteString(japaneseNumerals[digit].in(notation))
		case digit == 1:
			b.WriteString(japaneseNumerals[place].in(notation))
		default:
			b.WriteString(japaneseNumerals[digit].in(notation))
			b.WriteString(japaneseNumerals[place].in(notation))
		}
	}
	return b.String(), nil
}
