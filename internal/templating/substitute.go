package templating

import (
	"errors"
	"strings"

	"github.com/jackzampolin/chapterbrainz/internal/numeral"
)

// Placeholders recognized by Substitute. Substitution is literal find-and-replace.
const (
	IndexPlaceholder    = "|index|"
	SubtitlePlaceholder = "|subtitle|"
)

// Substitute replaces |subtitle| and then |index| in template. Because the subtitle
// goes in first, a subtitle may itself carry an |index| placeholder.
//
// The index is rendered in notation. Fractional indices are inserted as given.
// If the notation cannot express the index, the decimal index is inserted and the
// error is returned alongside the result.
func Substitute(template, index, subtitle string, notation numeral.Notation) (string, error) {
	s := strings.ReplaceAll(template, SubtitlePlaceholder, subtitle)
	if !strings.Contains(s, IndexPlaceholder) {
		return s, nil
	}

	rendered, err := numeral.FormatIndex(index, notation)
	switch {
	case err == nil:
	case errors.Is(err, numeral.ErrNonIntegralInput):
		err = nil
	default:
		rendered = index
	}
	return strings.ReplaceAll(s, IndexPlaceholder, rendered), err
}
