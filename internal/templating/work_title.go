package templating

import (
	"errors"

	"github.com/jackzampolin/chapterbrainz/internal/types"
)

// WorkTitle is a per-work title template rendered once for every chapter, such as
// "Kaguya-sama: Love Is War, Chapter |index|: |subtitle|".
type WorkTitle struct {
	Locale types.Locale `mapstructure:"locale" yaml:"locale" json:"locale"`
	Text   string       `mapstructure:"text" yaml:"text" json:"text"`
	Sort   string       `mapstructure:"sort" yaml:"sort" json:"sort"` // empty uses Text
}

// RenderedTitle is a WorkTitle filled in for one chapter.
type RenderedTitle struct {
	Locale types.Locale `yaml:"locale" json:"locale"`
	Text   string       `yaml:"text" json:"text"`
	Sort   string       `yaml:"sort" json:"sort"`
}

// RenderWorkTitle fills in a work title for one chapter. The sort string uses the sort
// notation and sortSubtitle (falling back to subtitle), and is passed through SanitizeSort.
func RenderWorkTitle(wt WorkTitle, index, subtitle, sortSubtitle string, opts Options) (RenderedTitle, error) {
	if sortSubtitle == "" {
		sortSubtitle = subtitle
	}
	sortTmpl := wt.Sort
	if sortTmpl == "" {
		sortTmpl = wt.Text
	}

	text, textErr := Substitute(wt.Text, index, subtitle, opts.notation(wt.Locale, false))
	sort, sortErr := Substitute(sortTmpl, index, sortSubtitle, opts.notation(wt.Locale, true))

	return RenderedTitle{
		Locale: wt.Locale,
		Text:   text,
		Sort:   SanitizeSort(sort),
	}, errors.Join(textErr, sortErr)
}
