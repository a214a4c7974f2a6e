package pipeline

import (
	"context"
	"errors"

	"github.com/jackzampolin/chapterbrainz/internal/catalog"
	"github.com/jackzampolin/chapterbrainz/internal/inference"
	"github.com/jackzampolin/chapterbrainz/internal/templating"
)

// Built-in stage names.
const (
	StageInferIndices     = "infer-indices"
	StagePrefixTitles     = "prefix-titles"
	StageExportCatalog    = "export-catalog"
	StageRenderWorkTitles = "render-work-titles"
)

type inferStage struct{}

func (inferStage) Name() string           { return StageInferIndices }
func (inferStage) Dependencies() []string { return nil }
func (inferStage) Description() string    { return "Fill in missing chapter indices from neighbouring records" }

func (inferStage) Run(ctx context.Context, b *Batch) error {
	resolved, err := inference.Infer(b.Chapters)
	if err != nil {
		return err
	}
	b.Chapters = resolved
	b.Logger.Debug("indices resolved", "chapters", len(resolved))
	return nil
}

type prefixStage struct {
	table *templating.Table
	opts  templating.Options
}

func (prefixStage) Name() string           { return StagePrefixTitles }
func (prefixStage) Dependencies() []string { return []string{StageInferIndices} }
func (prefixStage) Description() string    { return "Render category prefixes and sort keys for every locale" }

func (s prefixStage) Run(ctx context.Context, b *Batch) error {
	b.Prefixed = make([]templating.Prefixed, 0, len(b.Chapters))
	for _, ch := range b.Chapters {
		p, err := templating.Apply(ch, s.table, s.opts)
		if err != nil {
			msg := "notation not applicable"
			switch {
			case errors.Is(err, templating.ErrUnknownCategory):
				msg = "category matches no prefix rule, left unprefixed"
			case errors.Is(err, templating.ErrAlreadyPrefixed):
				msg = "chapter already prefixed, left as is"
			}
			b.warn(msg, err, "category", ch.Category, "index", ch.IndexString())
		}
		b.Prefixed = append(b.Prefixed, p)
	}
	return nil
}

type exportStage struct {
	start, end *float64
}

func (exportStage) Name() string           { return StageExportCatalog }
func (exportStage) Dependencies() []string { return []string{StagePrefixTitles} }
func (exportStage) Description() string    { return "Build the index-keyed catalog export" }

func (s exportStage) Run(ctx context.Context, b *Batch) error {
	c, err := catalog.Export(b.Prefixed)
	if err != nil {
		return err
	}
	if s.start != nil || s.end != nil {
		c = c.Between(s.start, s.end)
	}
	b.Catalog = c
	b.Logger.Debug("catalog exported", "entries", c.Len())
	return nil
}

type workTitleStage struct {
	titles []templating.WorkTitle
	opts   templating.Options
}

func (workTitleStage) Name() string           { return StageRenderWorkTitles }
func (workTitleStage) Dependencies() []string { return []string{StageExportCatalog} }
func (workTitleStage) Description() string {
	return "Render per-work title templates from every exported catalog entry"
}

func (s workTitleStage) Run(ctx context.Context, b *Batch) error {
	for _, r := range b.Catalog.Subtitles {
		key := r.Key
		row := WorkTitleRow{Index: key}
		for _, wt := range s.titles {
			sub, ok := r.Entry.For(wt.Locale)
			if !ok {
				b.Logger.Debug("no subtitle for work title", "locale", wt.Locale, "index", key)
			}
			rendered, err := templating.RenderWorkTitle(wt, key, sub.Title, sub.Sort, s.opts)
			if err != nil {
				b.warn("work title notation not applicable", err, "locale", wt.Locale, "index", key)
			}
			row.Titles = append(row.Titles, rendered)
		}
		b.WorkTitles = append(b.WorkTitles, row)
	}
	return nil
}
