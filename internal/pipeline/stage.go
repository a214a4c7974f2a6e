package pipeline

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/chapterbrainz/internal/catalog"
	"github.com/jackzampolin/chapterbrainz/internal/templating"
	"github.com/jackzampolin/chapterbrainz/internal/types"
)

// Stage is the interface that all pipeline stages must implement.
// Each stage reads what earlier stages left on the Batch and adds its own output.
type Stage interface {
	// Identity
	Name() string           // e.g., "infer-indices", "prefix-titles"
	Dependencies() []string // Stages that must complete first

	// Metadata
	Description() string

	// Run transforms the batch in place. A returned error stops the run.
	Run(ctx context.Context, b *Batch) error
}

// Batch is the working state of one pipeline run.
type Batch struct {
	RunID  string
	Logger *slog.Logger

	// Chapters are the records in source order; indices are resolved after infer-indices.
	Chapters []types.Chapter

	// Prefixed holds one rendered result per chapter after prefix-titles.
	Prefixed []templating.Prefixed

	Catalog    *catalog.Catalog
	WorkTitles []WorkTitleRow

	// Warnings collects non-fatal problems such as unknown categories.
	Warnings []string
}

// WorkTitleRow holds the work titles rendered for one chapter.
type WorkTitleRow struct {
	Index  string                     `json:"index" yaml:"index"`
	Titles []templating.RenderedTitle `json:"titles" yaml:"titles"`
}

func (b *Batch) warn(msg string, err error, args ...any) {
	b.Logger.Warn(msg, append(args, "error", err)...)
	b.Warnings = append(b.Warnings, err.Error())
}
