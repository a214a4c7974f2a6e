// Package pipeline runs chapter records through the normalization stages: index
// inference, title prefixing, and catalog export.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/chapterbrainz/internal/catalog"
	"github.com/jackzampolin/chapterbrainz/internal/templating"
	"github.com/jackzampolin/chapterbrainz/internal/types"
)

// Options configures a Pipeline.
type Options struct {
	// Table is the prefix rule table. Nil uses templating.DefaultTable.
	Table *templating.Table

	Templating templating.Options

	// WorkTitles, when set, adds the render-work-titles stage.
	WorkTitles []templating.WorkTitle

	// RangeStart and RangeEnd limit the exported catalog to an inclusive index window.
	RangeStart *float64
	RangeEnd   *float64

	Logger *slog.Logger
}

// Pipeline drives a batch of chapters through its registered stages in dependency order.
type Pipeline struct {
	registry *Registry
	logger   *slog.Logger
}

// Result is the output of one run.
type Result struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	Chapters   []types.Chapter  `json:"chapters" yaml:"chapters"`
	Catalog    *catalog.Catalog `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	WorkTitles []WorkTitleRow   `json:"work_titles,omitempty" yaml:"work_titles,omitempty"`
	Warnings   []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// New creates a pipeline with the built-in stages registered.
func New(opts Options) (*Pipeline, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	table := opts.Table
	if table == nil {
		table = templating.DefaultTable()
	}

	stages := []Stage{
		inferStage{},
		prefixStage{table: table, opts: opts.Templating},
		exportStage{start: opts.RangeStart, end: opts.RangeEnd},
	}
	if len(opts.WorkTitles) > 0 {
		stages = append(stages, workTitleStage{titles: opts.WorkTitles, opts: opts.Templating})
	}

	r := NewRegistry()
	for _, s := range stages {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}

	return &Pipeline{registry: r, logger: logger}, nil
}

// Registry returns the stage registry so callers can add stages before running.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// Run processes chapters through every stage. The input slice is not modified.
// Cancellation is checked between stages.
func (p *Pipeline) Run(ctx context.Context, chapters []types.Chapter) (*Result, error) {
	if err := p.registry.Validate(); err != nil {
		return nil, err
	}
	stages, err := p.registry.GetOrdered()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	b := &Batch{
		RunID:    runID,
		Logger:   logger,
		Chapters: make([]types.Chapter, len(chapters)),
	}
	for i, ch := range chapters {
		b.Chapters[i] = ch.Clone()
	}

	logger.Info("pipeline started", "chapters", len(chapters), "stages", len(stages))
	start := time.Now()

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stageStart := time.Now()
		if err := s.Run(ctx, b); err != nil {
			logger.Error("stage failed", "stage", s.Name(), "error", err)
			return nil, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		logger.Debug("stage complete", "stage", s.Name(), "duration", time.Since(stageStart))
	}

	logger.Info("pipeline complete",
		"chapters", len(b.Chapters),
		"warnings", len(b.Warnings),
		"duration", time.Since(start))

	return b.result(), nil
}

func (b *Batch) result() *Result {
	res := &Result{
		RunID:      b.RunID,
		Catalog:    b.Catalog,
		WorkTitles: b.WorkTitles,
		Warnings:   b.Warnings,
	}
	if b.Prefixed != nil {
		res.Chapters = make([]types.Chapter, len(b.Prefixed))
		for i, p := range b.Prefixed {
			res.Chapters[i] = p.Chapter()
		}
	} else {
		res.Chapters = b.Chapters
	}
	return res
}
