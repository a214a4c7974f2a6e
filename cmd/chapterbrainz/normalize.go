package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/chapterbrainz/internal/home"
	"github.com/jackzampolin/chapterbrainz/internal/ingest"
	"github.com/jackzampolin/chapterbrainz/internal/output"
	"github.com/jackzampolin/chapterbrainz/internal/pipeline"
)

var (
	rangeStart    float64
	rangeEnd      float64
	catalogOnly   bool
	saveExport    bool
	normalizeKeys = map[string]string{
		"brackets_japanese":      "use-brackets-japanese",
		"english_chapter_prefix": "english-chapter-prefix",
	}
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Normalize a scraped chapter listing",
	Long: `Normalize a scraped chapter listing (JSON or YAML, "-" for stdin).

Each item carries a label ("12", "Bonus Chapter", or empty), an optional
explicit index, and up to five titles. Missing indices are inferred, every
title is prefixed per locale, and the result is exported keyed by index.

Examples:
  chapterbrainz normalize chapters.yaml
  chapterbrainz normalize chapters.json --use-brackets-japanese -o json
  chapterbrainz normalize chapters.yaml --range-start 100 --range-end 120 --catalog
  cat chapters.json | chapterbrainz normalize - --save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadConfig(cmd, normalizeKeys)
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		if used := mgr.ConfigFileUsed(); used != "" {
			logger.Debug("loaded config", "path", used)
		}

		doc, err := ingest.ReadFile(args[0])
		if err != nil {
			return err
		}
		chapters, err := doc.Records(logger)
		if err != nil {
			return err
		}

		table, err := cfg.Table()
		if err != nil {
			return err
		}
		opts, err := cfg.Options()
		if err != nil {
			return err
		}
		workTitles, err := cfg.ResolvedWorkTitles()
		if err != nil {
			return err
		}

		popts := pipeline.Options{
			Table:      table,
			Templating: opts,
			WorkTitles: workTitles,
			Logger:     logger,
		}
		if cmd.Flags().Changed("range-start") {
			popts.RangeStart = &rangeStart
		}
		if cmd.Flags().Changed("range-end") {
			popts.RangeEnd = &rangeEnd
		}

		p, err := pipeline.New(popts)
		if err != nil {
			return err
		}
		res, err := p.Run(cmd.Context(), chapters)
		if err != nil {
			return err
		}

		var out any = res
		if catalogOnly {
			out = res.Catalog
		}

		if saveExport {
			h, err := home.New(homeDir)
			if err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
			format := output.GetFormat()
			path := h.ExportPath(args[0], format.Ext())
			if err := output.WriteFile(path, format, out); err != nil {
				return err
			}
			logger.Info("saved export", "path", path, "run_id", res.RunID)
		}

		return output.Write(cmd.OutOrStdout(), out)
	},
}

func init() {
	normalizeCmd.Flags().Bool("use-brackets-japanese", false, "wrap Japanese prefixes in 【】 / []")
	normalizeCmd.Flags().String("english-chapter-prefix", "", "replace the English mainline prefix (may contain |index|)")
	normalizeCmd.Flags().Float64Var(&rangeStart, "range-start", 0, "first index to export")
	normalizeCmd.Flags().Float64Var(&rangeEnd, "range-end", 0, "last index to export")
	normalizeCmd.Flags().BoolVar(&catalogOnly, "catalog", false, "print only the catalog export")
	normalizeCmd.Flags().BoolVar(&saveExport, "save", false, "also save the output under the home exports directory")
}
