package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/chapterbrainz/internal/config"
	"github.com/jackzampolin/chapterbrainz/internal/home"
	"github.com/jackzampolin/chapterbrainz/internal/output"
	"github.com/jackzampolin/chapterbrainz/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "chapterbrainz",
	Short: "Normalize scraped chapter listings into catalog-ready titles",
	Long: `chapterbrainz turns a scraped chapter listing into catalog-ready records.

The pipeline:
  - Infers missing chapter indices (bonus chapters land on .5, runs step by .1)
  - Prefixes every title per locale ("Chapter 12: ", "第十二話 ", "Dai 12 Wa ")
  - Renders bracket-free sort keys and sanitizes them
  - Exports an index-keyed catalog for the form filler`,
	Version:      version.GitRelease,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set output format before any command runs
		if _, err := output.ParseFormat(outputFormat); err != nil {
			return err
		}
		output.SetFormat(outputFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.chapterbrainz/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "chapterbrainz home directory (default: ~/.chapterbrainz)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, error",
	)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(numberCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads configuration for cmd. Without --config, a config file in --home
// takes precedence over the default search path. bindings map config keys to flag names
// that override them when set.
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Manager, error) {
	path := cfgFile
	if path == "" && homeDir != "" {
		h, err := home.New(homeDir)
		if err != nil {
			return nil, err
		}
		if h.ConfigExists() {
			path = h.ConfigPath()
		}
	}

	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}

	if bindings == nil {
		bindings = map[string]string{}
	}
	bindings["log_level"] = "log-level"
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := mgr.BindFlag(key, flag); err != nil {
			return nil, err
		}
	}
	return mgr, nil
}

// newLogger builds the CLI logger. Logs go to stderr so stdout carries only output.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})), nil
}
