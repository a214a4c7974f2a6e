package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackzampolin/chapterbrainz/internal/numeral"
	"github.com/jackzampolin/chapterbrainz/internal/templating"
	"github.com/jackzampolin/chapterbrainz/internal/types"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds chapterbrainz configuration.
// Stored at: ~/.chapterbrainz/config.yaml or ./config.yaml
type Config struct {
	Prefixes           []PrefixCfg            `mapstructure:"prefixes" yaml:"prefixes" json:"prefixes"`
	IndexNotations     map[string]string      `mapstructure:"index_notations" yaml:"index_notations" json:"index_notations"`                // locale -> notation
	SortIndexNotations map[string]string      `mapstructure:"sort_index_notations" yaml:"sort_index_notations" json:"sort_index_notations"` // locale -> notation
	BracketsJapanese   bool                   `mapstructure:"brackets_japanese" yaml:"brackets_japanese" json:"brackets_japanese"`
	EnglishPrefix      string                 `mapstructure:"english_chapter_prefix" yaml:"english_chapter_prefix" json:"english_chapter_prefix"` // supports |index| and ${ENV_VAR}
	WorkTitles         []templating.WorkTitle `mapstructure:"work_titles" yaml:"work_titles" json:"work_titles"`                                  // supports ${ENV_VAR}
	LogLevel           string                 `mapstructure:"log_level" yaml:"log_level" json:"log_level"`                                        // debug, info, warn, error
}

// PrefixCfg configures one category prefix rule. Rules are tried in order.
type PrefixCfg struct {
	Name      string            `mapstructure:"name" yaml:"name" json:"name"`
	Match     string            `mapstructure:"match" yaml:"match" json:"match"` // "exact" or "contains"
	Keywords  []string          `mapstructure:"keywords" yaml:"keywords" json:"keywords"`
	Templates map[string]string `mapstructure:"templates" yaml:"templates" json:"templates"` // locale -> template with |index|
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	rules := templating.DefaultRules()
	prefixes := make([]PrefixCfg, 0, len(rules))
	for _, r := range rules {
		templates := make(map[string]string, len(r.Templates))
		for l, tmpl := range r.Templates {
			templates[string(l)] = tmpl
		}
		prefixes = append(prefixes, PrefixCfg{
			Name:      r.Name,
			Match:     string(r.Match),
			Keywords:  append([]string(nil), r.Keywords...),
			Templates: templates,
		})
	}

	return &Config{
		Prefixes: prefixes,
		IndexNotations: map[string]string{
			string(types.LocaleEnglish):  string(numeral.Numeral),
			string(types.LocaleKanji):    string(numeral.Numeral),
			string(types.LocaleKana):     string(numeral.Numeral),
			string(types.LocaleHiragana): string(numeral.Numeral),
			string(types.LocaleHepburn):  string(numeral.Numeral),
		},
		SortIndexNotations: map[string]string{
			string(types.LocaleEnglish):  string(numeral.Numeral),
			string(types.LocaleKanji):    string(numeral.Numeral),
			string(types.LocaleKana):     string(numeral.Numeral),
			string(types.LocaleHiragana): string(numeral.Numeral),
			string(types.LocaleHepburn):  string(numeral.Numeral),
		},
		LogLevel: "info",
	}
}

// Table builds the immutable prefix table.
func (c *Config) Table() (*templating.Table, error) {
	rules := make([]templating.Rule, 0, len(c.Prefixes))
	for _, p := range c.Prefixes {
		templates := make(map[types.Locale]string, len(p.Templates))
		for key, tmpl := range p.Templates {
			l, err := types.ParseLocale(key)
			if err != nil {
				return nil, fmt.Errorf("%w: prefix %q: %v", ErrInvalidConfig, p.Name, err)
			}
			templates[l] = tmpl
		}
		rules = append(rules, templating.Rule{
			Name:      p.Name,
			Match:     templating.MatchMode(strings.ToLower(p.Match)),
			Keywords:  p.Keywords,
			Templates: templates,
		})
	}

	t, err := templating.NewTable(rules...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return t, nil
}

// Options builds templating options from the notation, bracket, and override settings.
func (c *Config) Options() (templating.Options, error) {
	display, err := notations(c.IndexNotations)
	if err != nil {
		return templating.Options{}, fmt.Errorf("index_notations: %w", err)
	}
	sort, err := notations(c.SortIndexNotations)
	if err != nil {
		return templating.Options{}, fmt.Errorf("sort_index_notations: %w", err)
	}

	opts := templating.Options{
		Brackets:           c.BracketsJapanese,
		IndexNotations:     display,
		SortIndexNotations: sort,
	}
	if prefix := ResolveEnvVars(c.EnglishPrefix); prefix != "" {
		opts.Overrides = map[types.Locale]string{types.LocaleEnglish: prefix}
	}
	return opts, nil
}

func notations(in map[string]string) (map[types.Locale]numeral.Notation, error) {
	out := make(map[types.Locale]numeral.Notation, len(in))
	for key, value := range in {
		l, err := types.ParseLocale(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		n, err := numeral.ParseNotation(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, l, err)
		}
		out[l] = n
	}
	return out, nil
}

// ResolvedWorkTitles returns the work titles with ${ENV_VAR} references expanded.
func (c *Config) ResolvedWorkTitles() ([]templating.WorkTitle, error) {
	out := make([]templating.WorkTitle, 0, len(c.WorkTitles))
	for i, wt := range c.WorkTitles {
		l, err := types.ParseLocale(string(wt.Locale))
		if err != nil {
			return nil, fmt.Errorf("%w: work title %d: %v", ErrInvalidConfig, i, err)
		}
		if wt.Text == "" {
			return nil, fmt.Errorf("%w: work title %d has no text", ErrInvalidConfig, i)
		}
		out = append(out, templating.WorkTitle{
			Locale: l,
			Text:   ResolveEnvVars(wt.Text),
			Sort:   ResolveEnvVars(wt.Sort),
		})
	}
	return out, nil
}

// Level parses the configured log level. An empty level is info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

// Validate checks that every setting can be turned into its runtime form.
func (c *Config) Validate() error {
	if _, err := c.Table(); err != nil {
		return err
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	if _, err := c.ResolvedWorkTitles(); err != nil {
		return err
	}
	_, err := c.Level()
	return err
}
