package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/pflag"

	"github.com/jackzampolin/chapterbrainz/internal/numeral"
	"github.com/jackzampolin/chapterbrainz/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Prefixes) != 3 {
		t.Fatalf("expected 3 default prefix rules, got %d", len(cfg.Prefixes))
	}
	if cfg.Prefixes[0].Name != "chapter" || cfg.Prefixes[0].Templates["english"] != "Chapter |index|: " {
		t.Errorf("unexpected first rule: %+v", cfg.Prefixes[0])
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_SERIES_NAME", "Kaguya-sama")

		result := ResolveEnvVars("${TEST_SERIES_NAME}, Chapter |index|")
		if result != "Kaguya-sama, Chapter |index|" {
			t.Errorf("expected substitution, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("Ch. |index| ")
		if result != "Ch. |index| " {
			t.Errorf("expected literal value, got %s", result)
		}
	})
}

func TestConfig_Options(t *testing.T) {
	t.Setenv("TEST_ENGLISH_PREFIX", "Episode")

	cfg := DefaultConfig()
	cfg.BracketsJapanese = true
	cfg.EnglishPrefix = "${TEST_ENGLISH_PREFIX} |index| - "
	cfg.IndexNotations["kanji"] = "kanji"
	cfg.SortIndexNotations["hepburn"] = "hepburn"

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if !opts.Brackets {
		t.Error("expected brackets")
	}
	if opts.Overrides[types.LocaleEnglish] != "Episode |index| - " {
		t.Errorf("override = %q", opts.Overrides[types.LocaleEnglish])
	}
	if opts.IndexNotations[types.LocaleKanji] != numeral.Kanji {
		t.Errorf("kanji notation = %q", opts.IndexNotations[types.LocaleKanji])
	}
	if opts.SortIndexNotations[types.LocaleHepburn] != numeral.Hepburn {
		t.Errorf("hepburn sort notation = %q", opts.SortIndexNotations[types.LocaleHepburn])
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown notation", func(c *Config) { c.IndexNotations["english"] = "binary" }},
		{"unknown notation locale", func(c *Config) { c.SortIndexNotations["romaji"] = "numeral" }},
		{"unknown template locale", func(c *Config) { c.Prefixes[0].Templates["romaji"] = "x" }},
		{"bad match mode", func(c *Config) { c.Prefixes[1].Match = "regex" }},
		{"duplicate rule", func(c *Config) { c.Prefixes[2].Name = "chapter" }},
		{"rule without keywords", func(c *Config) { c.Prefixes[0].Keywords = nil }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"work title locale", func(c *Config) { c.WorkTitles = append(c.WorkTitles, workTitle("romaji", "x")) }},
		{"work title text", func(c *Config) { c.WorkTitles = append(c.WorkTitles, workTitle("english", "")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfig_Table(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prefixes = append(cfg.Prefixes, PrefixCfg{
		Name:      "omake",
		Match:     "Contains",
		Keywords:  []string{"Omake"},
		Templates: map[string]string{"english": "Omake: "},
	})

	table, err := cfg.Table()
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	rule, ok := table.Classify("Omake 4koma")
	if !ok || rule.Name != "omake" {
		t.Errorf("Classify = %+v, %v", rule, ok)
	}
}

func TestConfig_Level(t *testing.T) {
	for input, want := range map[string]string{"": "INFO", "debug": "DEBUG", "WARN": "WARN", "error": "ERROR"} {
		cfg := &Config{LogLevel: input}
		level, err := cfg.Level()
		if err != nil {
			t.Errorf("Level(%q) failed: %v", input, err)
			continue
		}
		if level.String() != want {
			t.Errorf("Level(%q) = %s, want %s", input, level, want)
		}
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
brackets_japanese: true
english_chapter_prefix: "Ch. |index| "
index_notations:
  english: roman_numeral
work_titles:
  - locale: english
    text: "Series, Chapter |index|: |subtitle|"
`)

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if !cfg.BracketsJapanese {
			t.Error("expected brackets_japanese from file")
		}
		if cfg.EnglishPrefix != "Ch. |index| " {
			t.Errorf("english_chapter_prefix = %q", cfg.EnglishPrefix)
		}
		if cfg.IndexNotations["english"] != "roman_numeral" {
			t.Errorf("english notation = %q", cfg.IndexNotations["english"])
		}
		if len(cfg.Prefixes) != 3 {
			t.Errorf("expected default prefixes, got %d", len(cfg.Prefixes))
		}
		if len(cfg.WorkTitles) != 1 || cfg.WorkTitles[0].Locale != types.LocaleEnglish {
			t.Errorf("unexpected work titles: %+v", cfg.WorkTitles)
		}
		if mgr.ConfigFileUsed() != configFile {
			t.Errorf("ConfigFileUsed() = %q", mgr.ConfigFileUsed())
		}
	})

	t.Run("replaces prefix rules", func(t *testing.T) {
		configFile := writeConfig(t, `
prefixes:
  - name: chapter
    match: exact
    keywords: [chapter]
    templates:
      english: "#|index| "
`)

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		cfg := mgr.Get()
		if len(cfg.Prefixes) != 1 || cfg.Prefixes[0].Templates["english"] != "#|index| " {
			t.Errorf("unexpected prefixes: %+v", cfg.Prefixes)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("CHAPTERBRAINZ_LOG_LEVEL", "debug")
		configFile := writeConfig(t, "log_level: warn\n")

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if got := mgr.Get().LogLevel; got != "debug" {
			t.Errorf("log_level = %q, want debug", got)
		}
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		configFile := writeConfig(t, "index_notations:\n  kanji: abacus\n")
		if _, err := NewManager(configFile); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("rejects unreadable config", func(t *testing.T) {
		configFile := writeConfig(t, "prefixes: [\n")
		if _, err := NewManager(configFile); err == nil {
			t.Error("expected error for malformed config file")
		}
	})
}

func TestManager_BindFlag(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "brackets_japanese: false\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("use-brackets-japanese", false, "")
	if err := flags.Parse([]string{"--use-brackets-japanese"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if err := mgr.BindFlag("brackets_japanese", flags.Lookup("use-brackets-japanese")); err != nil {
		t.Fatalf("BindFlag failed: %v", err)
	}
	if !mgr.Get().BracketsJapanese {
		t.Error("flag did not override config file")
	}

	if err := mgr.BindFlag("brackets japanese", flags.Lookup("use-brackets-japanese")); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
	if err := mgr.BindFlag("log_level", nil); err == nil {
		t.Error("expected error for nil flag")
	}
}

func TestManager_Lookup(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "english_chapter_prefix: \"Ep. |index| \"\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	value, err := mgr.Lookup("english_chapter_prefix")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if value != "Ep. |index| " {
		t.Errorf("value = %v", value)
	}

	if _, err := mgr.Lookup("no_such_key"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
	if _, err := mgr.Lookup("bad key!"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "log_level: info\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if cfg := mgr.Get(); cfg == nil {
					t.Error("Get returned nil")
				}
			}
		}()
	}
	wg.Wait()
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# chapterbrainz configuration") {
		t.Errorf("missing header:\n%s", data)
	}

	// The written file must load back to the defaults.
	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	cfg := mgr.Get()
	if len(cfg.Prefixes) != 3 || cfg.Prefixes[1].Templates["kanji"] != "番外編 " {
		t.Errorf("unexpected prefixes after round trip: %+v", cfg.Prefixes)
	}
}
