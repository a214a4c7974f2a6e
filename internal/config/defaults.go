package config

import (
	"errors"
	"fmt"
	"unicode"
)

// Sentinel errors for config keys.
var (
	// ErrNoDefault is returned when no default value exists for a config key.
	ErrNoDefault = errors.New("no default exists")

	// ErrInvalidKey is returned when a config key contains invalid characters.
	ErrInvalidKey = errors.New("invalid config key")

	// ErrUnknownKey is returned when a key is neither a known setting nor present in the
	// loaded config.
	ErrUnknownKey = errors.New("unknown config key")
)

// Entry describes one top-level configuration key and its default value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns the default configuration entries.
// These seed viper's defaults and document the generated config file.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{
			Key:         "prefixes",
			Value:       d.Prefixes,
			Description: "Ordered category prefix rules; the first matching rule wins",
		},
		{
			Key:         "index_notations",
			Value:       d.IndexNotations,
			Description: "Per-locale notation for |index| in displayed titles",
		},
		{
			Key:         "sort_index_notations",
			Value:       d.SortIndexNotations,
			Description: "Per-locale notation for |index| in sort keys",
		},
		{
			Key:         "brackets_japanese",
			Value:       d.BracketsJapanese,
			Description: "Wrap Japanese prefixes in 【】 (kanji, kana, hiragana) or [] (hepburn)",
		},
		{
			Key:         "english_chapter_prefix",
			Value:       d.EnglishPrefix,
			Description: "Replaces the English mainline prefix; may contain |index|",
		},
		{
			Key:         "work_titles",
			Value:       d.WorkTitles,
			Description: "Per-work title templates with |index| and |subtitle|",
		},
		{
			Key:         "log_level",
			Value:       d.LogLevel,
			Description: "Log level: debug, info, warn, or error",
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// DefaultValue returns the default value for a config key.
// Returns ErrNoDefault if no default exists for the key.
func DefaultValue(key string) (any, error) {
	def := GetDefault(key)
	if def == nil {
		return nil, fmt.Errorf("%w for key %q", ErrNoDefault, key)
	}
	return def.Value, nil
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
// This protects against typos and malformed keys.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	// Don't allow keys starting or ending with dots
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}
