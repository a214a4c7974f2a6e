// Package config loads chapterbrainz settings from defaults, a YAML config file,
// CHAPTERBRAINZ_* environment variables, and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the environment variable prefix, e.g. CHAPTERBRAINZ_BRACKETS_JAPANESE.
const EnvPrefix = "CHAPTERBRAINZ"

// Manager handles loading configuration. Each Manager owns its own viper instance.
type Manager struct {
	mu     sync.RWMutex
	v      *viper.Viper
	config *Config
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{v: viper.New()}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	for _, entry := range DefaultEntries() {
		cm.v.SetDefault(entry.Key, entry.Value)
	}

	// Environment variables with CHAPTERBRAINZ_ prefix
	cm.v.SetEnvPrefix(EnvPrefix)
	cm.v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		cm.v.SetConfigFile(cfgFile)
	} else {
		cm.v.SetConfigName("config")
		cm.v.SetConfigType("yaml")
		cm.v.AddConfigPath(".")
		cm.v.AddConfigPath("$HOME/.chapterbrainz")
	}

	// Try to read config file (not required)
	if err := cm.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a validated Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFileUsed returns the path of the loaded config file, or "" when running on
// defaults and environment only.
func (cm *Manager) ConfigFileUsed() string {
	return cm.v.ConfigFileUsed()
}

// BindFlag lets a command-line flag override key when the flag is set, then reloads.
func (cm *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if flag == nil {
		return fmt.Errorf("no flag to bind for %q", key)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := cm.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag for %q: %w", key, err)
	}
	cfg, err := cm.load()
	if err != nil {
		return err
	}
	cm.config = cfg
	return nil
}

// Lookup returns the effective value of a single top-level key.
func (cm *Manager) Lookup(key string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if GetDefault(key) == nil && !cm.v.IsSet(key) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return cm.v.Get(key), nil
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# chapterbrainz configuration\n" +
		"# Every key can be overridden with a " + EnvPrefix + "_<KEY> environment variable.\n" +
		"# english_chapter_prefix and work_titles use ${ENV_VAR} syntax to reference environment variables.\n" +
		"#\n")
	for _, entry := range DefaultEntries() {
		header = fmt.Appendf(header, "#   %-22s %s\n", entry.Key, entry.Description)
	}
	header = append(header, '\n')

	return os.WriteFile(path, append(header, data...), 0o644)
}
