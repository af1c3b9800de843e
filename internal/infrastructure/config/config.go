// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for pygmccg configuration.
	DefaultConfigDir = ".pygmccg"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default SQLite file name inside the config dir.
	DefaultDatabaseFile = "dictionary.db"
	// DefaultBusyTimeoutMS is the default SQLite busy timeout.
	DefaultBusyTimeoutMS = 5000
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	SQLite     SQLiteConfig     `yaml:"sqlite,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Dictionary DictionaryConfig `yaml:"dictionary,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite dictionary store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths are
	// resolved against the project directory.
	Path          string `yaml:"path,omitempty" env:"PYGMCCG_SQLITE_PATH"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms,omitempty" env:"PYGMCCG_SQLITE_BUSY_TIMEOUT_MS"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty" env:"PYGMCCG_LOG_LEVEL"`
	// Format is text or json.
	Format string `yaml:"format,omitempty" env:"PYGMCCG_LOG_FORMAT"`
}

// DictionaryConfig controls dictionary seeding.
type DictionaryConfig struct {
	// Dir holds dictionary files imported by `pygmccg import` when no file is given.
	Dir string `yaml:"dir,omitempty" env:"PYGMCCG_DICTIONARY_DIR"`
	// SeedSkills adds the built-in Skill dictionary on init.
	SeedSkills bool `yaml:"seed_skills" env:"PYGMCCG_SEED_SKILLS"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		SQLite: SQLiteConfig{
			Path:          filepath.Join(DefaultConfigDir, DefaultDatabaseFile),
			BusyTimeoutMS: DefaultBusyTimeoutMS,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Dictionary: DictionaryConfig{
			SeedSkills: true,
		},
	}
}

// Load loads configuration from the .pygmccg directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'pygmccg init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	cfg.resolvePaths(basePath)
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Unset variables
// leave the file values in place.
func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// resolvePaths makes relative paths absolute against basePath.
func (c *Config) resolvePaths(basePath string) {
	if c.SQLite.Path != "" && c.SQLite.Path != ":memory:" && !filepath.IsAbs(c.SQLite.Path) {
		c.SQLite.Path = filepath.Join(basePath, c.SQLite.Path)
	}
	if c.Dictionary.Dir != "" && !filepath.IsAbs(c.Dictionary.Dir) {
		c.Dictionary.Dir = filepath.Join(basePath, c.Dictionary.Dir)
	}
}

// ConfigDir returns the path to the .pygmccg config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a pygmccg config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
