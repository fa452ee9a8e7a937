package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds zoned configuration.
type Config struct {
	Spaces    SpacesConfig    `mapstructure:"spaces"`
	Settings  SettingsConfig  `mapstructure:"settings"`
	Templates TemplatesConfig `mapstructure:"templates"`
	LogLevel  string          `mapstructure:"log_level"`
}

// SpacesConfig controls per-space layout selection.
type SpacesConfig struct {
	// PerSpace gives every monitor and workspace pairing its own selection
	PerSpace bool `mapstructure:"per_space"`

	// DefaultLayout is the layout a new space starts with (default: the global layout)
	DefaultLayout string `mapstructure:"default_layout"`
}

// SettingsConfig selects the settings backend.
type SettingsConfig struct {
	// Backend is one of diskv, sqlite, memory
	Backend string `mapstructure:"backend"`
}

// TemplatesConfig locates an optional template catalog override.
type TemplatesConfig struct {
	// Path is a .json, .yaml or .yml catalog file; empty uses the built-in catalog
	Path string `mapstructure:"path"`
}

// Load reads configuration from the config file under paths and the
// environment. Env var overrides use prefix ZONED_, with dots replaced by
// underscores (ZONED_SPACES_PER_SPACE).
func Load(paths *Paths) (Config, error) {
	v := viper.New()

	v.SetDefault("spaces.per_space", false)
	v.SetDefault("spaces.default_layout", "")
	v.SetDefault("settings.backend", "diskv")
	v.SetDefault("templates.path", "")
	v.SetDefault("log_level", "info")

	v.SetConfigFile(paths.Config)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("ZONED")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(paths.Config) {
			return Config{}, fmt.Errorf("read config %s: %w", paths.Config, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.Templates.Path != "" {
		expanded, err := homedir.Expand(c.Templates.Path)
		if err != nil {
			return Config{}, fmt.Errorf("expand templates.path: %w", err)
		}
		c.Templates.Path = expanded
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Settings.Backend {
	case "diskv", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid settings.backend %q: want one of diskv|sqlite|memory", c.Settings.Backend)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// isMissingFile reports whether path does not exist. viper reports a
// missing explicit config file as a plain fs error.
func isMissingFile(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
