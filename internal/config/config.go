package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig
	Scenarios ScenariosConfig
	Log       LogConfig
	UI        UIConfig
}

// DatabaseConfig holds sqlite settings for the value journal.
type DatabaseConfig struct {
	Path string
}

// ScenariosConfig points at the scenario catalogue.
type ScenariosConfig struct {
	Path string
}

// LogConfig holds structured log settings. The terminal belongs to the
// TUI, so logs always go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds field defaults and presentation settings. A negative
// DefaultScale means unset: the scale follows the precision.
type UIConfig struct {
	DefaultPrecision int `mapstructure:"default_precision"`
	DefaultScale     int `mapstructure:"default_scale"`
	Placeholder      string
	Locale           string
}

// Load reads configuration from file and env. Env var overrides use prefix DECIMALINPUT_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "decimalinput", "journal.db"))
	v.SetDefault("scenarios.path", filepath.Join(home, ".config", "decimalinput", "scenarios.toml"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "decimalinput", "decimalinput.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.default_precision", 0)
	v.SetDefault("ui.default_scale", -1)
	v.SetDefault("ui.placeholder", "0.00")
	v.SetDefault("ui.locale", "en")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DECIMALINPUT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "decimalinput"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DECIMALINPUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.DefaultPrecision < 0 {
		return Config{}, fmt.Errorf("ui defaults: precision must not be negative")
	}
	if c.UI.DefaultScale >= 0 && c.UI.DefaultPrecision == 0 {
		return Config{}, fmt.Errorf("ui defaults: default_scale needs default_precision")
	}
	return c, nil
}

// SlogLevel maps log.level onto slog. Unknown names fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Scale returns the configured default scale, or nil when unset.
func (c UIConfig) Scale() *int {
	if c.DefaultScale < 0 {
		return nil
	}
	s := c.DefaultScale
	return &s
}

// Tag parses ui.locale, falling back to English.
func (c UIConfig) Tag() language.Tag {
	tag, err := language.Parse(strings.TrimSpace(c.Locale))
	if err != nil {
		return language.English
	}
	return tag
}
