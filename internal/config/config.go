// Package config loads engine tuning knobs through a layered scheme:
// built-in defaults, an optional config file (YAML/TOML/JSON,
// auto-detected by extension), environment variables, then explicit CLI
// flags — each layer overriding only the keys it sets. Configuration never
// changes resolution semantics (cascade, overlap policy, wrapper
// contract); it only tunes the engine's knobs.
package config

import (
	"os"
	"path/filepath"

	"github.com/readlark/htmlhl/internal/engine"
	"github.com/readlark/htmlhl/internal/resolver"
	"github.com/spf13/viper"
)

// Config mirrors engine.Config's fields in a mapstructure/viper-friendly
// shape (flat, lowercase-snake keys) so it can be decoded from any of the
// three supported file formats or from HTMLHL_-prefixed environment
// variables.
type Config struct {
	MarkerTag              string  `mapstructure:"marker_tag"`
	CacheCapacity          int     `mapstructure:"cache_capacity"`
	DomPathThreshold       float64 `mapstructure:"dom_path_threshold"`
	TextPositionThreshold  float64 `mapstructure:"text_position_threshold"`
	ContextSearchThreshold float64 `mapstructure:"context_search_threshold"`
	PaletteFile            string  `mapstructure:"palette_file"`
	LogLevel               string  `mapstructure:"log_level"`
}

// ToEngineConfig converts the loaded configuration into the shape
// internal/engine consumes.
func (c Config) ToEngineConfig() engine.Config {
	return engine.Config{
		MarkerTag:     c.MarkerTag,
		CacheCapacity: c.CacheCapacity,
		Thresholds: resolver.Thresholds{
			DomPath:       c.DomPathThreshold,
			TextPosition:  c.TextPositionThreshold,
			ContextSearch: c.ContextSearchThreshold,
		},
		PaletteOverridePath: c.PaletteFile,
	}
}

// NewDefaultConfig returns the engine's default tuning.
func NewDefaultConfig() *Config {
	return &Config{
		MarkerTag:              "html-hl",
		CacheCapacity:          20,
		DomPathThreshold:       0.9,
		TextPositionThreshold:  0.7,
		ContextSearchThreshold: 0.5,
		PaletteFile:            "",
		LogLevel:               "info",
	}
}

// LoadConfig loads configuration from configPath if given, otherwise
// searches the working directory and home directory for a `.htmlhl`
// config file (any of .yaml/.yml/.toml/.json), applying built-in defaults
// first and environment-variable overrides (HTMLHL_ prefix) last, before
// the caller layers explicit CLI flags on top via the returned value.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".htmlhl")
	}

	v.SetEnvPrefix("HTMLHL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes cfg to configPath (or ~/.htmlhl.yaml if empty),
// creating parent directories as needed.
func SaveConfig(cfg *Config, configPath string) error {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(home, ".htmlhl.yaml")
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.MergeConfigMap(structToMap(cfg)); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}
	return v.WriteConfig()
}

func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("marker_tag", d.MarkerTag)
	v.SetDefault("cache_capacity", d.CacheCapacity)
	v.SetDefault("dom_path_threshold", d.DomPathThreshold)
	v.SetDefault("text_position_threshold", d.TextPositionThreshold)
	v.SetDefault("context_search_threshold", d.ContextSearchThreshold)
	v.SetDefault("palette_file", d.PaletteFile)
	v.SetDefault("log_level", d.LogLevel)
}

func structToMap(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"marker_tag":              cfg.MarkerTag,
		"cache_capacity":          cfg.CacheCapacity,
		"dom_path_threshold":      cfg.DomPathThreshold,
		"text_position_threshold": cfg.TextPositionThreshold,
		"context_search_threshold": cfg.ContextSearchThreshold,
		"palette_file":            cfg.PaletteFile,
		"log_level":               cfg.LogLevel,
	}
}
