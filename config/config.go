package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Search     SearchConfig     `mapstructure:"search"`
	Rules      RulesConfig      `mapstructure:"rules"`
	Log        LogConfig        `mapstructure:"log"`
	Experiment ExperimentConfig `mapstructure:"experiment"`
}

// SearchConfig holds the move search settings
type SearchConfig struct {
	Budget    time.Duration `mapstructure:"budget"`
	Margin    time.Duration `mapstructure:"margin"`
	MaxDepth  int           `mapstructure:"max_depth"`
	MemoLimit int           `mapstructure:"memo_limit"`
	Evaluate  string        `mapstructure:"evaluate"`
}

// RulesConfig selects the rules variant
type RulesConfig struct {
	Variant  string `mapstructure:"variant"`
	MaxTurns int    `mapstructure:"max_turns"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExperimentConfig holds the match-up settings
type ExperimentConfig struct {
	Name      string        `mapstructure:"name"`
	Games     int           `mapstructure:"games"`
	Budget    time.Duration `mapstructure:"budget"`
	OutputDir string        `mapstructure:"output_dir"`
	Seed      uint64        `mapstructure:"seed"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("search.budget", 60*time.Second)
	v.SetDefault("search.margin", 20*time.Millisecond)
	v.SetDefault("search.max_depth", 64)
	v.SetDefault("search.memo_limit", 4_000_000)
	v.SetDefault("search.evaluate", "heuristic")

	v.SetDefault("rules.variant", "standard")
	v.SetDefault("rules.max_turns", 1000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("experiment.name", "depth")
	v.SetDefault("experiment.games", 10)
	v.SetDefault("experiment.budget", 200*time.Millisecond)
	v.SetDefault("experiment.output_dir", "experiments")
	v.SetDefault("experiment.seed", 1)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("morris")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("MORRIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// Set overrides a key at runtime, as command line flags do.
func Set(key string, value any) error {
	if v == nil {
		return fmt.Errorf("config not initialized - call Init() first")
	}
	v.Set(key, value)
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Search.Budget <= 0 {
		return fmt.Errorf("search.budget must be positive")
	}
	if c.Search.Margin < 0 || c.Search.Margin >= c.Search.Budget {
		return fmt.Errorf("search.margin must be non-negative and below search.budget")
	}
	if c.Search.MaxDepth < 1 {
		return fmt.Errorf("search.max_depth must be at least 1")
	}
	if c.Search.MemoLimit < 0 {
		return fmt.Errorf("search.memo_limit must be non-negative")
	}
	switch c.Search.Evaluate {
	case "heuristic", "material":
	default:
		return fmt.Errorf("search.evaluate must be heuristic or material, got %q", c.Search.Evaluate)
	}

	switch c.Rules.Variant {
	case "standard", "lasker":
	default:
		return fmt.Errorf("rules.variant must be standard or lasker, got %q", c.Rules.Variant)
	}
	if c.Rules.MaxTurns <= 0 {
		return fmt.Errorf("rules.max_turns must be positive")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	if c.Experiment.Games <= 0 {
		return fmt.Errorf("experiment.games must be positive")
	}
	if c.Experiment.Budget <= 0 {
		return fmt.Errorf("experiment.budget must be positive")
	}
	return nil
}
