// Package config provides Viper-based configuration management for projtrend
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/spektr-org/projtrend"
	"github.com/spektr-org/projtrend/engine"
)

// Config represents the complete projtrend configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// InputConfig locates the project export
type InputConfig struct {
	Path      string `mapstructure:"path"`
	Separator string `mapstructure:"separator"`
}

// OutputConfig contains output file and formatting settings
type OutputConfig struct {
	FilteredCSV string `mapstructure:"filtered_csv"`
	Chart       string `mapstructure:"chart"`
	Summary     string `mapstructure:"summary"`
	Format      string `mapstructure:"format"`
	Colors      bool   `mapstructure:"colors"`
}

// FilterConfig contains the keyword filter settings
type FilterConfig struct {
	Keywords []string `mapstructure:"keywords"`
}

// AnalysisConfig contains trend estimation settings
type AnalysisConfig struct {
	Confidence float64 `mapstructure:"confidence"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(cfgFile string) (*Config, error) {
	return LoadWith(viper.New(), cfgFile)
}

// LoadWith is Load on a caller-provided Viper instance, so flags bound to v
// take precedence over file values.
func LoadWith(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Search paths for .projtrend.yaml
		v.SetConfigName(".projtrend")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/projtrend")
	}

	// Environment variables
	v.SetEnvPrefix("PROJTREND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.path", projtrend.DefaultInputPath)
	v.SetDefault("input.separator", ";")

	v.SetDefault("output.filtered_csv", projtrend.DefaultFilteredPath)
	v.SetDefault("output.chart", projtrend.DefaultChartPath)
	v.SetDefault("output.summary", "")
	v.SetDefault("output.format", "table")
	v.SetDefault("output.colors", true)

	v.SetDefault("filter.keywords", engine.DefaultKeywords)
	v.SetDefault("analysis.confidence", engine.DefaultConfidence)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.Input.Path == "" {
		return fmt.Errorf("input.path must not be empty")
	}
	if utf8.RuneCountInString(cfg.Input.Separator) != 1 {
		return fmt.Errorf("invalid input.separator %q: must be a single character", cfg.Input.Separator)
	}
	if cfg.Output.FilteredCSV == "" {
		return fmt.Errorf("output.filtered_csv must not be empty")
	}
	if cfg.Output.Chart == "" {
		return fmt.Errorf("output.chart must not be empty")
	}
	if len(cfg.Filter.Keywords) == 0 {
		return fmt.Errorf("filter.keywords must not be empty")
	}

	if cfg.Analysis.Confidence <= 0 || cfg.Analysis.Confidence >= 1 {
		return fmt.Errorf("invalid analysis.confidence: %v (must be between 0 and 1)", cfg.Analysis.Confidence)
	}

	validFormats := map[string]bool{"table": true, "json": true, "yaml": true}
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be table, json, or yaml)", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	// Validate logging format
	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}

	return nil
}

// Pipeline converts the configuration into the parameters of one run.
func (c *Config) Pipeline() projtrend.Config {
	sep, _ := utf8.DecodeRuneInString(c.Input.Separator)
	return projtrend.Config{
		InputPath:      c.Input.Path,
		InputSeparator: sep,
		FilteredPath:   c.Output.FilteredCSV,
		ChartPath:      c.Output.Chart,
		SummaryPath:    c.Output.Summary,
		Keywords:       c.Filter.Keywords,
		Confidence:     c.Analysis.Confidence,
	}
}
