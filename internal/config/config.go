// =============================================================================
// S&P Global Statutory Filing Parser - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. The
// configuration covers only the I/O glue around the core pipeline:
// directories, logging, output naming, and concurrency. The report formats
// themselves are fixed and carry no configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration, loaded from config.yaml.
type Config struct {
	// InputDir is the directory scanned for .xml filing exports.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory receiving the consolidated workbook and
	// any error log.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is where processed inputs are moved when
	// ArchiveOnSuccess is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputFormat is the output workbook filename template. Placeholders:
	//   {timestamp} - run timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	// Default: "Combined_Output_{timestamp}.xlsx"
	OutputFormat string `yaml:"output_format"`

	// LogLevel controls logging verbosity: "debug", "info", "warn",
	// "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// MaxConcurrency is the number of files processed in parallel.
	// File pipelines are independent; only the final merge is serialized.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ArchiveOnSuccess moves successfully processed inputs into
	// InputArchiveDir at the end of the run.
	// Default: false (inputs stay in place, matching the upstream system)
	ArchiveOnSuccess bool `yaml:"archive_on_success"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file, applies defaults, and validates it.
// A missing file is not an error: the defaults describe a complete,
// working configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills in any unset options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "Combined_Output_{timestamp}.xlsx"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 4
	}
}

// validate checks the configuration and creates missing directories.
func validate(cfg *Config) error {
	dirs := []string{cfg.OutputDir}
	if cfg.ArchiveOnSuccess {
		dirs = append(dirs, cfg.InputArchiveDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SlogLevel maps the configured log level to a slog level.
func (cfg *Config) SlogLevel() slog.Level {
	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
