package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"edustat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Paths  PathConfig
	Stats  StatsConfig
	Output OutputConfig
	Log    LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// PathConfig holds file system paths
type PathConfig struct {
	TemplateDir string // holds indttest.html
	OutputDir   string // where rendered reports are written
}

// StatsConfig holds computation settings
type StatsConfig struct {
	Workers int
}

// OutputConfig controls how results are printed by the CLI
type OutputConfig struct {
	Format string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Supported output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Paths: PathConfig{
			TemplateDir: getEnvOrDefault("TEMPLATE_DIR", "outputs"),
			OutputDir:   getEnvOrDefault("OUTPUT_DIR", "outputs"),
		},
		Stats: StatsConfig{
			Workers: getEnvIntOrDefault("STATS_WORKERS", runtime.NumCPU()),
		},
		Output: OutputConfig{
			Format: strings.ToLower(getEnvOrDefault("OUTPUT_FORMAT", FormatJSON)),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Stats.Workers < 1 {
		return errors.ConfigInvalid("STATS_WORKERS must be at least 1")
	}
	if err := ValidateFormat(config.Output.Format); err != nil {
		return err
	}
	if config.Paths.TemplateDir == "" {
		return errors.ConfigInvalid("template directory is required")
	}
	return nil
}

// ValidateFormat accepts json and yaml
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return nil
	}
	return errors.ConfigInvalid("unsupported output format " + strconv.Quote(format) + " (want json or yaml)")
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
