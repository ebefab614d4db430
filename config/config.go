package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/onering/catalog"
	"github.com/s0up4200/onering/filter"
	"github.com/s0up4200/onering/theoneapi"
)

// EnvPrefix is prepended to every environment override, e.g. ONERING_API_KEY
const EnvPrefix = "ONERING"

const placeholderKey = "your-api-key-here"

// Load loads the configuration from file and environment.
// A missing file is only an error when configPath is set.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".onering"))
		}

		// Check /etc
		v.AddConfigPath("/etc/onering/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.key", "")
	v.SetDefault("api.base_url", theoneapi.DefaultBaseURL)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// List defaults
	v.SetDefault("list.page_size", catalog.DefaultPageSize)
	v.SetDefault("list.concurrency", catalog.DefaultConcurrency)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	if cfg.API.Key == placeholderKey {
		return fmt.Errorf("api.key must be set to a valid API key")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.List.PageSize <= 0 {
		return fmt.Errorf("list.page_size must be positive, got %d", cfg.List.PageSize)
	}
	if cfg.List.Concurrency <= 0 {
		return fmt.Errorf("list.concurrency must be positive, got %d", cfg.List.Concurrency)
	}

	for name, preset := range cfg.Presets {
		if _, err := catalog.ParseResource(preset.Resource); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		if _, err := catalog.ParseFilters(preset.Filter); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		if preset.Limit < 0 {
			return fmt.Errorf("preset %s: limit must not be negative", name)
		}
		if preset.Where != "" {
			if _, err := filter.Compile(preset.Where); err != nil {
				return fmt.Errorf("preset %s: %w", name, err)
			}
		}
	}

	return nil
}
