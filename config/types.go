package config

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig               `mapstructure:"api"`
	Logging LoggingConfig           `mapstructure:"logging"`
	List    ListConfig              `mapstructure:"list"`
	Presets map[string]PresetConfig `mapstructure:"presets"`
}

// APIConfig holds The One API connection details
type APIConfig struct {
	Key     string `mapstructure:"key"`
	BaseURL string `mapstructure:"base_url"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// ListConfig controls how full collections are fetched
type ListConfig struct {
	PageSize    int `mapstructure:"page_size"`
	Concurrency int `mapstructure:"concurrency"`
}

// PresetConfig is a saved list query.
// Filters are kept as key=value strings since viper lowercases map keys
// and upstream field names are camelCase.
type PresetConfig struct {
	Resource string   `mapstructure:"resource"`
	Sort     string   `mapstructure:"sort"`
	Limit    int      `mapstructure:"limit"`
	Filter   []string `mapstructure:"filter"` // key=value, as the --filter flag
	Where    string   `mapstructure:"where"`
}
