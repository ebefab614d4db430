package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/onering/theoneapi"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  key: secret-key
logging:
  level: debug
  format: json
list:
  page_size: 50
presets:
  hobbits:
    resource: characters
    sort: name:asc
    filter:
      - race=Hobbit
      - runtimeInMinutes>=160
    where: hasValue(spouse)
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.API.Key)
	assert.Equal(t, theoneapi.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Equal(t, 50, cfg.List.PageSize)
	assert.Equal(t, 4, cfg.List.Concurrency)

	require.Contains(t, cfg.Presets, "hobbits")
	preset := cfg.Presets["hobbits"]
	assert.Equal(t, "characters", preset.Resource)
	assert.Equal(t, "name:asc", preset.Sort)
	assert.Equal(t, []string{"race=Hobbit", "runtimeInMinutes>=160"}, preset.Filter)
	assert.Equal(t, "hasValue(spouse)", preset.Where)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "api:\n  key: from-file\n")

	t.Setenv("ONERING_API_KEY", "from-env")
	t.Setenv("ONERING_API_BASE_URL", "http://localhost:8080")
	t.Setenv("ONERING_LIST_CONCURRENCY", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Key)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 8, cfg.List.Concurrency)
}

func TestLoadMissingFile(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})

	t.Run("search paths fall back to defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, theoneapi.DefaultBaseURL, cfg.API.BaseURL)
		assert.Equal(t, "info", cfg.Logging.Level)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: theoneapi.DefaultBaseURL},
			Logging: LoggingConfig{Level: "info", Format: "console"},
			List:    ListConfig{PageSize: 100, Concurrency: 4},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid without key",
			mutate: func(*Config) {},
		},
		{
			name:    "placeholder key",
			mutate:  func(c *Config) { c.API.Key = "your-api-key-here" },
			wantErr: "api.key",
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url is required",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.List.PageSize = 0 },
			wantErr: "list.page_size",
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.List.Concurrency = -1 },
			wantErr: "list.concurrency",
		},
		{
			name: "preset with unknown resource",
			mutate: func(c *Config) {
				c.Presets = map[string]PresetConfig{"rings": {Resource: "ring"}}
			},
			wantErr: "preset rings",
		},
		{
			name: "preset with bad filter",
			mutate: func(c *Config) {
				c.Presets = map[string]PresetConfig{"elves": {Resource: "character", Filter: []string{"race"}}}
			},
			wantErr: "expected key=value",
		},
		{
			name: "preset with bad expression",
			mutate: func(c *Config) {
				c.Presets = map[string]PresetConfig{"elves": {Resource: "character", Where: "race =="}}
			},
			wantErr: "preset elves",
		},
		{
			name: "valid preset",
			mutate: func(c *Config) {
				c.Presets = map[string]PresetConfig{"elves": {Resource: "character", Filter: []string{"race=Elf"}, Where: `name startsWith "L"`}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
