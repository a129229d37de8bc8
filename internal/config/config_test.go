package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "tempus.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Database.WriteTimeout)
	assert.Equal(t, uint32(0755), cfg.Database.DirPermissions)
	assert.Equal(t, "Mon, Jan 2", cfg.Display.DayFormat)
	assert.Equal(t, "15:04", cfg.Display.ClockFormat)
	assert.Equal(t, 2, cfg.Display.DescriptionColumn)
	assert.Equal(t, time.Second, cfg.Stopwatch.TickInterval)
	assert.False(t, cfg.Stopwatch.CacheElapsed)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("TEMPUS_DB_DIR", "/tmp/tempus-test")
	t.Setenv("TEMPUS_DB_FILENAME", "other.db")
	t.Setenv("TEMPUS_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("TEMPUS_DB_WRITE_TIMEOUT", "not-a-duration")
	t.Setenv("TEMPUS_DB_DIR_PERMISSIONS", "700")
	t.Setenv("TEMPUS_DISPLAY_CLOCK_FORMAT", "3:04PM")
	t.Setenv("TEMPUS_STOPWATCH_TICK", "500ms")
	t.Setenv("TEMPUS_CACHE_ELAPSED", "true")
	t.Setenv("TEMPUS_LOG_LEVEL", "debug")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/tempus-test/other.db", cfg.GetDatabasePath())
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Database.WriteTimeout, "should keep default on parse failure")
	assert.Equal(t, uint32(0700), cfg.Database.DirPermissions)
	assert.Equal(t, "3:04PM", cfg.Display.ClockFormat)
	assert.Equal(t, 500*time.Millisecond, cfg.Stopwatch.TickInterval)
	assert.True(t, cfg.Stopwatch.CacheElapsed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"should reject empty db dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"should reject empty filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"should reject zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"should reject zero write timeout", func(c *Config) { c.Database.WriteTimeout = 0 }, "database.write_timeout"},
		{"should reject empty day format", func(c *Config) { c.Display.DayFormat = "" }, "display.day_format"},
		{"should reject empty clock format", func(c *Config) { c.Display.ClockFormat = "" }, "display.clock_format"},
		{"should reject negative description column", func(c *Config) { c.Display.DescriptionColumn = -1 }, "display.description_column"},
		{"should reject tiny tick interval", func(c *Config) { c.Stopwatch.TickInterval = time.Millisecond }, "stopwatch.tick_interval"},
		{"should reject zero project length", func(c *Config) { c.Validation.ProjectNameMaxLength = 0 }, "validation.project_name_max_length"},
		{"should reject unknown log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestLoader_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  dir: /srv/tempus
  query_timeout: 20s
display:
  day_format: "2006-01-02"
stopwatch:
  cache_elapsed: true
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("TEMPUS_DB_DIR", "/from/env")

	cfg, err := NewLoader().WithFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Database.Dir, "env should win over file")
	assert.Equal(t, 20*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "tempus.db", cfg.Database.Filename, "unset keys keep defaults")
	assert.Equal(t, "2006-01-02", cfg.Display.DayFormat)
	assert.True(t, cfg.Stopwatch.CacheElapsed)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().WithFile(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, "Mon, Jan 2", cfg.Display.DayFormat)
}

func TestLoader_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0600))

	_, err := NewLoader().WithFile(path).Load()
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "file", configErr.Field)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	dir := "/override"
	level := "error"
	tick := 2 * time.Second
	cache := true
	empty := ""

	cfg, err := NewLoader().WithFile("").LoadWithOverrides(&ConfigOverrides{
		DBDir:        &dir,
		LogLevel:     &level,
		TickInterval: &tick,
		CacheElapsed: &cache,
	})
	require.NoError(t, err)
	assert.Equal(t, "/override", cfg.Database.Dir)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.Stopwatch.TickInterval)
	assert.True(t, cfg.Stopwatch.CacheElapsed)

	_, err = NewLoader().WithFile("").LoadWithOverrides(&ConfigOverrides{DBFilename: &empty})
	assert.Error(t, err)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(ConfigFileEnv, "/etc/tempus.yaml")
	assert.Equal(t, "/etc/tempus.yaml", DefaultConfigPath())
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, time.Minute, ParseDurationWithFallback("1m", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("x", time.Second))
	assert.Equal(t, 4, ParseIntWithFallback("4", 1))
	assert.Equal(t, 1, ParseIntWithFallback("four", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0))
	assert.Equal(t, uint32(1), ParseUint32WithFallback("9", 8, 1))
}
