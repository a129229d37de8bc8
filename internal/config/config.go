package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for tempus
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Display     DisplayConfig     `yaml:"display"`
	Stopwatch   StopwatchConfig   `yaml:"stopwatch"`
	Validation  ValidationConfig  `yaml:"validation"`
	Logging     LoggingConfig     `yaml:"logging"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"TEMPUS_DB_DIR"`
	Filename       string        `yaml:"filename" env:"TEMPUS_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TEMPUS_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TEMPUS_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TEMPUS_DB_DIR_PERMISSIONS"`
}

// DisplayConfig holds list view formatting configuration
type DisplayConfig struct {
	DayFormat         string `yaml:"day_format" env:"TEMPUS_DISPLAY_DAY_FORMAT"`
	ClockFormat       string `yaml:"clock_format" env:"TEMPUS_DISPLAY_CLOCK_FORMAT"`
	DescriptionColumn int    `yaml:"description_column" env:"TEMPUS_DISPLAY_DESCRIPTION_COLUMN"`
}

// StopwatchConfig holds stopwatch configuration
type StopwatchConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"TEMPUS_STOPWATCH_TICK"`
	CacheElapsed bool          `yaml:"cache_elapsed" env:"TEMPUS_CACHE_ELAPSED"`
}

// ValidationConfig holds validation rules for new entries
type ValidationConfig struct {
	ProjectNameMaxLength int `yaml:"project_name_max_length" env:"TEMPUS_VALIDATION_PROJECT_MAX"`
	FieldMaxLength       int `yaml:"field_max_length" env:"TEMPUS_VALIDATION_FIELD_MAX"`
}

// LoggingConfig holds log file configuration
type LoggingConfig struct {
	File  string `yaml:"file" env:"TEMPUS_LOG_FILE"`
	Level string `yaml:"level" env:"TEMPUS_LOG_LEVEL"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose bool `yaml:"verbose" env:"TEMPUS_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".tempus")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDir,
			Filename:       "tempus.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			DayFormat:         "Mon, Jan 2",
			ClockFormat:       "15:04",
			DescriptionColumn: 2,
		},
		Stopwatch: StopwatchConfig{
			TickInterval: time.Second,
			CacheElapsed: false,
		},
		Validation: ValidationConfig{
			ProjectNameMaxLength: 255,
			FieldMaxLength:       1024,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDir, "tempus.log"),
			Level: "info",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values leave the current setting in place.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TEMPUS_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TEMPUS_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TEMPUS_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TEMPUS_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TEMPUS_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Display configuration
	if format := os.Getenv("TEMPUS_DISPLAY_DAY_FORMAT"); format != "" {
		c.Display.DayFormat = format
	}
	if format := os.Getenv("TEMPUS_DISPLAY_CLOCK_FORMAT"); format != "" {
		c.Display.ClockFormat = format
	}
	if column := os.Getenv("TEMPUS_DISPLAY_DESCRIPTION_COLUMN"); column != "" {
		c.Display.DescriptionColumn = ParseIntWithFallback(column, c.Display.DescriptionColumn)
	}

	// Stopwatch configuration
	if tick := os.Getenv("TEMPUS_STOPWATCH_TICK"); tick != "" {
		c.Stopwatch.TickInterval = ParseDurationWithFallback(tick, c.Stopwatch.TickInterval)
	}
	if cache := os.Getenv("TEMPUS_CACHE_ELAPSED"); cache != "" {
		c.Stopwatch.CacheElapsed = ParseBoolWithFallback(cache, c.Stopwatch.CacheElapsed)
	}

	// Validation configuration
	if maxLen := os.Getenv("TEMPUS_VALIDATION_PROJECT_MAX"); maxLen != "" {
		c.Validation.ProjectNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.ProjectNameMaxLength)
	}
	if maxLen := os.Getenv("TEMPUS_VALIDATION_FIELD_MAX"); maxLen != "" {
		c.Validation.FieldMaxLength = ParseIntWithFallback(maxLen, c.Validation.FieldMaxLength)
	}

	// Logging configuration
	if file := os.Getenv("TEMPUS_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if level := os.Getenv("TEMPUS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	// Application configuration
	if verbose := os.Getenv("TEMPUS_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate display configuration
	if c.Display.DayFormat == "" {
		return &ConfigError{Field: "display.day_format", Message: "day format cannot be empty"}
	}
	if c.Display.ClockFormat == "" {
		return &ConfigError{Field: "display.clock_format", Message: "clock format cannot be empty"}
	}
	if c.Display.DescriptionColumn < 0 {
		return &ConfigError{Field: "display.description_column", Message: "description column cannot be negative"}
	}

	// Validate stopwatch configuration
	if c.Stopwatch.TickInterval < 10*time.Millisecond {
		return &ConfigError{Field: "stopwatch.tick_interval", Message: "tick interval must be at least 10ms"}
	}

	// Validate validation configuration
	if c.Validation.ProjectNameMaxLength < 1 {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be at least 1"}
	}
	if c.Validation.FieldMaxLength < 1 {
		return &ConfigError{Field: "validation.field_max_length", Message: "field maximum length must be at least 1"}
	}

	// Validate logging configuration
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "log level must be one of debug, info, warn, error"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
