package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the variable that points at an explicit config file
const ConfigFileEnv = "TEMPUS_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader reading the default config file
func NewLoader() *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: DefaultConfigPath(),
	}
}

// WithFile makes the loader read path instead of the default config file
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// DefaultConfigPath returns $TEMPUS_CONFIG or ~/.tempus/config.yaml
func DefaultConfigPath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tempus", "config.yaml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, when present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile merges the YAML file over the defaults. A missing file is not an error.
func (l *Loader) loadFile() error {
	if l.filePath == "" {
		return nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", l.filePath, err)
	}

	if err := yaml.Unmarshal(data, l.config); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("invalid YAML in %s: %v", l.filePath, err)}
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Display overrides
	DayFormat   *string
	ClockFormat *string

	// Stopwatch overrides
	TickInterval *time.Duration
	CacheElapsed *bool

	// Logging overrides
	LogFile  *string
	LogLevel *string

	// Application overrides
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}

	if overrides.DayFormat != nil {
		config.Display.DayFormat = *overrides.DayFormat
	}
	if overrides.ClockFormat != nil {
		config.Display.ClockFormat = *overrides.ClockFormat
	}

	if overrides.TickInterval != nil {
		config.Stopwatch.TickInterval = *overrides.TickInterval
	}
	if overrides.CacheElapsed != nil {
		config.Stopwatch.CacheElapsed = *overrides.CacheElapsed
	}

	if overrides.LogFile != nil {
		config.Logging.File = *overrides.LogFile
	}
	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}

	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
