package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"termcal/internal/fileutil"
	appLog "termcal/internal/log"
)

const (
	defaultHourHeight        = 4
	defaultInitialScrollHour = 8
	defaultReload            = "*/5 * * * *"
	defaultLogLevel          = "info"
)

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA zone events are displayed in. "Local" (the
	// default) uses the system zone.
	Timezone string `yaml:"timezone"`

	// HourHeight is the number of terminal rows per hour in the week grid.
	HourHeight int `yaml:"hour_height"`

	// InitialScrollHour is the hour the week grid is scrolled to on start.
	InitialScrollHour int `yaml:"initial_scroll_hour"`

	// Reload is a standard 5-field cron expression controlling when the
	// calendar file is re-read from disk. An explicit "off" disables it.
	Reload string `yaml:"reload"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level"`

	// LogFile receives log output while the TUI owns the terminal.
	LogFile string `yaml:"log_file"`
}

// DefaultPath returns $XDG_CONFIG_HOME/termcal/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "termcal", "config.yaml")
}

func defaultLogFile() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "termcal", "termcal.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "termcal", "termcal.log")
	}
	return filepath.Join(os.TempDir(), "termcal.log")
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:          "Local",
		HourHeight:        defaultHourHeight,
		InitialScrollHour: defaultInitialScrollHour,
		Reload:            defaultReload,
		LogLevel:          defaultLogLevel,
		LogFile:           defaultLogFile(),
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.HourHeight <= 0 {
		c.HourHeight = defaultHourHeight
	}
	if c.InitialScrollHour < 0 || c.InitialScrollHour > 23 {
		c.InitialScrollHour = defaultInitialScrollHour
	}
	if c.Reload == "" {
		c.Reload = defaultReload
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFile == "" {
		c.LogFile = defaultLogFile()
	}
}

// Validate checks values that Normalize cannot repair.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	if _, err := c.ReloadSchedule(); err != nil {
		return err
	}
	if _, err := appLog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ReloadSchedule parses Reload. It returns a nil schedule when reloading is
// turned off.
func (c *Config) ReloadSchedule() (cron.Schedule, error) {
	if c.Reload == "off" {
		return nil, nil
	}
	sched, err := cron.ParseStandard(c.Reload)
	if err != nil {
		return nil, fmt.Errorf("config: reload %q: %w", c.Reload, err)
	}
	return sched, nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults and validate
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, ".termcal-config-*.tmp")
}
