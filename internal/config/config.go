// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxWindowDays bounds birthdays.window_days.
const MaxWindowDays = 366

// Config holds all contactbook configuration.
type Config struct {
	Storage   Storage   `yaml:"storage"`
	Birthdays Birthdays `yaml:"birthdays"`
	Log       Log       `yaml:"log"`
	Display   Display   `yaml:"display"`
}

// Storage holds snapshot file settings.
type Storage struct {
	Path string `yaml:"path"`
}

// Birthdays holds upcoming-birthday settings.
type Birthdays struct {
	WindowDays int `yaml:"window_days"`
}

// Log holds logger settings.
type Log struct {
	Level string `yaml:"level"` // "off" | "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // Empty writes to stderr
}

// Display holds session settings.
type Display struct {
	Plain bool `yaml:"plain"` // Force the line-based session even on a TTY
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			Path: "addressbook.json",
		},
		Birthdays: Birthdays{
			WindowDays: 7,
		},
		Log: Log{
			Level: "off",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("config: storage.path cannot be empty")
	}
	if c.Birthdays.WindowDays < 1 || c.Birthdays.WindowDays > MaxWindowDays {
		return fmt.Errorf("config: birthdays.window_days must be between 1 and %d, got %d", MaxWindowDays, c.Birthdays.WindowDays)
	}
	switch c.Log.Level {
	case "off", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of off, debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTBOOK_FILE, CONTACTBOOK_WINDOW_DAYS,
// CONTACTBOOK_LOG_LEVEL, CONTACTBOOK_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTBOOK_FILE"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("CONTACTBOOK_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTBOOK_WINDOW_DAYS %q: %w", v, err)
		}
		c.Birthdays.WindowDays = n
	}
	if v := os.Getenv("CONTACTBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CONTACTBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage   *rawStorage   `yaml:"storage"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Log       *rawLog       `yaml:"log"`
	Display   *rawDisplay   `yaml:"display"`
}

type rawStorage struct {
	Path *string `yaml:"path"`
}

type rawBirthdays struct {
	WindowDays *int `yaml:"window_days"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type rawDisplay struct {
	Plain *bool `yaml:"plain"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil && layer.Storage.Path != nil {
		c.Storage.Path = *layer.Storage.Path
	}
	if layer.Birthdays != nil && layer.Birthdays.WindowDays != nil {
		c.Birthdays.WindowDays = *layer.Birthdays.WindowDays
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = strings.ToLower(*layer.Log.Level)
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
	if layer.Display != nil && layer.Display.Plain != nil {
		c.Display.Plain = *layer.Display.Plain
	}
}
