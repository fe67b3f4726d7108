// Package config loads and saves calibration settings as YAML and
// translates them into the engine's validated form.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brlcal/brlcal/internal/pattern"
)

const (
	DefaultColumns    = 24
	DefaultRows       = 4
	DefaultIntervalMs = 500
	DefaultMode       = "row-walk"
)

type Config struct {
	Columns    int    `yaml:"columns"`
	Rows       int    `yaml:"rows"`
	IntervalMs int    `yaml:"interval_ms"`
	Mode       string `yaml:"mode"`
	Loop       bool   `yaml:"loop"`
	WholeLine  bool   `yaml:"whole_line"`
	Seed       int64  `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Columns:    DefaultColumns,
		Rows:       DefaultRows,
		IntervalMs: DefaultIntervalMs,
		Mode:       DefaultMode,
		Loop:       true,
		WholeLine:  false,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a settings file over an existing configuration. Fields
// the file does not set keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Pattern resolves the mode name and validates the settings, returning
// the engine-ready configuration.
func (c *Config) Pattern() (pattern.Config, error) {
	mode, err := pattern.ParseMode(c.Mode)
	if err != nil {
		return pattern.Config{}, err
	}

	cfg := pattern.Config{
		Columns:    c.Columns,
		Rows:       c.Rows,
		IntervalMs: c.IntervalMs,
		Mode:       mode,
		Loop:       c.Loop,
		WholeLine:  c.WholeLine,
	}
	if err := cfg.Validate(); err != nil {
		return pattern.Config{}, err
	}
	return cfg, nil
}
