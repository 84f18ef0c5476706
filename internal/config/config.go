package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSystem     = "solar"
	DefaultIntegrator = "parabolic"
	DefaultDt         = 36.0
	DefaultSteps      = 1000
	DefaultRecord     = 10
	DefaultLogLevel   = "info"
	DefaultDataDir    = "data"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config describes one simulation run. Dt is in days.
type Config struct {
	System     string  `yaml:"system"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	Reference  string  `yaml:"reference"`
	Record     int     `yaml:"record"`
	LogLevel   string  `yaml:"log_level" gcfg:"log-level"`
	DataDir    string  `yaml:"data_dir" gcfg:"data-dir"`
}

// iniFile is the gcfg layout: a single [run] section.
type iniFile struct {
	Run Config
}

func DefaultConfig() *Config {
	return &Config{
		System:     DefaultSystem,
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		Reference:  DefaultSystem,
		Record:     DefaultRecord,
		LogLevel:   DefaultLogLevel,
		DataDir:    DefaultDataDir,
	}
}

// Load reads a config file over the defaults. The format is chosen by
// extension: .yaml and .yml are YAML, .ini, .gcfg and .cfg are git-config
// style with a [run] section.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".ini", ".gcfg", ".cfg":
		f := iniFile{Run: *cfg}
		if err := gcfg.ReadFileInto(&f, path); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		*cfg = f.Run
	default:
		return nil, fmt.Errorf("config: unsupported file extension %q", ext)
	}

	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports the first problem found, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.System == "":
		return fmt.Errorf("%w: system is empty", ErrInvalidConfig)
	case c.Integrator == "":
		return fmt.Errorf("%w: integrator is empty", ErrInvalidConfig)
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	case c.Record < 0:
		return fmt.Errorf("%w: record must not be negative, got %d", ErrInvalidConfig, c.Record)
	case c.LogLevel != "" && !logLevels[strings.ToLower(c.LogLevel)]:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Duration is the simulated span in days.
func (c *Config) Duration() float64 {
	return c.Dt * float64(c.Steps)
}
