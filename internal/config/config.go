package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"newsdesk/internal/export"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Feed names a local RSS/Atom file usable with `fetch --feed NAME`.
type Feed struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type Storage struct {
	Path string `yaml:"path"`
}

type Export struct {
	DefaultFormat string `yaml:"default_format"`
}

type Config struct {
	Storage Storage `yaml:"storage"`
	Export  Export  `yaml:"export"`
	Feeds   []Feed  `yaml:"feeds,omitempty"`
}

// StoragePath returns the configured database location, falling back to the
// XDG data dir.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return DefaultStoragePath()
}

// Format returns the export format used when --format is not given.
func (c *Config) Format() string {
	if c.Export.DefaultFormat == "" {
		return export.FormatCSV
	}
	return c.Export.DefaultFormat
}

func (c *Config) FeedByName(name string) (Feed, bool) {
	for _, f := range c.Feeds {
		if f.Name == name {
			return f, true
		}
	}
	return Feed{}, false
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdesk", "config.yaml")
}

func DefaultStoragePath() string {
	return filepath.Join(xdg.DataHome, "newsdesk", "newsdesk.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to the config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return cfg, nil
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// File values overlay the embedded defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if f := cfg.Export.DefaultFormat; f != "" && !export.Supported(f) {
		return fmt.Errorf("export.default_format: unknown format %q (valid: csv, excel, json)", f)
	}
	seen := make(map[string]bool)
	for i, f := range cfg.Feeds {
		if f.Name == "" {
			return fmt.Errorf("feed %d: name is required", i)
		}
		if f.Path == "" {
			return fmt.Errorf("feed %q: path is required", f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("feed %q: duplicate name", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
