// Package config provides configuration loading for the cvgen tooling.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up next to the working directory.
const DefaultFileName = "cvgen.yaml"

// Config is the complete cvgen configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Theme   ThemeConfig   `yaml:"theme"`
	Export  ExportConfig  `yaml:"export"`
}

// StorageConfig configures where profile documents are persisted.
type StorageConfig struct {
	// Dir is the directory holding persisted profiles. Empty means an
	// in-memory store.
	Dir string `yaml:"dir"`
	// Key is the storage key the profile document lives under.
	Key string `yaml:"key"`
}

// ThemeConfig configures theme resolution defaults.
type ThemeConfig struct {
	// Catalog is the path to a YAML theme catalog. Empty disables catalog
	// lookup and only the fallback locators apply.
	Catalog string `yaml:"catalog"`
	// Name and Variant select the default theme.
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
	// Template and Palette override the resolved locators directly.
	Template string `yaml:"template"`
	Palette  string `yaml:"palette"`
}

// ExportConfig configures export defaults.
type ExportConfig struct {
	// Format is the default export format ("html" or "pdf").
	Format string `yaml:"format"`
	// Title overrides the derived document title.
	Title string `yaml:"title"`
	// OutputDir is where exported artifacts are written.
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir: defaultStorageDir(),
			Key: "cvgen",
		},
		Export: ExportConfig{
			Format:    "html",
			OutputDir: ".",
		},
	}
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cvgen")
}

// Load reads the config at path and overlays it on the defaults. An empty
// path or a missing file returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	overlay := &Config{}
	if err := yaml.Unmarshal(raw, overlay); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	cfg.Merge(overlay)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays non-zero fields from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Storage.Dir != "" {
		c.Storage.Dir = other.Storage.Dir
	}
	if other.Storage.Key != "" {
		c.Storage.Key = other.Storage.Key
	}
	if other.Theme.Catalog != "" {
		c.Theme.Catalog = other.Theme.Catalog
	}
	if other.Theme.Name != "" {
		c.Theme.Name = other.Theme.Name
	}
	if other.Theme.Variant != "" {
		c.Theme.Variant = other.Theme.Variant
	}
	if other.Theme.Template != "" {
		c.Theme.Template = other.Theme.Template
	}
	if other.Theme.Palette != "" {
		c.Theme.Palette = other.Theme.Palette
	}
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Title != "" {
		c.Export.Title = other.Export.Title
	}
	if other.Export.OutputDir != "" {
		c.Export.OutputDir = other.Export.OutputDir
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Storage.Key == "" {
		return fmt.Errorf("config: storage.key is required")
	}
	switch c.Export.Format {
	case "", "html", "pdf":
	default:
		return fmt.Errorf("config: export.format %q is not supported", c.Export.Format)
	}
	return nil
}
