// Package config loads the OneFocus application config. Sources apply in
// order: embedded defaults, config.yaml, then ONEFOCUS_* environment
// variables. Command-line flags are applied by the caller.
package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/onefocus/internal/constants"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

const FileName = "config.yaml"

type Config struct {
	Database string `yaml:"database" env:"ONEFOCUS_DB"`
	Debug    bool   `yaml:"debug" env:"ONEFOCUS_DEBUG"`
	Timezone string `yaml:"timezone" env:"ONEFOCUS_TIMEZONE"`

	sources []string
}

// Sources lists where values were read from, lowest precedence first.
func (c *Config) Sources() []string {
	return c.sources
}

// DefaultConfigDir returns ~/.config/onefocus.
func DefaultConfigDir() string {
	return filepath.Dir(ExpandHome(constants.DefaultConfigPath))
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load reads the config file at path. A missing file is not an error; the
// defaults and environment still apply.
func Load(path string) (*Config, error) {
	cfg, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	cfg.sources = append(cfg.sources, "embedded")

	path = ExpandHome(path)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.sources = append(cfg.sources, path)
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for _, name := range []string{"ONEFOCUS_DB", "ONEFOCUS_DEBUG", "ONEFOCUS_TIMEZONE"} {
		if _, ok := os.LookupEnv(name); ok {
			cfg.sources = append(cfg.sources, "env")
			break
		}
	}

	cfg.Database = ExpandHome(cfg.Database)
	return cfg, nil
}

// InstallDefaults writes the embedded config to path when no file exists.
func InstallDefaults(path string) error {
	path = ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
