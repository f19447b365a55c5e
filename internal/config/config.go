// internal/config/config.go
//
// Run configuration for latexmerge. A project can keep a .latexmerge.yaml
// next to its documents to fix decisions ahead of time, e.g. always reject
// \comment while asking interactively about everything else.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/latexmerge/latexmerge/internal/changes"
	"github.com/latexmerge/latexmerge/internal/decision"
)

// FileName is the config file latexmerge looks for beside the input document.
const FileName = ".latexmerge.yaml"

// Config models the yaml file.
type Config struct {
	Version int `yaml:"version"`

	// DefaultPolicy applies to every command without an override:
	// ask, accept, reject or keep. Empty means ask.
	DefaultPolicy string `yaml:"default_policy"`

	// Commands maps a command name (added, deleted, ...) to a policy.
	Commands map[string]string `yaml:"commands"`

	// Backup controls writing a .bak copy before in-place saves.
	// Defaults to true when omitted.
	Backup *bool `yaml:"backup"`

	// LogFile receives diagnostics when set.
	LogFile string `yaml:"log_file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Version: 1}
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Find loads the config governing inputPath: an explicit path wins, otherwise
// the .latexmerge.yaml beside the input, otherwise defaults.
func Find(explicit, inputPath string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	candidate := filepath.Join(filepath.Dir(inputPath), FileName)
	cfg, err := Load(candidate)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported version %d", c.Version)
	}
	if _, err := decision.ParsePolicy(c.DefaultPolicy); err != nil {
		return fmt.Errorf("default_policy: %w", err)
	}
	for name, policy := range c.Commands {
		if _, ok := changes.Lookup(name); !ok {
			return fmt.Errorf("commands: %q is not a change command", name)
		}
		if _, err := decision.ParsePolicy(policy); err != nil {
			return fmt.Errorf("commands.%s: %w", name, err)
		}
	}
	return nil
}

// Policies converts the raw yaml strings into decision policies. Call only
// after Load/Find, which have validated the strings already.
func (c *Config) Policies() (decision.Policy, map[string]decision.Policy) {
	def, _ := decision.ParsePolicy(c.DefaultPolicy)
	overrides := make(map[string]decision.Policy, len(c.Commands))
	for name, policy := range c.Commands {
		p, _ := decision.ParsePolicy(policy)
		overrides[name] = p
	}
	return def, overrides
}

// BackupEnabled reports whether in-place saves should keep a .bak copy.
func (c *Config) BackupEnabled() bool {
	if c.Backup == nil {
		return true
	}
	return *c.Backup
}
