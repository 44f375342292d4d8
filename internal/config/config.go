// Package config loads optional YAML configuration for blendscan.
// Precedence is CLI flags over repo-local file over global file; fields are
// pointers so "unset" is distinguishable from zero values.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape.
type FileConfig struct {
	BlenderVersion *string `yaml:"blender_version"`
	BlenderPath    *string `yaml:"blender_path"`
	WithAddons     *bool   `yaml:"with_addons"`
	Scanners       *string `yaml:"scanners"` // comma-separated: malware,privacy,bandit
	Timeout        *string `yaml:"timeout"`  // Go duration, e.g. "120s"; empty = none
	NoColor        *bool   `yaml:"no_color"`
	Baseline       *string `yaml:"baseline"`

	Bandit *BanditConfig `yaml:"bandit"`
}

// BanditConfig holds bandit integration settings.
type BanditConfig struct {
	// Binary is an explicit path to the bandit executable; empty means
	// $PATH lookup.
	Binary *string `yaml:"binary"`

	// Disabled turns the bandit pass off even when the tool is installed.
	Disabled *bool `yaml:"disabled"`
}

// LoadFile reads one YAML config file.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches dir for a repo-local config file.
func LoadLocal(dir string) (FileConfig, error) {
	for _, name := range []string{".blendscan.yml", ".blendscan.yaml", "blendscan.yml", "blendscan.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, errors.New("no local config")
}

// LoadGlobal loads the per-user config from XDG base dir or ~/.config.
func LoadGlobal() (FileConfig, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return FileConfig{}, errors.New("no config dir")
	}
	p := filepath.Join(base, "blendscan", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return FileConfig{}, errors.New("no global config")
}

// BanditBinary returns the configured bandit path, empty when unset.
func (fc FileConfig) BanditBinary() string {
	if fc.Bandit == nil || fc.Bandit.Binary == nil {
		return ""
	}
	return *fc.Bandit.Binary
}

// BanditDisabled reports whether the bandit pass was turned off.
func (fc FileConfig) BanditDisabled() bool {
	return fc.Bandit != nil && fc.Bandit.Disabled != nil && *fc.Bandit.Disabled
}
