// Package config loads the optional TOML configuration file from
// ~/.config/optiscalerctl/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config carries the user-tunable settings. Every field has a working
// default so the file is optional.
type Config struct {
	// SteamPath overrides Steam root autodetection.
	SteamPath string `toml:"steam_path"`
	// GitHubAPI overrides the OptiScaler releases endpoint.
	GitHubAPI string `toml:"github_api"`
	// FSR4DLL points at an amdxcffx64.dll to copy into game prefixes.
	FSR4DLL string `toml:"fsr4_dll"`
	// TimestampBackups switches VDF backups to timestamped names so
	// repeated edits keep their history.
	TimestampBackups bool `toml:"timestamp_backups"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{TimestampBackups: true}
}

// Dir returns the config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "optiscalerctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".optiscalerctl")
	}
	return filepath.Join(home, ".config", "optiscalerctl")
}

// Load reads the default config file. A missing file yields Default().
func Load() (Config, error) {
	return LoadFile(filepath.Join(Dir(), "config.toml"))
}

// LoadFile reads one config file, filling unset fields with defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(meta.Undecoded()) > 0 {
		return cfg, fmt.Errorf("unknown keys in %s: %v", path, meta.Undecoded())
	}
	return cfg, nil
}
