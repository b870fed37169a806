// Package vtcellcfg loads persisted engine defaults for the vtcell demo
// from a TOML file, mirroring the teacher's internal/config package (which
// split derived-command config from a persisted JSON file) but as a single
// TOML document, matching how a CLI-facing configuration surface is more
// commonly TOML than JSON in this stack.
package vtcellcfg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the engine defaults a vtcelldemo invocation starts with.
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	RowCap int `toml:"row_cap"`
	FPS    int `toml:"fps"`
}

// Default returns the built-in defaults used when no config file exists.
func Default() Config {
	return Config{Width: 80, Height: 24, RowCap: 5000, FPS: 40}
}

// Dir returns the config directory path: ~/.config/vtcell/.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vtcell"
	}
	return filepath.Join(home, ".config", "vtcell")
}

// path returns the config file path.
func path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at the given path, or the default location if
// empty. Missing files are not an error: Default() is returned instead.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	p := explicitPath
	if p == "" {
		p = path()
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", p, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", p, err)
	}
	if cfg.RowCap <= 0 {
		cfg.RowCap = Default().RowCap
	}
	if cfg.FPS <= 0 {
		cfg.FPS = Default().FPS
	}
	return cfg, nil
}

// Save persists cfg to the default config path, creating the directory if
// needed.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path(), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
