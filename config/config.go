// Package config is the TOML-backed configuration layer for the REPL and
// VM CLIs, grounded on lookbusy1344-arm_emulator/config/config.go's
// nested-struct-plus-toml-tag pattern and its GetConfigPath/Load/Save
// machinery (scaled down to the two sections SPEC_FULL.md §7 names).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the REPL's interactive-session settings and the VM's
// execution limits.
type Config struct {
	REPL struct {
		Prompt      string `toml:"prompt"`
		ColorOutput bool   `toml:"color_output"`
		HistoryFile string `toml:"history_file"`
		HistorySize int    `toml:"history_size"`
	} `toml:"repl"`

	VM struct {
		MaxStackDepth int  `toml:"max_stack_depth"`
		TraceCalls    bool `toml:"trace_calls"`
	} `toml:"vm"`
}

// Default returns a Config populated with this CLI's built-in defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.REPL.Prompt = "> "
	cfg.REPL.ColorOutput = true
	cfg.REPL.HistoryFile = ".vela_history"
	cfg.REPL.HistorySize = 1000

	cfg.VM.MaxStackDepth = 1 << 16
	cfg.VM.TraceCalls = false
	return cfg
}

// Path returns the platform-specific config file path, creating its
// directory if necessary. Falls back to "config.toml" in the working
// directory whenever the platform's config directory can't be resolved.
func Path() string {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "vela")
	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		dir = filepath.Join(home, ".config", "vela")
	default:
		return "config.toml"
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads configuration from the default config path, falling back to
// Default() when no file exists yet.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads configuration from path, falling back to Default() when
// the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes c to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes c to path as TOML, creating its directory if necessary.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- user-supplied config path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
