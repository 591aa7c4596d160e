package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config stores repository-local settings in .grits/config.toml.
type Config struct {
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
	Signing SigningConfig `toml:"signing"`
}

// LogConfig controls history display defaults.
type LogConfig struct {
	// MaxEntries bounds `grits log` output; 0 means unlimited.
	MaxEntries int `toml:"max_entries"`
}

// UIConfig controls terminal rendering.
type UIConfig struct {
	Color bool `toml:"color"`
}

// SigningConfig holds the default SSH key used by `commit --sign`.
type SigningConfig struct {
	Key string `toml:"key"`
}

// DefaultConfig returns the configuration written at init.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{Color: true},
	}
}

func (r *Repo) configPath() string {
	return filepath.Join(r.GritsDir, "config.toml")
}

// ReadConfig reads .grits/config.toml. A missing file yields the
// defaults.
func (r *Repo) ReadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(r.configPath(), cfg); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// WriteConfig atomically writes .grits/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tmp, err := os.CreateTemp(r.GritsDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, r.configPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}
