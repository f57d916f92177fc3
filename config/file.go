package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the configuration file used when -config is not given
const DefaultPath = "vi-snake.toml"

// File is the on-disk configuration document
type File struct {
	Game  Settings          `toml:"game"`
	Audio AudioConfig       `toml:"audio"`
	Keys  map[string]string `toml:"keys"`
}

// AudioConfig controls sound effects
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"` // 0.0 to 1.0
}

// DefaultFile returns a configuration with default settings and no key overrides
func DefaultFile() *File {
	return &File{
		Game: Default(),
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.5,
		},
	}
}

// Load reads path, creating it with defaults when missing
// Environment overrides are applied after decoding, then settings are validated
func Load(path string) (*File, error) {
	f := DefaultFile()

	md, err := toml.DecodeFile(path, f)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := Save(path, f); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("config %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	ApplyEnv(f)

	if err := f.Game.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path as TOML
func Save(path string, f *File) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config dir: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config create: %w", err)
	}

	if err := toml.NewEncoder(out).Encode(f); err != nil {
		out.Close()
		return fmt.Errorf("config encode: %w", err)
	}
	return out.Close()
}
