package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig is the optional TOML file read by the simctl CLI.
type FileConfig struct {
	Source  SourceFileConfig  `toml:"source"`
	Display DisplayFileConfig `toml:"display"`
}

// SourceFileConfig picks where simctl reads results from.
type SourceFileConfig struct {
	APIURL  *string `toml:"api-url"`
	DBPath  *string `toml:"db"`
	Timeout *string `toml:"timeout"`
}

// DisplayFileConfig controls terminal output.
type DisplayFileConfig struct {
	Width *int    `toml:"width"`
	Color *string `toml:"color"`
}

// LoadFile reads a TOML config from path. A missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
