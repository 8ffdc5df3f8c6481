// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Sheet  SheetConfig  `toml:"sheet"`
	Arith  ArithConfig  `toml:"arith"`
	Powers PowersConfig `toml:"powers"`
	Drill  DrillConfig  `toml:"drill"`
}

// SheetConfig maps settings shared by every worksheet.
type SheetConfig struct {
	School  *string `toml:"school"`
	Answers *bool   `toml:"answers"`
	OutDir  *string `toml:"out-dir"`
	History *bool   `toml:"history"`
}

// ArithConfig maps arithmetic worksheet settings.
type ArithConfig struct {
	Op            *string `toml:"op"`
	Mixed         *bool   `toml:"mixed"`
	Min           *int    `toml:"min"`
	Max           *int    `toml:"max"`
	Count         *int    `toml:"count"`
	AllowNegative *bool   `toml:"allow-negative"`
}

// PowersConfig maps powers-of-ten worksheet settings.
type PowersConfig struct {
	Level *string `toml:"level"`
	Count *int    `toml:"count"`
}

// DrillConfig maps terminal drill settings.
type DrillConfig struct {
	Kind  *string `toml:"kind"`
	Count *int    `toml:"count"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
