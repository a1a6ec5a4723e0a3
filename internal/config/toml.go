// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Session  SessionConfig   `toml:"session"`
	Patterns []PatternConfig `toml:"patterns"`
}

// SessionConfig maps session-related settings.
type SessionConfig struct {
	Pattern       *string `toml:"pattern"`
	Visualization *string `toml:"visualization"`
	Haptics       *bool   `toml:"haptics"`
	Voice         *bool   `toml:"voice"`
	VoiceStyle    *string `toml:"voice-style"`
	TickMs        *int    `toml:"tick-ms"`
	History       *bool   `toml:"history"`
	LogLevel      *string `toml:"log-level"`
}

// PatternConfig is a user-defined pattern from the [[patterns]] tables.
type PatternConfig struct {
	ID        string    `toml:"id"`
	Name      string    `toml:"name"`
	Kind      string    `toml:"kind"`
	Durations []float64 `toml:"durations"`
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
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// UserPatterns converts [[patterns]] entries into validated patterns.
func (c FileConfig) UserPatterns() ([]model.Pattern, error) {
	out := make([]model.Pattern, 0, len(c.Patterns))
	for i, pc := range c.Patterns {
		if pc.ID == "" {
			return nil, fmt.Errorf("patterns[%d]: id is required", i)
		}
		name := pc.Name
		if name == "" {
			name = pc.ID
		}
		kind := model.Kind(pc.Kind)
		if kind == "" {
			kind = model.KindTrapezoid
		}
		p := model.Pattern{ID: pc.ID, Name: name, Kind: kind, Durations: pc.Durations}
		if kind == model.KindBox && len(pc.Durations) > 0 {
			p.BoxDuration = pc.Durations[0]
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("patterns[%d] (%s): %w", i, pc.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}
