package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Session.Pattern != nil || len(cfg.Patterns) != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigSessionAndPatterns(t *testing.T) {
	path := writeConfig(t, `
[session]
pattern = "coherent"
visualization = "ring"
haptics = false
voice = true
voice-style = "guided"
tick-ms = 40

[[patterns]]
id = "coherent"
name = "Coherent 5.5"
durations = [5.5, 0, 5.5, 0]

[[patterns]]
id = "box6"
kind = "box"
durations = [6, 6, 6, 6]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.Pattern == nil || *cfg.Session.Pattern != "coherent" {
		t.Fatalf("unexpected pattern setting: %v", cfg.Session.Pattern)
	}
	if cfg.Session.Haptics == nil || *cfg.Session.Haptics {
		t.Fatalf("expected haptics=false")
	}
	if cfg.Session.TickMs == nil || *cfg.Session.TickMs != 40 {
		t.Fatalf("expected tick-ms=40")
	}
	patterns, err := cfg.UserPatterns()
	if err != nil {
		t.Fatalf("user patterns: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(patterns))
	}
	if patterns[0].Kind != model.KindTrapezoid || patterns[0].Name != "Coherent 5.5" {
		t.Fatalf("unexpected first pattern: %+v", patterns[0])
	}
	if patterns[1].Name != "box6" || patterns[1].BoxDuration != 6 {
		t.Fatalf("unexpected box pattern: %+v", patterns[1])
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "[session]\npatern = \"box4\"\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "patern") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestUserPatternsRejectsUnevenBox(t *testing.T) {
	path := writeConfig(t, `
[[patterns]]
id = "lopsided"
kind = "box"
durations = [4, 7, 8, 0]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cfg.UserPatterns(); !errors.Is(err, model.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestUserPatternsValidates(t *testing.T) {
	cfg := FileConfig{Patterns: []PatternConfig{{ID: "short", Durations: []float64{4, 4, 4}}}}
	if _, err := cfg.UserPatterns(); !errors.Is(err, model.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	cfg = FileConfig{Patterns: []PatternConfig{{Durations: []float64{4, 4, 4, 4}}}}
	if _, err := cfg.UserPatterns(); err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuibreathe", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "tuibreathe", "tuibreathe.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "tuibreathe", "tuibreathe.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
