package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/tuibreathe/internal/config"
	"github.com/verte-zerg/tuibreathe/internal/model"
)

func TestMergePatternsOverridesByID(t *testing.T) {
	base := model.DefaultPatterns()
	overrides := []model.Pattern{
		{ID: "calm", Name: "Calmer", Kind: model.KindTrapezoid, Durations: []float64{7, 2, 9, 2}},
		{ID: "coherent", Name: "Coherent", Kind: model.KindTrapezoid, Durations: []float64{5.5, 0, 5.5, 0}},
	}
	merged := mergePatterns(base, overrides)
	if len(merged) != len(base)+1 {
		t.Fatalf("expected %d patterns, got %d", len(base)+1, len(merged))
	}
	if merged[3].Name != "Calmer" {
		t.Fatalf("expected calm to be replaced in place, got %+v", merged[3])
	}
	if merged[4].ID != "coherent" {
		t.Fatalf("expected coherent appended, got %+v", merged[4])
	}
	if base[3].Name != "Calm Wave" {
		t.Fatalf("base slice must not be modified")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template should decode: %v", err)
	}

	var enabled []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
			if i := strings.Index(line, " #"); i >= 0 {
				line = line[:i]
			}
		} else if line == "# [[patterns]]" {
			line = "[[patterns]]"
		}
		enabled = append(enabled, line)
	}
	if err := os.WriteFile(path, []byte(strings.Join(enabled, "\n")), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("uncommented template should decode: %v", err)
	}
	if cfg.Session.Pattern == nil || *cfg.Session.Pattern != "box4" {
		t.Fatalf("unexpected pattern: %v", cfg.Session.Pattern)
	}
	if cfg.Session.TickMs == nil || *cfg.Session.TickMs != 50 {
		t.Fatalf("unexpected tick-ms: %v", cfg.Session.TickMs)
	}
	patterns, err := cfg.UserPatterns()
	if err != nil || len(patterns) != 1 || patterns[0].ID != "coherent" {
		t.Fatalf("unexpected patterns: %+v %v", patterns, err)
	}
}

func TestWritePatternTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writePatternTable(&buf, model.DefaultPatterns()); err != nil {
		t.Fatalf("write table: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "box4", "4-7-8 Relaxing", "4-7-8-0", "18s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestBuildSettingsValidates(t *testing.T) {
	breatheViz, breatheVoiceStyle, breatheTickMs = "ring", "guided", 100
	breathePattern, breatheNoHistory = "calm", true
	settings, err := buildSettings()
	if err != nil {
		t.Fatalf("build settings: %v", err)
	}
	if settings.VoiceStyle != model.VoiceGuided || settings.History || settings.TickInterval.Milliseconds() != 100 {
		t.Fatalf("unexpected settings: %+v", settings)
	}
	breatheViz = "orbit"
	if _, err := buildSettings(); err == nil {
		t.Fatalf("expected unknown viz error")
	}
	breatheViz, breatheTickMs = "box", 0
	if _, err := buildSettings(); err == nil {
		t.Fatalf("expected tick-ms error")
	}
}
