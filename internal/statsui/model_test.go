package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuibreathe/internal/model"
	"github.com/verte-zerg/tuibreathe/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tuibreathe.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	start := time.Unix(0, 0)
	if _, err := st.InsertSession(context.Background(), model.SessionRecord{
		StartedAt:    start,
		EndedAt:      start.Add(time.Minute),
		PatternID:    "box4",
		PatternName:  "Box 4s",
		Durations:    []float64{4, 4, 4, 4},
		Cycles:       4,
		TotalSeconds: 64,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	m := NewModel(st, model.StatsConfig{Window: 5})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestViewShowsOverview(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Overview", "Sessions", "Box 4s", "pattern=any"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestWindowKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.Window != 10 {
		t.Fatalf("expected window 10, got %d", m.cfg.Window)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	if m.cfg.Window != 1 {
		t.Fatalf("expected window 1, got %d", m.cfg.Window)
	}
}

func TestApplyFilterRejectsBadDate(t *testing.T) {
	m := newTestModel(t)
	m.startFilter()
	m.filterInputs[1].SetValue("yesterday")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode || m.filterError == "" {
		t.Fatalf("expected filter error to keep the form open")
	}
	m.filterInputs[1].SetValue("2024-01-02")
	m.filterInputs[0].SetValue("box4")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected form to close")
	}
	if m.cfg.Pattern != "box4" || m.cfg.Since == nil || m.cfg.Since.Year() != 2024 {
		t.Fatalf("filter not applied: %+v", m.cfg)
	}
	if len(m.report.Sessions) != 0 {
		t.Fatalf("expected session from 1970 to be filtered out")
	}
}

func TestParseSince(t *testing.T) {
	if since, err := ParseSince(" "); err != nil || since != nil {
		t.Fatalf("expected nil for empty input")
	}
	if _, err := ParseSince("2024-13-01"); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}
