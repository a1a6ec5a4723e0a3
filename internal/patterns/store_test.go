package patterns

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

func newDefaultStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(model.DefaultPatterns())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestNewSeedsDefaults(t *testing.T) {
	s := newDefaultStore(t)
	list := s.List()
	if len(list) != 4 {
		t.Fatalf("expected 4 patterns, got %d", len(list))
	}
	names := []string{"Box 4s", "Box 8s", "4-7-8 Relaxing", "Calm Wave"}
	for i, name := range names {
		if list[i].Name != name {
			t.Fatalf("expected %q at %d, got %q", name, i, list[i].Name)
		}
	}
}

func TestNewRejectsDuplicateSeeds(t *testing.T) {
	seeds := append(model.DefaultPatterns(), model.DefaultPatterns()[0])
	if _, err := New(seeds); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddAssignsCustomID(t *testing.T) {
	s := newDefaultStore(t)
	added, err := s.Add(NewBox("My Test Pattern", 6))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(added.ID, "custom-") {
		t.Fatalf("expected custom id, got %q", added.ID)
	}
	got, ok := s.Get(added.ID)
	if !ok {
		t.Fatalf("expected to find added pattern")
	}
	if got.Kind != model.KindBox || got.BoxDuration != 6 || model.FormatDurations(got.Durations) != "6-6-6-6" {
		t.Fatalf("unexpected pattern: %+v", got)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	s := newDefaultStore(t)
	if _, err := s.Add(NewTrapezoid("bad", []float64{1, 2})); !errors.Is(err, model.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestUpdateReplaces(t *testing.T) {
	s := newDefaultStore(t)
	p, _ := s.Get("calm")
	p.Durations = []float64{5, 1, 7, 1}
	if err := s.Update(p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.Get("calm")
	if model.FormatDurations(got.Durations) != "5-1-7-1" {
		t.Fatalf("expected updated durations, got %v", got.Durations)
	}
	if err := s.Update(model.Pattern{ID: "nope", Durations: []float64{1, 1, 1, 1}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteKeepsLastPattern(t *testing.T) {
	s := newDefaultStore(t)
	for _, id := range []string{"box4", "box8", "relaxing"} {
		if err := s.Delete(id); err != nil {
			t.Fatalf("delete %s: %v", id, err)
		}
	}
	if err := s.Delete("calm"); !errors.Is(err, ErrLastPattern) {
		t.Fatalf("expected ErrLastPattern, got %v", err)
	}
	if err := s.Delete("box4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n := len(s.List()); n != 1 {
		t.Fatalf("expected 1 pattern left, got %d", n)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := newDefaultStore(t)
	list := s.List()
	list[0].Durations[0] = 99
	got, _ := s.Get(list[0].ID)
	if got.Durations[0] == 99 {
		t.Fatalf("store shares durations with caller")
	}
}

func TestResolveFallsBackToFirst(t *testing.T) {
	s := newDefaultStore(t)
	p, ok := s.Resolve("missing")
	if ok || p.ID != "box4" {
		t.Fatalf("expected fallback to box4, got %q ok=%v", p.ID, ok)
	}
	p, ok = s.Resolve("relaxing")
	if !ok || p.ID != "relaxing" {
		t.Fatalf("expected relaxing, got %q ok=%v", p.ID, ok)
	}
}
