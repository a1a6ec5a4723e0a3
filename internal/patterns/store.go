// Package patterns keeps the list of breathing patterns available to a session.
// Patterns live in memory only; custom patterns last until the program exits.
package patterns

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

var (
	// ErrNotFound reports an unknown pattern id.
	ErrNotFound = errors.New("pattern not found")
	// ErrLastPattern reports an attempt to delete the only remaining pattern.
	ErrLastPattern = errors.New("cannot delete the last pattern")
	// ErrDuplicateID reports an id that is already in use.
	ErrDuplicateID = errors.New("pattern id already exists")
)

// Store is an ordered, concurrency-safe pattern list.
type Store struct {
	mu       sync.RWMutex
	patterns []model.Pattern
}

// New returns a store seeded with initial. Invalid or duplicate seeds are rejected.
func New(initial []model.Pattern) (*Store, error) {
	s := &Store{}
	for _, p := range initial {
		if _, err := s.Add(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// List returns a copy of all patterns in insertion order.
func (s *Store) List() []model.Pattern {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Pattern, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.Clone()
	}
	return out
}

// Get looks up a pattern by id.
func (s *Store) Get(id string) (model.Pattern, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.patterns[i].Clone(), true
	}
	return model.Pattern{}, false
}

// Add validates p, assigns an id when empty and appends it.
func (s *Store) Add(p model.Pattern) (model.Pattern, error) {
	if err := p.Validate(); err != nil {
		return model.Pattern{}, err
	}
	p = p.Clone()
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Kind == "" {
		p.Kind = model.KindTrapezoid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(p.ID) >= 0 {
		return model.Pattern{}, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	s.patterns = append(s.patterns, p)
	return p.Clone(), nil
}

// Update replaces the pattern with the same id.
func (s *Store) Update(p model.Pattern) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(p.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	s.patterns[i] = p.Clone()
	return nil
}

// Delete removes a pattern. The last pattern cannot be removed.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if len(s.patterns) <= 1 {
		return ErrLastPattern
	}
	s.patterns = append(s.patterns[:i], s.patterns[i+1:]...)
	return nil
}

// Resolve returns the pattern for id, falling back to the first pattern.
func (s *Store) Resolve(id string) (model.Pattern, bool) {
	if p, ok := s.Get(id); ok {
		return p, true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.patterns) == 0 {
		return model.Pattern{}, false
	}
	return s.patterns[0].Clone(), false
}

func (s *Store) indexLocked(id string) int {
	for i, p := range s.patterns {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// NewID returns a fresh id for a custom pattern.
func NewID() string {
	return "custom-" + uuid.NewString()
}

// NewBox builds a box pattern whose four sides share one duration.
func NewBox(name string, seconds float64) model.Pattern {
	return model.Pattern{
		Name:        name,
		Kind:        model.KindBox,
		Durations:   []float64{seconds, seconds, seconds, seconds},
		BoxDuration: seconds,
	}
}

// NewTrapezoid builds a pattern with independent phase durations.
func NewTrapezoid(name string, durations []float64) model.Pattern {
	return model.Pattern{
		Name:      name,
		Kind:      model.KindTrapezoid,
		Durations: append([]float64(nil), durations...),
	}
}
