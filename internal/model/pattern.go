package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PhaseCount is the number of phases in every breathing cycle.
const PhaseCount = 4

// ErrInvalidPattern reports a pattern the timer cannot run.
var ErrInvalidPattern = errors.New("invalid pattern")

// Kind tags how a pattern is edited. It does not affect timing.
type Kind string

const (
	KindBox       Kind = "box"
	KindTrapezoid Kind = "trapezoid"
)

// BoxDurations lists the side lengths offered by the box editor.
var BoxDurations = []float64{4, 5, 6, 8, 10, 12, 15}

// Pattern is a named set of four phase durations in seconds.
type Pattern struct {
	ID          string
	Name        string
	Kind        Kind
	Durations   []float64
	BoxDuration float64
}

// Validate checks that the pattern can drive a timer.
func (p Pattern) Validate() error {
	if len(p.Durations) != PhaseCount {
		return fmt.Errorf("%w: need %d durations, got %d", ErrInvalidPattern, PhaseCount, len(p.Durations))
	}
	total := 0.0
	for i, d := range p.Durations {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return fmt.Errorf("%w: duration %d must be a non-negative number, got %v", ErrInvalidPattern, i, d)
		}
		total += d
	}
	if total == 0 {
		return fmt.Errorf("%w: at least one duration must be positive", ErrInvalidPattern)
	}
	switch p.Kind {
	case KindBox:
		side := p.BoxDuration
		if side == 0 {
			side = p.Durations[0]
		}
		for i, d := range p.Durations {
			if d != side {
				return fmt.Errorf("%w: box side %d is %ss, want %ss", ErrInvalidPattern, i, FormatSeconds(d), FormatSeconds(side))
			}
		}
	case "", KindTrapezoid:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPattern, p.Kind)
	}
	return nil
}

// Clone returns a copy that does not share the durations slice.
func (p Pattern) Clone() Pattern {
	out := p
	out.Durations = append([]float64(nil), p.Durations...)
	return out
}

// CycleSeconds returns the length of one full cycle.
func (p Pattern) CycleSeconds() float64 {
	total := 0.0
	for _, d := range p.Durations {
		total += d
	}
	return total
}

// Summary describes the durations for pattern lists.
func (p Pattern) Summary() string {
	if p.Kind == KindBox && len(p.Durations) > 0 {
		side := p.BoxDuration
		if side == 0 {
			side = p.Durations[0]
		}
		return fmt.Sprintf("All sides: %ss", FormatSeconds(side))
	}
	if len(p.Durations) != PhaseCount {
		return FormatDurations(p.Durations)
	}
	return fmt.Sprintf("In %ss • Hold %ss • Out %ss • Hold %ss",
		FormatSeconds(p.Durations[0]),
		FormatSeconds(p.Durations[1]),
		FormatSeconds(p.Durations[2]),
		FormatSeconds(p.Durations[3]),
	)
}

// FormatDurations joins durations as "4-7-8-0".
func FormatDurations(durations []float64) string {
	parts := make([]string, len(durations))
	for i, d := range durations {
		parts[i] = FormatSeconds(d)
	}
	return strings.Join(parts, "-")
}

// ParseDurations reads "4-7-8-0", "4,7,8,0" or "4 7 8 0".
func ParseDurations(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != PhaseCount {
		return nil, fmt.Errorf("%w: need %d durations, got %d", ErrInvalidPattern, PhaseCount, len(fields))
	}
	out := make([]float64, 0, PhaseCount)
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad duration %q", ErrInvalidPattern, f)
		}
		out = append(out, v)
	}
	return out, nil
}

// FormatSeconds prints v with the fewest digits needed, so 4 is "4" and 5.5 is "5.5".
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DefaultPatterns returns the built-in patterns.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{ID: "box4", Name: "Box 4s", Kind: KindBox, Durations: []float64{4, 4, 4, 4}, BoxDuration: 4},
		{ID: "box8", Name: "Box 8s", Kind: KindBox, Durations: []float64{8, 8, 8, 8}, BoxDuration: 8},
		{ID: "relaxing", Name: "4-7-8 Relaxing", Kind: KindTrapezoid, Durations: []float64{4, 7, 8, 0}},
		{ID: "calm", Name: "Calm Wave", Kind: KindTrapezoid, Durations: []float64{6, 2, 8, 2}},
	}
}
