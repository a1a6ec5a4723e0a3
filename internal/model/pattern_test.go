package model

import (
	"errors"
	"testing"
)

func TestDefaultPatternsAreValid(t *testing.T) {
	for _, p := range DefaultPatterns() {
		if err := p.Validate(); err != nil {
			t.Fatalf("%s: %v", p.ID, err)
		}
	}
}

func TestValidateRejectsBadKind(t *testing.T) {
	p := Pattern{Kind: "circle", Durations: []float64{1, 1, 1, 1}}
	if err := p.Validate(); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestValidateBoxSidesMustMatch(t *testing.T) {
	cases := []Pattern{
		{Kind: KindBox, Durations: []float64{4, 7, 8, 0}, BoxDuration: 4},
		{Kind: KindBox, Durations: []float64{4, 7, 8, 0}},
		{Kind: KindBox, Durations: []float64{6, 6, 6, 6}, BoxDuration: 4},
	}
	for _, p := range cases {
		if err := p.Validate(); !errors.Is(err, ErrInvalidPattern) {
			t.Fatalf("%v: expected ErrInvalidPattern, got %v", p.Durations, err)
		}
	}
	ok := Pattern{Kind: KindBox, Durations: []float64{6, 6, 6, 6}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("equal sides without BoxDuration: %v", err)
	}
}

func TestParseDurations(t *testing.T) {
	for _, in := range []string{"4-7-8-0", "4,7,8,0", "4 7 8 0", "4/7/8/0"} {
		got, err := ParseDurations(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if FormatDurations(got) != "4-7-8-0" {
			t.Fatalf("%q: unexpected durations %v", in, got)
		}
	}
	if _, err := ParseDurations("4-7-8"); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern for 3 values, got %v", err)
	}
	if _, err := ParseDurations("4-x-8-0"); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern for bad number, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	patterns := DefaultPatterns()
	if got := patterns[0].Summary(); got != "All sides: 4s" {
		t.Fatalf("unexpected box summary: %q", got)
	}
	if got := patterns[2].Summary(); got != "In 4s • Hold 7s • Out 8s • Hold 0s" {
		t.Fatalf("unexpected trapezoid summary: %q", got)
	}
	half := Pattern{Kind: KindTrapezoid, Durations: []float64{5.5, 0, 5.5, 0}}
	if got := FormatDurations(half.Durations); got != "5.5-0-5.5-0" {
		t.Fatalf("unexpected fractional format: %q", got)
	}
	if got := half.CycleSeconds(); got != 11 {
		t.Fatalf("expected 11s cycle, got %v", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := map[int]string{
		0:    "0:00",
		5:    "0:05",
		59:   "0:59",
		60:   "1:00",
		65:   "1:05",
		125:  "2:05",
		600:  "10:00",
		609:  "10:09",
		3661: "61:01",
	}
	for in, want := range cases {
		if got := FormatElapsed(in); got != want {
			t.Fatalf("FormatElapsed(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRemainingSeconds(t *testing.T) {
	durations := []float64{4, 7, 8, 0}
	cases := []struct {
		state TimerState
		want  int
	}{
		{TimerState{CurrentPhase: 0, PhaseProgress: 0}, 4},
		{TimerState{CurrentPhase: 0, PhaseProgress: 0.1}, 4},
		{TimerState{CurrentPhase: 1, PhaseProgress: 0.5}, 4},
		{TimerState{CurrentPhase: 3, PhaseProgress: 0}, 0},
		{TimerState{CurrentPhase: 9}, 0},
	}
	for _, tc := range cases {
		if got := tc.state.RemainingSeconds(durations); got != tc.want {
			t.Fatalf("%+v: expected %d, got %d", tc.state, tc.want, got)
		}
	}
}

func TestParseVoiceStyle(t *testing.T) {
	if s, err := ParseVoiceStyle("guided"); err != nil || s != VoiceGuided {
		t.Fatalf("expected guided, got %q %v", s, err)
	}
	if _, err := ParseVoiceStyle("loud"); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}

func TestPhaseAtWraps(t *testing.T) {
	if PhaseAt(4).Label != "Breathe In" || PhaseAt(-1).Voice != "Hold" {
		t.Fatalf("expected PhaseAt to wrap")
	}
}

func TestFormatSecondsKeepsFraction(t *testing.T) {
	cases := map[float64]string{4: "4", 5.5: "5.5", 0: "0", 12.25: "12.25"}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Fatalf("FormatSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}
