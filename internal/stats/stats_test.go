package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}); got != " █" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); utf8.RuneCountInString(got) != 3 {
		t.Fatalf("expected 3 runes, got %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected resample: %v", got)
	}
	if short := Resample([]float64{1}, 5); len(short) != 1 {
		t.Fatalf("short series should not be stretched: %v", short)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{0: "0s", 45: "45s", 125: "2m 05s", 3720: "1h 02m", -3: "0s"}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("%d: expected %q, got %q", in, want, got)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	sessions := []model.SessionAggregate{
		{PatternName: "Box 4s", Cycles: 4, TotalSeconds: 64},
		{PatternName: "Calm Wave", Cycles: 2, TotalSeconds: 36},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Total time: 1m 40s", "Avg session: 50s", "Avg cycles: 3.0", "Longest: 1m 04s (Box 4s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPatternTableAlignsNumbers(t *testing.T) {
	totals := []model.PatternTotal{
		{PatternID: "box4", PatternName: "Box 4s", Sessions: 12, Cycles: 40, TotalSeconds: 480},
		{PatternID: "relaxing", PatternName: "4-7-8 Relaxing", Sessions: 3, Cycles: 9, TotalSeconds: 45},
	}
	var buf bytes.Buffer
	if err := RenderPatternTable(&buf, totals); err != nil {
		t.Fatalf("render table: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Per-Pattern\n") {
		t.Fatalf("missing title:\n%s", out)
	}
	var boxLine, relaxLine string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "Box 4s"):
			boxLine = line
		case strings.Contains(line, "4-7-8 Relaxing"):
			relaxLine = line
		}
	}
	if !strings.Contains(boxLine, "│ Box 4s ") {
		t.Fatalf("expected left aligned name: %q", boxLine)
	}
	if !strings.Contains(boxLine, "       12 │") || !strings.Contains(boxLine, "8m 00s │") {
		t.Fatalf("expected right aligned numbers: %q", boxLine)
	}
	if !strings.Contains(relaxLine, "        3 │") || !strings.Contains(relaxLine, "    45s │") {
		t.Fatalf("expected right aligned numbers: %q", relaxLine)
	}
}

func TestRenderPatternTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPatternTable(&buf, nil); err != nil {
		t.Fatalf("render table: %v", err)
	}
	if buf.String() != "No pattern stats found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSparkWidthFor(t *testing.T) {
	if got := SparkWidthFor(80); got != 80-trendLabelWidth-2 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := SparkWidthFor(0); got != minSparkWidth {
		t.Fatalf("expected min width, got %d", got)
	}
}
