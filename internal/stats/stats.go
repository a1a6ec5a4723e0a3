// Package stats contains session history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

var sparkChars = []rune(" ▁▂▃▄▅▆▇█")

const (
	minSparkWidth       = 10
	terminalWidthBackup = 80
	trendLabelWidth     = 12
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line block sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// Resample stretches or averages values into exactly width buckets.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) == 0 {
		return nil
	}
	if len(values) <= width {
		return append([]float64(nil), values...)
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// SessionMinutes returns the practice length of each session in minutes.
func SessionMinutes(sessions []model.SessionAggregate) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		out[i] = float64(s.TotalSeconds) / 60
	}
	return out
}

// FormatDuration renders seconds as "1h 02m", "12m 05s" or "45s".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	totalSeconds := 0
	totalCycles := 0
	longest := sessions[0]
	for _, s := range sessions {
		totalSeconds += s.TotalSeconds
		totalCycles += s.Cycles
		if s.TotalSeconds > longest.TotalSeconds {
			longest = s
		}
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Total time: %s", FormatDuration(totalSeconds)),
		fmt.Sprintf("Avg session: %s", FormatDuration(int(math.Round(float64(totalSeconds)/count)))),
		fmt.Sprintf("Avg cycles: %.1f", float64(totalCycles)/count),
		fmt.Sprintf("Longest: %s (%s, %s)", FormatDuration(longest.TotalSeconds), longest.PatternName, longest.EndedAt.Local().Format("2006-01-02")),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderPatternTable prints per-pattern totals.
func RenderPatternTable(w io.Writer, totals []model.PatternTotal) error {
	if len(totals) == 0 {
		_, err := fmt.Fprintln(w, "No pattern stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Pattern"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, PatternTable(totals).Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PatternTable lays out per-pattern totals with the numeric columns right aligned.
func PatternTable(totals []model.PatternTotal) *table.Table {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{
			t.PatternName,
			strconv.Itoa(t.Sessions),
			strconv.Itoa(t.Cycles),
			FormatDuration(t.TotalSeconds),
		})
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell.Bold(true)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))).
		Headers("Pattern", "Sessions", "Cycles", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cell
			if row == table.HeaderRow {
				style = header
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
}

// RenderTrend prints a moving-average sparkline of minutes per session.
func RenderTrend(w io.Writer, sessions []model.SessionAggregate, window, totalWidth int) error {
	if len(sessions) == 0 {
		return nil
	}
	values := MovingAverage(SessionMinutes(sessions), window)
	width := SparkWidthFor(totalWidth)
	if totalWidth <= 0 {
		width = SparkWidthFor(terminalWidth())
	}
	values = Resample(values, width)
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	title := "Minutes per Session"
	if window > 1 {
		title = fmt.Sprintf("%s (moving avg %d)", title, window)
	}
	lines := []string{
		title,
		padCell(fmt.Sprintf("%.1f min", maxVal), trendLabelWidth, true) + " ┤",
		padCell("", trendLabelWidth, true) + " │" + Sparkline(values),
		padCell(fmt.Sprintf("%.1f min", minVal), trendLabelWidth, true) + " ┤",
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// SparkWidthFor fits a sparkline next to the axis labels in totalWidth columns.
func SparkWidthFor(totalWidth int) int {
	width := totalWidth - trendLabelWidth - 2
	if width < minSparkWidth {
		return minSparkWidth
	}
	return width
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return terminalWidthBackup
}

// IsTerminal reports whether the file descriptor is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
