// Package viz renders breathing visualizations as terminal text.
//
// Every renderer is a pure function of a Frame: it never reads the clock or
// the engine, so the same frame always produces the same output.
package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

// DefaultWidth is used when a frame carries no width.
const DefaultWidth = 40

// Frame is the input of a renderer.
type Frame struct {
	Phase     int
	Progress  float64
	Durations []float64
	Width     int
}

// Renderer draws a frame.
type Renderer func(Frame) string

// Visualization is a registered renderer.
type Visualization struct {
	ID     string
	Name   string
	Icon   string
	Desc   string
	Render Renderer
}

var registry = []Visualization{
	{ID: "box", Name: "Box Perimeter", Icon: "◻", Desc: "Classic square with traveling marker", Render: renderBox},
	{ID: "bar", Name: "Progress Bar", Icon: "▬", Desc: "Horizontal segmented bar", Render: renderBar},
	{ID: "ladder", Name: "Breath Ladder", Icon: "☰", Desc: "Vertical stacked phases", Render: renderLadder},
	{ID: "ring", Name: "Timeline Ring", Icon: "◐", Desc: "Circular progress sweep", Render: renderRing},
	{ID: "path", Name: "Breath Path", Icon: "∿", Desc: "Dot travels along a line", Render: renderPath},
	{ID: "minimal", Name: "Minimal Word", Icon: "Aa", Desc: "Just text with a pulse", Render: renderMinimal},
}

// All returns the registered visualizations in display order.
func All() []Visualization {
	out := make([]Visualization, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a visualization by id.
func Lookup(id string) (Visualization, bool) {
	for _, v := range registry {
		if v.ID == id {
			return v, true
		}
	}
	return Visualization{}, false
}

// Next returns the visualization after id, wrapping around. Unknown ids
// yield the first one.
func Next(id string) Visualization {
	for i, v := range registry {
		if v.ID == id {
			return registry[(i+1)%len(registry)]
		}
	}
	return registry[0]
}

// IDs lists the registered ids.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for _, v := range registry {
		ids = append(ids, v.ID)
	}
	return ids
}

var (
	phaseColors = [model.PhaseCount]lipgloss.Color{"#7dd3c0", "#a8d4e6", "#c4b7d4", "#e8c4b8"}
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
)

// PhaseStyle returns the accent style of a phase.
func PhaseStyle(phase int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PhaseColor(phase))
}

// PhaseColor returns the accent color of a phase.
func PhaseColor(phase int) lipgloss.Color {
	return phaseColors[wrapPhase(phase)]
}

func edgeStyle(current, phase int) lipgloss.Style {
	if current == phase {
		return PhaseStyle(phase).Bold(true)
	}
	return dimStyle
}

func labelStyle(current, phase int) lipgloss.Style {
	if current == phase {
		return PhaseStyle(phase)
	}
	return mutedStyle
}

func wrapPhase(phase int) int {
	return ((phase % model.PhaseCount) + model.PhaseCount) % model.PhaseCount
}

func (f Frame) normalized() Frame {
	f.Phase = wrapPhase(f.Phase)
	f.Progress = clamp01(f.Progress)
	if len(f.Durations) != model.PhaseCount {
		f.Durations = []float64{1, 1, 1, 1}
	}
	if f.Width <= 0 {
		f.Width = DefaultWidth
	}
	return f
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func total(durations []float64) float64 {
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	return sum
}

// cycleFraction is how far through the whole cycle the frame is.
func cycleFraction(f Frame) float64 {
	sum := total(f.Durations)
	if sum <= 0 {
		return 0
	}
	elapsed := 0.0
	for i := 0; i < f.Phase; i++ {
		elapsed += f.Durations[i]
	}
	elapsed += f.Progress * f.Durations[f.Phase]
	return clamp01(elapsed / sum)
}

// segmentWidths splits width columns proportionally to durations. Rounding
// drift is absorbed by the last non-empty segment.
func segmentWidths(durations []float64, width int) []int {
	widths := make([]int, len(durations))
	sum := total(durations)
	if sum <= 0 || width <= 0 {
		return widths
	}
	used := 0
	last := -1
	for i, d := range durations {
		if d <= 0 {
			continue
		}
		widths[i] = int(math.Round(d / sum * float64(width)))
		if widths[i] < 1 {
			widths[i] = 1
		}
		used += widths[i]
		last = i
	}
	if last >= 0 {
		widths[last] += width - used
		if widths[last] < 1 {
			widths[last] = 1
		}
	}
	return widths
}

func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// cell is one styled grid position.
type cell struct {
	r     rune
	style *lipgloss.Style
}

type grid [][]cell

func newGrid(rows, cols int) grid {
	g := make(grid, rows)
	for i := range g {
		g[i] = make([]cell, cols)
		for j := range g[i] {
			g[i][j] = cell{r: ' '}
		}
	}
	return g
}

func (g grid) set(row, col int, r rune, style lipgloss.Style) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return
	}
	s := style
	g[row][col] = cell{r: r, style: &s}
}

func (g grid) text(row, col int, s string, style lipgloss.Style) {
	for _, r := range s {
		g.set(row, col, r, style)
		col += runewidth.RuneWidth(r)
	}
}

func (g grid) String() string {
	lines := make([]string, len(g))
	for i, row := range g {
		var b strings.Builder
		for _, c := range row {
			if c.style == nil {
				b.WriteRune(c.r)
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}
