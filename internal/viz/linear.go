package viz

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

func renderLadder(f Frame) string {
	f = f.normalized()
	const labelWidth = 12
	barWidth := clampInt(f.Width-labelWidth-10, 8, 30)

	lines := make([]string, 0, model.PhaseCount)
	for i, info := range model.Phases {
		filled := int(math.Round(segmentFill(f.Phase, f.Progress, i) * float64(barWidth)))
		pointer := "  "
		name := runewidth.FillRight(info.Label, labelWidth)
		if i == f.Phase {
			pointer = PhaseStyle(i).Render("▸ ")
			name = PhaseStyle(i).Bold(true).Render(name)
		} else {
			name = mutedStyle.Render(name)
		}
		bar := PhaseStyle(i).Render(strings.Repeat("━", filled)) +
			dimStyle.Render(strings.Repeat("─", barWidth-filled))
		secs := mutedStyle.Render(" " + model.FormatSeconds(f.Durations[i]) + "s")
		lines = append(lines, pointer+name+bar+secs)
	}
	return strings.Join(lines, "\n")
}

// pathMarker is the marker column along a line of width columns.
func pathMarker(f Frame, width int) int {
	widths := segmentWidths(f.Durations, width)
	start := 0
	for i := 0; i < f.Phase; i++ {
		start += widths[i]
	}
	w := widths[f.Phase]
	if w == 0 {
		return clampInt(start, 0, width-1)
	}
	return clampInt(start+int(math.Round(f.Progress*float64(w-1))), 0, width-1)
}

func renderPath(f Frame) string {
	f = f.normalized()
	width := clampInt(f.Width-4, 12, 72)
	widths := segmentWidths(f.Durations, width)
	marker := pathMarker(f, width)

	var line, labels strings.Builder
	col := 0
	for i, w := range widths {
		for j := 0; j < w; j++ {
			switch {
			case col == marker:
				line.WriteString(markerStyle.Render("●"))
			case i == f.Phase:
				line.WriteString(PhaseStyle(i).Render("━"))
			default:
				line.WriteString(PhaseStyle(i).Faint(true).Render("─"))
			}
			col++
		}
		if w > 0 {
			labels.WriteString(labelStyle(f.Phase, i).Render(center(model.Phases[i].Short, w)))
		}
	}
	return line.String() + "\n" + labels.String()
}

// ringPoints is the number of dots around the ring.
const ringPoints = 36

// ringSegment maps a dot position (fraction of the cycle) to its phase.
func ringSegment(durations []float64, frac float64) int {
	sum := total(durations)
	if sum <= 0 {
		return 0
	}
	acc := 0.0
	for i, d := range durations {
		acc += d / sum
		if frac < acc {
			return i
		}
	}
	return len(durations) - 1
}

func renderRing(f Frame) string {
	f = f.normalized()
	const rows, cols = 11, 23
	g := newGrid(rows, cols)
	fill := cycleFraction(f)
	for k := 0; k < ringPoints; k++ {
		frac := float64(k) / ringPoints
		angle := frac*2*math.Pi - math.Pi/2
		row := int(math.Round(float64(rows-1)/2 + float64(rows-1)/2*math.Sin(angle)))
		col := int(math.Round(float64(cols-1)/2 + float64(cols-1)/2*math.Cos(angle)))
		if frac <= fill && fill > 0 {
			g.set(row, col, '●', PhaseStyle(f.Phase).Bold(true))
			continue
		}
		g.set(row, col, '·', PhaseStyle(ringSegment(f.Durations, frac)).Faint(true))
	}
	label := model.Phases[f.Phase].Label
	g.text(rows/2-1, (cols-runewidth.StringWidth(label))/2, label, PhaseStyle(f.Phase))
	remaining := model.TimerState{CurrentPhase: f.Phase, PhaseProgress: f.Progress}.RemainingSeconds(f.Durations)
	secs := model.FormatSeconds(float64(remaining)) + "s"
	g.text(rows/2+1, (cols-len(secs))/2, secs, mutedStyle)
	return g.String()
}

// minimalScale is the pulse scale: grows on inhale, shrinks on exhale.
func minimalScale(phase int, progress float64) float64 {
	switch phase {
	case 0:
		return 1 + progress*0.3
	case 1:
		return 1.3
	case 2:
		return 1.3 - progress*0.3
	default:
		return 1
	}
}

func renderMinimal(f Frame) string {
	f = f.normalized()
	scale := minimalScale(f.Phase, f.Progress)
	halo := int(math.Round((scale - 1) / 0.3 * 4))
	style := PhaseStyle(f.Phase)
	word := style.Bold(true).Render(model.Phases[f.Phase].Label)
	dots := strings.TrimSpace(strings.Repeat("· ", halo))
	if dots == "" {
		return word
	}
	side := style.Faint(true).Render(dots)
	return side + "  " + word + "  " + side
}
