package viz

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

// segmentFill is how full segment i of the bar is.
func segmentFill(phase int, progress float64, i int) float64 {
	switch {
	case i < phase:
		return 1
	case i == phase:
		return clamp01(progress)
	default:
		return 0
	}
}

func renderBar(f Frame) string {
	f = f.normalized()
	width := clampInt(f.Width-4, 12, 72)
	widths := segmentWidths(f.Durations, width)

	var bar, labels strings.Builder
	for i, w := range widths {
		if w == 0 {
			continue
		}
		seg := progress.New(
			progress.WithSolidFill(string(PhaseColor(i))),
			progress.WithWidth(w),
			progress.WithoutPercentage(),
		)
		seg.Full = '█'
		seg.Empty = '░'
		seg.EmptyColor = "#2A2A2A"
		bar.WriteString(seg.ViewAs(segmentFill(f.Phase, f.Progress, i)))
		labels.WriteString(labelStyle(f.Phase, i).Render(center(model.Phases[i].Short, w)))
	}
	title := PhaseStyle(f.Phase).Bold(true).Render(center(model.Phases[f.Phase].Label, width))
	return strings.Join([]string{bar.String(), labels.String(), "", title}, "\n")
}
