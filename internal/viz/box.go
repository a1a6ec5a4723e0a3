package viz

import "math"

// boxSize picks the perimeter dimensions for a width. Terminal cells are
// roughly twice as tall as wide, so rows are half the columns.
func boxSize(width int) (rows, cols int) {
	cols = clampInt(width/2, 12, 36)
	rows = clampInt(cols/2, 5, 18)
	return rows, cols
}

// boxMarker locates the marker on a rows x cols perimeter. Phase 0 runs along
// the top edge left to right, then clockwise around the box.
func boxMarker(phase int, progress float64, rows, cols int) (row, col int) {
	lastRow := rows - 1
	lastCol := cols - 1
	p := clamp01(progress)
	switch wrapPhase(phase) {
	case 0:
		return 0, int(math.Round(p * float64(lastCol)))
	case 1:
		return int(math.Round(p * float64(lastRow))), lastCol
	case 2:
		return lastRow, int(math.Round((1 - p) * float64(lastCol)))
	default:
		return int(math.Round((1 - p) * float64(lastRow))), 0
	}
}

func renderBox(f Frame) string {
	f = f.normalized()
	rows, cols := boxSize(f.Width)
	const margin = 5
	g := newGrid(rows+2, cols+2*margin)

	draw := func(row, col int, r rune, phase int) {
		g.set(row+1, col+margin, r, edgeStyle(f.Phase, phase))
	}
	for c := 1; c < cols-1; c++ {
		draw(0, c, '─', 0)
		draw(rows-1, c, '─', 2)
	}
	for r := 1; r < rows-1; r++ {
		draw(r, cols-1, '│', 1)
		draw(r, 0, '│', 3)
	}
	draw(0, 0, '╭', 3)
	draw(0, cols-1, '╮', 0)
	draw(rows-1, cols-1, '╯', 1)
	draw(rows-1, 0, '╰', 2)

	in, hold, out := "IN", "HOLD", "OUT"
	g.text(0, margin+(cols-len(in))/2, in, labelStyle(f.Phase, 0))
	g.text(rows+1, margin+(cols-len(out))/2, out, labelStyle(f.Phase, 2))
	g.text(rows/2+1, margin+cols+1, hold, labelStyle(f.Phase, 1))
	g.text(rows/2+1, margin-1-len(hold), hold, labelStyle(f.Phase, 3))

	mr, mc := boxMarker(f.Phase, f.Progress, rows, cols)
	g.set(mr+1, mc+margin, '●', markerStyle)
	return g.String()
}
