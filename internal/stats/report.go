package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/tuibreathe/internal/model"
	"github.com/verte-zerg/tuibreathe/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionAggregate
	Totals   []model.PatternTotal
	Window   int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	totals, err := st.PatternTotals(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}
	return Report{
		Sessions: sessions,
		Totals:   totals,
		Window:   cfg.Window,
	}, nil
}

// Render writes the full report sized to width columns; zero means the
// terminal width.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if top := TopPatterns(r.Totals, 1); len(top) == 1 {
		if _, err := fmt.Fprintf(w, "Most practiced: %s\n\n", top[0].PatternName); err != nil {
			return err
		}
	}
	if err := RenderPatternTable(w, r.Totals); err != nil {
		return err
	}
	return RenderTrend(w, r.Sessions, r.Window, width)
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}
