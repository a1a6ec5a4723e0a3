package stats

import (
	"sort"

	"github.com/verte-zerg/tuibreathe/internal/model"
)

// TopPatterns returns the n most practiced patterns by session count.
func TopPatterns(totals []model.PatternTotal, n int) []model.PatternTotal {
	if n <= 0 || len(totals) == 0 {
		return nil
	}
	items := make([]model.PatternTotal, len(totals))
	copy(items, totals)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Sessions == items[j].Sessions {
			if items[i].TotalSeconds == items[j].TotalSeconds {
				return items[i].PatternID < items[j].PatternID
			}
			return items[i].TotalSeconds > items[j].TotalSeconds
		}
		return items[i].Sessions > items[j].Sessions
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
