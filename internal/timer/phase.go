package timer

import "github.com/verte-zerg/tuibreathe/internal/model"

// Phase is one of the four stages of a breathing cycle.
type Phase int

const (
	Inhale Phase = iota
	HoldIn
	Exhale
	HoldOut
)

// noPhase marks that no phase has been announced yet.
const noPhase Phase = -1

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	return (p + 1) % model.PhaseCount
}

// WrapsCycle reports whether completing p starts a new cycle.
func (p Phase) WrapsCycle() bool {
	return p == HoldOut
}

func (p Phase) String() string {
	if p < Inhale || p > HoldOut {
		return "none"
	}
	return model.Phases[p].Label
}
