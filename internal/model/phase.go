package model

import (
	"fmt"
	"math"
)

// PhaseInfo holds the display and voice text for a phase.
type PhaseInfo struct {
	Label       string
	Short       string
	Instruction string
	Voice       string
}

// Phases is indexed by phase number.
var Phases = [PhaseCount]PhaseInfo{
	{Label: "Breathe In", Short: "In", Instruction: "Inhale slowly...", Voice: "Breathe in"},
	{Label: "Hold", Short: "Hold", Instruction: "Hold gently...", Voice: "Hold"},
	{Label: "Breathe Out", Short: "Out", Instruction: "Exhale slowly...", Voice: "Breathe out"},
	{Label: "Hold", Short: "Hold", Instruction: "Rest...", Voice: "Hold"},
}

// PhaseAt returns phase metadata, wrapping out-of-range indexes.
func PhaseAt(phase int) PhaseInfo {
	return Phases[((phase%PhaseCount)+PhaseCount)%PhaseCount]
}

// TimerState is a snapshot of the breathing timer.
type TimerState struct {
	IsRunning     bool
	IsPaused      bool
	CurrentPhase  int
	PhaseProgress float64
	Cycle         int
	TotalTime     int
}

// InitialTimerState is the state before start and after stop.
func InitialTimerState() TimerState {
	return TimerState{Cycle: 1}
}

// RemainingSeconds is the countdown shown for the current phase.
func (s TimerState) RemainingSeconds(durations []float64) int {
	if s.CurrentPhase < 0 || s.CurrentPhase >= len(durations) {
		return 0
	}
	return int(math.Ceil(durations[s.CurrentPhase] * (1 - s.PhaseProgress)))
}

// FormatElapsed formats seconds as m:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
