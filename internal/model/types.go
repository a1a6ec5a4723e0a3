// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// VoiceStyle selects the phrasing of spoken prompts.
type VoiceStyle string

const (
	VoiceShort  VoiceStyle = "short"
	VoiceGuided VoiceStyle = "guided"
)

// ParseVoiceStyle validates a voice style name.
func ParseVoiceStyle(s string) (VoiceStyle, error) {
	switch VoiceStyle(s) {
	case VoiceShort, VoiceGuided:
		return VoiceStyle(s), nil
	default:
		return "", fmt.Errorf("unknown voice style %q (want short or guided)", s)
	}
}

// Settings defines session settings.
type Settings struct {
	Pattern       string
	Visualization string
	Haptics       bool
	Voice         bool
	VoiceStyle    VoiceStyle
	TickInterval  time.Duration
	History       bool
}

// DefaultSettings returns the settings used when neither flags nor config set a value.
func DefaultSettings() Settings {
	return Settings{
		Pattern:       "box4",
		Visualization: "box",
		Haptics:       true,
		Voice:         false,
		VoiceStyle:    VoiceShort,
		TickInterval:  50 * time.Millisecond,
		History:       true,
	}
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Pattern string
	Since   *time.Time
	Last    int
	Window  int
}

// SessionRecord captures a completed breathing session.
type SessionRecord struct {
	StartedAt    time.Time
	EndedAt      time.Time
	PatternID    string
	PatternName  string
	Durations    []float64
	Cycles       int
	TotalSeconds int
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID    int64
	EndedAt      time.Time
	PatternID    string
	PatternName  string
	Cycles       int
	TotalSeconds int
}

// PatternTotal aggregates stored sessions per pattern.
type PatternTotal struct {
	PatternID    string
	PatternName  string
	Sessions     int
	Cycles       int
	TotalSeconds int
}
