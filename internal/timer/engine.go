// Package timer implements the breathing timer state machine.
//
// The engine owns a single mutable record (running, paused, phase, progress,
// cycle, total time) and advances it from wall-clock deltas on every tick.
// Progress is always derived from timestamps, never from tick counts, so
// late or skipped ticks do not cause drift.
package timer

import (
	"math"
	"sync"
	"time"

	"github.com/verte-zerg/tuibreathe/internal/clock"
	"github.com/verte-zerg/tuibreathe/internal/model"
)

// DefaultTickInterval is the period of the time-advancement callback.
const DefaultTickInterval = 50 * time.Millisecond

// Config contains runtime options for Engine.
type Config struct {
	TickInterval  time.Duration
	OnPhaseChange func(phase int)
}

// Engine is the breathing timer.
type Engine struct {
	mu            sync.Mutex
	clock         clock.Clock
	interval      time.Duration
	onPhaseChange func(phase int)

	durations    []float64
	state        model.TimerState
	sessionStart time.Time
	phaseStart   time.Time
	lastNotified Phase

	cancel     clock.Cancel
	generation uint64
}

// New creates a stopped engine for pattern. It fails when the pattern is invalid.
func New(pattern model.Pattern, clk clock.Clock, cfg Config) (*Engine, error) {
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	return &Engine{
		clock:         clk,
		interval:      cfg.TickInterval,
		onPhaseChange: cfg.OnPhaseChange,
		durations:     append([]float64(nil), pattern.Durations...),
		state:         model.InitialTimerState(),
		lastNotified:  noPhase,
	}, nil
}

// State returns a snapshot of the timer.
func (e *Engine) State() model.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Durations returns the active phase durations.
func (e *Engine) Durations() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]float64(nil), e.durations...)
}

// SetPattern swaps the active durations without resetting phase or progress.
func (e *Engine) SetPattern(pattern model.Pattern) error {
	if err := pattern.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.durations = append([]float64(nil), pattern.Durations...)
	e.mu.Unlock()
	return nil
}

// Start begins a new session at phase 0 and announces it.
func (e *Engine) Start() {
	e.mu.Lock()
	e.cancelLocked()
	now := e.clock.Now()
	e.lastNotified = noPhase
	e.state = model.TimerState{IsRunning: true, Cycle: 1}
	e.sessionStart = now
	e.phaseStart = now
	e.scheduleLocked()
	phase, notify := e.takeNotificationLocked()
	e.mu.Unlock()

	e.notify(phase, notify)
}

// Stop cancels the tick and resets the state. Stopping a stopped engine is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
	e.state = model.InitialTimerState()
	e.lastNotified = noPhase
}

// Close stops the engine. Teardown paths call it to guarantee no tick outlives the owner.
func (e *Engine) Close() {
	e.Stop()
}

// TogglePause pauses a running session or resumes a paused one.
// It does nothing while stopped.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.IsRunning {
		return
	}
	if !e.state.IsPaused {
		e.state.IsPaused = true
		e.cancelLocked()
		return
	}
	// Rebase the phase start so the paused fraction carries over.
	now := e.clock.Now()
	d := e.durations[e.state.CurrentPhase]
	offset := time.Duration(e.state.PhaseProgress * d * float64(time.Second))
	e.phaseStart = now.Add(-offset)
	e.state.IsPaused = false
	e.scheduleLocked()
}

func (e *Engine) tick(generation uint64) {
	e.mu.Lock()
	if generation != e.generation || !e.state.IsRunning || e.state.IsPaused {
		e.mu.Unlock()
		return
	}
	now := e.clock.Now()
	e.stepLocked(now)
	phase, notify := e.takeNotificationLocked()
	e.mu.Unlock()

	e.notify(phase, notify)
}

// stepLocked advances the record by one tick. At most one phase transition happens per step.
func (e *Engine) stepLocked(now time.Time) {
	d := e.durations[e.state.CurrentPhase]
	if d == 0 {
		e.advanceLocked(now)
		return
	}
	elapsed := now.Sub(e.phaseStart).Seconds()
	progress := math.Min(elapsed/d, 1)
	if progress < 0 {
		progress = 0
	}
	e.state.TotalTime = int(now.Sub(e.sessionStart) / time.Second)
	if progress >= 1 {
		e.advanceLocked(now)
		return
	}
	e.state.PhaseProgress = progress
}

func (e *Engine) advanceLocked(now time.Time) {
	current := Phase(e.state.CurrentPhase)
	if current.WrapsCycle() {
		e.state.Cycle++
	}
	e.state.CurrentPhase = int(current.Next())
	e.state.PhaseProgress = 0
	e.phaseStart = now
}

func (e *Engine) takeNotificationLocked() (int, bool) {
	current := Phase(e.state.CurrentPhase)
	if current == e.lastNotified {
		return 0, false
	}
	e.lastNotified = current
	return int(current), true
}

func (e *Engine) notify(phase int, ok bool) {
	if !ok || e.onPhaseChange == nil {
		return
	}
	e.onPhaseChange(phase)
}

func (e *Engine) scheduleLocked() {
	e.generation++
	generation := e.generation
	e.cancel = e.clock.Every(e.interval, func() {
		e.tick(generation)
	})
}

func (e *Engine) cancelLocked() {
	e.generation++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}
