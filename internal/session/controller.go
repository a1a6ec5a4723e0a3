// Package session wires timer phase changes to haptic, voice and wake-lock side effects.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/verte-zerg/tuibreathe/internal/cues"
	"github.com/verte-zerg/tuibreathe/internal/model"
)

// HapticPulse is the vibration length for each phase change.
const HapticPulse = 100 * time.Millisecond

const (
	completionPrompt   = "Session complete"
	guidedOpeningLabel = "Starting breathing session."
)

// Engine is the part of the timer the controller drives.
type Engine interface {
	Start()
	Stop()
	TogglePause()
	State() model.TimerState
}

// Haptics produces a short physical cue.
type Haptics interface {
	Pulse(d time.Duration) error
}

// Speaker speaks a prompt.
type Speaker interface {
	Speak(text string) error
}

// WakeLock keeps the screen on while held.
type WakeLock interface {
	Request() bool
	Release()
}

// Capabilities groups the host collaborators. Nil fields mean unsupported.
type Capabilities struct {
	Haptics  Haptics
	Speaker  Speaker
	WakeLock WakeLock
}

// Settings are the user toggles consulted on each side effect.
type Settings struct {
	Haptics    bool
	Voice      bool
	VoiceStyle model.VoiceStyle
}

// Controller runs sessions on an Engine and fires cues on phase changes.
type Controller struct {
	engine   Engine
	haptics  Haptics
	speaker  Speaker
	wakeLock WakeLock
	logger   *slog.Logger

	mu       sync.Mutex
	settings Settings
	locked   bool
}

// New returns a Controller. A nil logger discards logs.
func New(engine Engine, caps Capabilities, settings Settings, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		engine:   engine,
		haptics:  caps.Haptics,
		speaker:  caps.Speaker,
		wakeLock: caps.WakeLock,
		logger:   logger,
		settings: settings,
	}
	if c.haptics == nil {
		c.haptics = cues.Unsupported{}
	}
	if c.speaker == nil {
		c.speaker = cues.Unsupported{}
	}
	if c.wakeLock == nil {
		c.wakeLock = cues.Unsupported{}
	}
	if c.settings.VoiceStyle == "" {
		c.settings.VoiceStyle = model.VoiceShort
	}
	return c
}

// StartSession acquires the wake lock, starts the timer and speaks the opening prompt.
func (c *Controller) StartSession() {
	c.requestWakeLock()
	c.engine.Start()
	settings := c.Settings()
	if settings.Voice {
		c.speak(OpeningPrompt(settings.VoiceStyle))
	}
	c.logger.Info("session started")
}

// StopSession releases the wake lock, stops the timer and speaks the completion prompt.
func (c *Controller) StopSession() {
	c.releaseWakeLock()
	c.engine.Stop()
	if c.Settings().Voice {
		c.speak(completionPrompt)
	}
	c.logger.Info("session stopped")
}

// TogglePause pauses or resumes a running session.
func (c *Controller) TogglePause() {
	if !c.engine.State().IsRunning {
		return
	}
	c.engine.TogglePause()
}

// OnPhaseChange is registered as the engine's phase-change callback.
func (c *Controller) OnPhaseChange(phase int) {
	settings := c.Settings()
	c.logger.Debug("phase change", "phase", phase, "label", model.PhaseAt(phase).Label)
	if settings.Haptics {
		if err := c.haptics.Pulse(HapticPulse); err != nil {
			c.logger.Debug("haptic pulse failed", "error", err)
		}
	}
	if settings.Voice {
		c.speak(model.PhaseAt(phase).Voice)
	}
}

// RefreshWakeLock re-requests the wake lock if a session is running without one.
func (c *Controller) RefreshWakeLock() {
	if !c.engine.State().IsRunning {
		return
	}
	if active, ok := c.wakeLock.(interface{ Active() bool }); ok && active.Active() {
		return
	}
	c.requestWakeLock()
}

// Close releases held resources and stops the engine.
func (c *Controller) Close() {
	c.releaseWakeLock()
	c.engine.Stop()
}

// Settings returns the current toggles.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetHaptics toggles haptic pulses.
func (c *Controller) SetHaptics(on bool) {
	c.mu.Lock()
	c.settings.Haptics = on
	c.mu.Unlock()
}

// SetVoice toggles spoken prompts.
func (c *Controller) SetVoice(on bool) {
	c.mu.Lock()
	c.settings.Voice = on
	c.mu.Unlock()
}

// SetVoiceStyle changes the opening prompt phrasing.
func (c *Controller) SetVoiceStyle(style model.VoiceStyle) {
	c.mu.Lock()
	c.settings.VoiceStyle = style
	c.mu.Unlock()
}

// OpeningPrompt returns the words spoken when a session starts.
func OpeningPrompt(style model.VoiceStyle) string {
	first := model.Phases[0].Voice
	if style == model.VoiceGuided {
		return guidedOpeningLabel + " " + first + "."
	}
	return first
}

func (c *Controller) speak(text string) {
	if err := c.speaker.Speak(text); err != nil {
		c.logger.Debug("speech failed", "text", text, "error", err)
	}
}

func (c *Controller) requestWakeLock() {
	ok := c.wakeLock.Request()
	c.mu.Lock()
	c.locked = ok
	c.mu.Unlock()
	if !ok {
		c.logger.Warn("wake lock unavailable")
	}
}

func (c *Controller) releaseWakeLock() {
	c.mu.Lock()
	locked := c.locked
	c.locked = false
	c.mu.Unlock()
	if locked {
		c.wakeLock.Release()
	}
}
