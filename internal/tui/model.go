// Package tui provides the Bubble Tea breathing interface.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuibreathe/internal/model"
	"github.com/verte-zerg/tuibreathe/internal/patterns"
	"github.com/verte-zerg/tuibreathe/internal/session"
	"github.com/verte-zerg/tuibreathe/internal/viz"
)

// DefaultFrameInterval is how often the screen polls the timer.
const DefaultFrameInterval = 50 * time.Millisecond

// minRecordedSeconds is the shortest session written to history.
const minRecordedSeconds = 1

// Timer is the part of the engine the screen reads and reconfigures.
type Timer interface {
	State() model.TimerState
	Durations() []float64
	SetPattern(p model.Pattern) error
}

// Controller runs sessions and owns the cue toggles.
type Controller interface {
	StartSession()
	StopSession()
	TogglePause()
	RefreshWakeLock()
	Close()
	Settings() session.Settings
	SetHaptics(on bool)
	SetVoice(on bool)
	SetVoiceStyle(style model.VoiceStyle)
}

// History records completed sessions.
type History interface {
	InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error)
}

// Options configures a Model.
type Options struct {
	Timer         Timer
	Controller    Controller
	Patterns      *patterns.Store
	History       History
	Pattern       model.Pattern
	Visualization string
	FrameInterval time.Duration
	Now           func() time.Time
	Logger        *slog.Logger
}

type mode int

const (
	modeBreathe mode = iota
	modePicker
	modeEditor
)

type frameMsg time.Time

// Model implements the Bubble Tea breathing UI.
type Model struct {
	timer    Timer
	ctrl     Controller
	patterns *patterns.Store
	history  History
	now      func() time.Time
	logger   *slog.Logger

	pattern       model.Pattern
	visualization viz.Visualization
	frameInterval time.Duration
	state         model.TimerState
	startedAt     time.Time

	mode   mode
	keys   keyMap
	help   help.Model
	notice string
	errMsg string
	width  int
	height int

	picker         table.Model
	pickerPatterns []model.Pattern
	pickerKeys     pickerKeyMap
	confirmKeys    confirmKeyMap
	pendingDelete  *model.Pattern

	editorInputs []textinput.Model
	editorIndex  int
	editorID     string
	editorKeys   editorKeyMap
}

// NewModel constructs a breathing TUI model.
func NewModel(opts Options) *Model {
	v, ok := viz.Lookup(opts.Visualization)
	if !ok {
		v = viz.All()[0]
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		timer:         opts.Timer,
		ctrl:          opts.Controller,
		patterns:      opts.Patterns,
		history:       opts.History,
		now:           opts.Now,
		logger:        opts.Logger,
		pattern:       opts.Pattern,
		visualization: v,
		frameInterval: opts.FrameInterval,
		state:         model.InitialTimerState(),
		keys:          newKeyMap(),
		help:          help.New(),
		pickerKeys:    newPickerKeyMap(),
		confirmKeys:   newConfirmKeyMap(),
		editorKeys:    newEditorKeyMap(),
	}
	m.initEditor()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.frame()
}

func (m *Model) frame() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.mode == modePicker {
			m.resizePicker()
		}
		return m, nil
	case frameMsg:
		m.state = m.timer.State()
		return m, m.frame()
	case tea.FocusMsg:
		m.ctrl.RefreshWakeLock()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.mode {
		case modePicker:
			return m.updatePicker(msg)
		case modeEditor:
			return m.updateEditor(msg)
		default:
			return m.updateBreathe(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBreathe(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Start):
		if m.timer.State().IsRunning {
			m.ctrl.TogglePause()
		} else {
			m.startSession()
		}
	case key.Matches(msg, m.keys.Stop):
		m.stopSession()
	case key.Matches(msg, m.keys.Viz):
		m.visualization = viz.Next(m.visualization.ID)
		m.notice = m.visualization.Name
	case key.Matches(msg, m.keys.Haptics):
		on := !m.ctrl.Settings().Haptics
		m.ctrl.SetHaptics(on)
		m.notice = "Haptics " + onOff(on)
	case key.Matches(msg, m.keys.Voice):
		on := !m.ctrl.Settings().Voice
		m.ctrl.SetVoice(on)
		m.notice = "Voice " + onOff(on)
	case key.Matches(msg, m.keys.VoiceStyle):
		style := model.VoiceGuided
		if m.ctrl.Settings().VoiceStyle == model.VoiceGuided {
			style = model.VoiceShort
		}
		m.ctrl.SetVoiceStyle(style)
		m.notice = "Voice style " + string(style)
	case key.Matches(msg, m.keys.Patterns):
		m.openPicker()
	case key.Matches(msg, m.keys.New):
		return m, m.openEditor(model.Pattern{})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.state = m.timer.State()
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.timer.State().IsRunning {
		m.recordSession(m.timer.State())
	}
	m.ctrl.Close()
	return m, tea.Quit
}

func (m *Model) startSession() {
	m.startedAt = m.now()
	m.notice = ""
	m.ctrl.StartSession()
	m.logger.Info("breathing session", "pattern", m.pattern.ID)
}

func (m *Model) stopSession() {
	state := m.timer.State()
	if !state.IsRunning {
		return
	}
	m.ctrl.StopSession()
	m.recordSession(state)
	m.state = m.timer.State()
}

// recordSession writes the finished session to history when it lasted long enough.
func (m *Model) recordSession(state model.TimerState) {
	if m.history == nil || state.TotalTime < minRecordedSeconds {
		return
	}
	cycles := state.Cycle - 1
	if cycles < 0 {
		cycles = 0
	}
	rec := model.SessionRecord{
		StartedAt:    m.startedAt,
		EndedAt:      m.now(),
		PatternID:    m.pattern.ID,
		PatternName:  m.pattern.Name,
		Durations:    append([]float64(nil), m.pattern.Durations...),
		Cycles:       cycles,
		TotalSeconds: state.TotalTime,
	}
	if _, err := m.history.InsertSession(context.Background(), rec); err != nil {
		m.logger.Error("failed to save session", "error", err)
		m.errMsg = "Failed to save session."
		return
	}
	m.notice = "Session saved: " + model.FormatElapsed(rec.TotalSeconds)
}

// usePattern switches the active pattern. A running session is stopped first.
func (m *Model) usePattern(p model.Pattern) error {
	if m.timer.State().IsRunning {
		m.stopSession()
	}
	if err := m.timer.SetPattern(p); err != nil {
		return err
	}
	m.pattern = p
	m.notice = p.Name
	m.state = m.timer.State()
	return nil
}

func errText(err error) string {
	if errors.Is(err, patterns.ErrLastPattern) {
		return "Cannot delete the last pattern."
	}
	return err.Error()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
