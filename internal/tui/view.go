package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuibreathe/internal/model"
	"github.com/verte-zerg/tuibreathe/internal/viz"
)

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	countdownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	instructionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Italic(true)
	panelStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A")).
				Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.mode {
	case modePicker:
		content = m.renderPicker()
	case modeEditor:
		content = m.renderEditor()
	default:
		content = m.renderBreathe()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	if m.height <= footerHeight+2 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - footerHeight
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return viz.DefaultWidth * 2
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderBreathe() string {
	state := m.state
	phase := model.PhaseAt(state.CurrentPhase)
	accent := viz.PhaseStyle(state.CurrentPhase)

	header := titleStyle.Render(m.pattern.Name) + "  " + mutedStyle.Render(m.pattern.Summary())
	frame := m.visualization.Render(viz.Frame{
		Phase:     state.CurrentPhase,
		Progress:  state.PhaseProgress,
		Durations: m.timer.Durations(),
		Width:     m.contentWidth(),
	})

	label := accent.Bold(true).Render(phase.Label)
	instruction := instructionStyle.Render(phase.Instruction)
	switch {
	case !state.IsRunning:
		label = titleStyle.Render("Ready")
		instruction = instructionStyle.Render("Ready to begin")
	case state.IsPaused:
		instruction = instructionStyle.Render("Paused")
	}

	lines := []string{header, "", frame, "", label, instruction}
	if countdown := m.renderCountdown(); countdown != "" {
		lines = append(lines, countdown)
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderCountdown shows whole seconds left in the phase; zero-length phases show nothing.
func (m *Model) renderCountdown() string {
	state := m.state
	if !state.IsRunning {
		return ""
	}
	durations := m.timer.Durations()
	if state.CurrentPhase < 0 || state.CurrentPhase >= len(durations) {
		return ""
	}
	if durations[state.CurrentPhase] <= 0 {
		return ""
	}
	return countdownStyle.Render(fmt.Sprintf("%d", state.RemainingSeconds(durations)))
}

func (m *Model) renderPicker() string {
	lines := []string{titleStyle.Render("Choose Pattern"), "", m.picker.View()}
	if m.pendingDelete != nil {
		lines = append(lines, "", errorStyle.Render(fmt.Sprintf("Delete %q? This cannot be undone.", m.pendingDelete.Name)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderEditor() string {
	title := "New Pattern"
	if m.editorID != "" {
		title = "Edit Pattern"
	}
	lines := []string{titleStyle.Render(title), ""}
	for _, input := range m.editorInputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, "", mutedStyle.Render("Box sides: "+boxChoices()+" seconds"))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	var status []string
	switch m.mode {
	case modePicker:
		if m.pendingDelete != nil {
			status = append(status, m.help.View(m.confirmKeys))
		} else {
			status = append(status, m.help.View(m.pickerKeys))
		}
	case modeEditor:
		status = append(status, m.help.View(m.editorKeys))
	default:
		status = append(status, footerStyle.Render(m.statusLine()))
		status = append(status, m.help.View(m.keys))
	}
	if m.errMsg != "" {
		status = append([]string{errorStyle.Render(m.errMsg)}, status...)
	}
	return strings.Join(status, "\n")
}

// statusLine is "Cycle N • m:ss" followed by the cue toggles.
func (m *Model) statusLine() string {
	settings := m.ctrl.Settings()
	segments := []string{
		fmt.Sprintf("Cycle %d • %s", m.state.Cycle, model.FormatElapsed(m.state.TotalTime)),
		"Haptics " + onOff(settings.Haptics),
		"Voice " + onOff(settings.Voice),
		m.visualization.Name,
	}
	if m.notice != "" {
		segments = append(segments, m.notice)
	}
	return strings.Join(segments, "  ")
}
