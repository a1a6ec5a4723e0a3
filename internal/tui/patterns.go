package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuibreathe/internal/model"
	"github.com/verte-zerg/tuibreathe/internal/patterns"
)

const (
	editorName = iota
	editorDurations
)

func (m *Model) openPicker() {
	m.mode = modePicker
	m.errMsg = ""
	m.pendingDelete = nil
	m.refreshPicker()
}

func (m *Model) refreshPicker() {
	m.pickerPatterns = m.patterns.List()
	rows := make([]table.Row, 0, len(m.pickerPatterns))
	cursor := 0
	for i, p := range m.pickerPatterns {
		marker := " "
		if p.ID == m.pattern.ID {
			marker = "✓"
			cursor = i
		}
		rows = append(rows, table.Row{
			marker,
			p.Name,
			p.Summary(),
			model.FormatSeconds(p.CycleSeconds()) + "s",
		})
	}
	m.picker = table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 1},
			{Title: "Pattern", Width: 20},
			{Title: "Durations", Width: 34},
			{Title: "Cycle", Width: 6},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1a1a2e")).
		Background(lipgloss.Color("#7dd3c0")).
		Bold(false)
	m.picker.SetStyles(styles)
	m.resizePicker()
	m.picker.SetCursor(cursor)
}

func (m *Model) resizePicker() {
	height := len(m.pickerPatterns) + 1
	if m.height > 0 && height > m.height-6 {
		height = m.height - 6
	}
	if height < 2 {
		height = 2
	}
	m.picker.SetHeight(height)
}

func (m *Model) selectedPattern() (model.Pattern, bool) {
	i := m.picker.Cursor()
	if i < 0 || i >= len(m.pickerPatterns) {
		return model.Pattern{}, false
	}
	return m.pickerPatterns[i], true
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingDelete != nil {
		return m.updateConfirm(msg)
	}
	switch {
	case key.Matches(msg, m.pickerKeys.Back):
		m.mode = modeBreathe
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, m.pickerKeys.Select):
		p, ok := m.selectedPattern()
		if !ok {
			return m, nil
		}
		if err := m.usePattern(p); err != nil {
			m.errMsg = errText(err)
			return m, nil
		}
		m.mode = modeBreathe
		return m, nil
	case key.Matches(msg, m.pickerKeys.Edit):
		if p, ok := m.selectedPattern(); ok {
			return m, m.openEditor(p)
		}
		return m, nil
	case key.Matches(msg, m.pickerKeys.New):
		return m, m.openEditor(model.Pattern{})
	case key.Matches(msg, m.pickerKeys.Delete):
		m.askDelete()
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// askDelete arms the confirmation prompt for the selected pattern.
func (m *Model) askDelete() {
	p, ok := m.selectedPattern()
	if !ok {
		return
	}
	if len(m.pickerPatterns) <= 1 {
		m.errMsg = errText(patterns.ErrLastPattern)
		return
	}
	m.errMsg = ""
	m.pendingDelete = &p
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.confirmKeys.Confirm):
		p := *m.pendingDelete
		m.pendingDelete = nil
		m.deletePattern(p)
	case key.Matches(msg, m.confirmKeys.Cancel):
		m.pendingDelete = nil
	}
	return m, nil
}

func (m *Model) deletePattern(p model.Pattern) {
	if err := m.patterns.Delete(p.ID); err != nil {
		m.errMsg = errText(err)
		return
	}
	m.errMsg = ""
	if p.ID == m.pattern.ID {
		next, _ := m.patterns.Resolve("")
		if err := m.usePattern(next); err != nil {
			m.errMsg = errText(err)
		}
	}
	m.refreshPicker()
}

func (m *Model) initEditor() {
	name := textinput.New()
	name.Prompt = "Name: "
	name.Placeholder = "My pattern"
	name.CharLimit = 40
	durations := textinput.New()
	durations.Prompt = "Durations: "
	durations.Placeholder = "4-7-8-0 or a box side such as 6"
	durations.CharLimit = 32
	m.editorInputs = []textinput.Model{name, durations}
}

// openEditor shows the pattern form, prefilled from p when editing.
func (m *Model) openEditor(p model.Pattern) tea.Cmd {
	m.mode = modeEditor
	m.errMsg = ""
	m.editorID = p.ID
	m.editorInputs[editorName].SetValue(p.Name)
	switch {
	case p.ID == "":
		m.editorInputs[editorDurations].SetValue("")
	case p.Kind == model.KindBox:
		m.editorInputs[editorDurations].SetValue(model.FormatSeconds(p.BoxDuration))
	default:
		m.editorInputs[editorDurations].SetValue(model.FormatDurations(p.Durations))
	}
	return m.setEditorIndex(editorName)
}

func (m *Model) setEditorIndex(idx int) tea.Cmd {
	m.editorIndex = idx
	var cmd tea.Cmd
	for i := range m.editorInputs {
		if i == idx {
			cmd = m.editorInputs[i].Focus()
			continue
		}
		m.editorInputs[i].Blur()
	}
	return cmd
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.editorKeys.Back):
		m.mode = modeBreathe
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, m.editorKeys.Next):
		return m, m.setEditorIndex((m.editorIndex + 1) % len(m.editorInputs))
	case key.Matches(msg, m.editorKeys.Save):
		if err := m.savePattern(); err != nil {
			m.errMsg = errText(err)
			return m, nil
		}
		m.mode = modeBreathe
		return m, nil
	}
	var cmd tea.Cmd
	m.editorInputs[m.editorIndex], cmd = m.editorInputs[m.editorIndex].Update(msg)
	return m, cmd
}

// savePattern adds or updates the edited pattern and makes it active.
func (m *Model) savePattern() error {
	p, err := parseEditor(m.editorInputs[editorName].Value(), m.editorInputs[editorDurations].Value())
	if err != nil {
		return err
	}
	if m.editorID == "" {
		added, err := m.patterns.Add(p)
		if err != nil {
			return err
		}
		return m.usePattern(added)
	}
	p.ID = m.editorID
	if err := m.patterns.Update(p); err != nil {
		return err
	}
	return m.usePattern(p)
}

// parseEditor builds a pattern from the form fields. A single number is a
// box side; four numbers are per-phase durations.
func parseEditor(name, durations string) (model.Pattern, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Pattern{}, fmt.Errorf("name is required")
	}
	durations = strings.TrimSpace(durations)
	if side, err := strconv.ParseFloat(durations, 64); err == nil {
		if !slices.Contains(model.BoxDurations, side) {
			return model.Pattern{}, fmt.Errorf("%w: box side must be one of %s seconds", model.ErrInvalidPattern, boxChoices())
		}
		return patterns.NewBox(name, side), nil
	}
	values, err := model.ParseDurations(durations)
	if err != nil {
		return model.Pattern{}, err
	}
	p := patterns.NewTrapezoid(name, values)
	if err := p.Validate(); err != nil {
		return model.Pattern{}, err
	}
	return p, nil
}

func boxChoices() string {
	parts := make([]string, len(model.BoxDurations))
	for i, d := range model.BoxDurations {
		parts[i] = model.FormatSeconds(d)
	}
	return strings.Join(parts, ", ")
}
