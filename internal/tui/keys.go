package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start      key.Binding
	Stop       key.Binding
	Viz        key.Binding
	Haptics    key.Binding
	Voice      key.Binding
	VoiceStyle key.Binding
	Patterns   key.Binding
	New        key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Stop:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Viz:        key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "visualization")),
		Haptics:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "haptics")),
		Voice:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "voice")),
		VoiceStyle: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "guided voice")),
		Patterns:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "patterns")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new pattern")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Viz, k.Patterns, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Viz},
		{k.Haptics, k.Voice, k.VoiceStyle},
		{k.Patterns, k.New, k.Quit},
	}
}

type pickerKeyMap struct {
	Select key.Binding
	Edit   key.Binding
	Delete key.Binding
	New    key.Binding
	Back   key.Binding
}

func newPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Back:   key.NewBinding(key.WithKeys("esc", "p"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp implements help.KeyMap.
func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Edit, k.Delete, k.New, k.Back}
}

// FullHelp implements help.KeyMap.
func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type confirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func newConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "keep")),
	}
}

// ShortHelp implements help.KeyMap.
func (k confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type editorKeyMap struct {
	Next key.Binding
	Save key.Binding
	Back key.Binding
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Next: key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", "next field")),
		Save: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Save, k.Back}
}

// FullHelp implements help.KeyMap.
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
