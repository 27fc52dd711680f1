package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the host level bindings. Everything else reaches the editor.
type keyMap struct {
	Save          key.Binding
	CycleTheme    key.Binding
	CycleScheme   key.Binding
	TogglePreview key.Binding
	ToggleVim     key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "appearance"),
		),
		CycleScheme: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "scheme"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "preview"),
		),
		ToggleVim: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "vim"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("alt+↑/↓", "scroll preview"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("alt+down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.CycleTheme, k.CycleScheme, k.TogglePreview, k.ToggleVim, k.ScrollUp, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Quit},
		{k.CycleTheme, k.CycleScheme},
		{k.TogglePreview, k.ToggleVim, k.ScrollUp, k.ScrollDown},
	}
}
