package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/markview/internal/core/document"
	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/preview"
)

// --- Keys ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleAppearance()
		return m, nil
	case key.Matches(msg, m.keys.CycleScheme):
		m.cycleScheme()
		return m, nil
	case key.Matches(msg, m.keys.TogglePreview):
		m.togglePreview()
		return m, nil
	case key.Matches(msg, m.keys.ToggleVim):
		m.toggleVim()
		return m, nil
	case key.Matches(msg, m.keys.ScrollUp):
		m.preview.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.preview.viewport.LineDown(1)
		return m, nil
	}

	return m.handleEditKey(msg)
}

// handleEditKey routes a keystroke through the editing mode to the editor and
// fires TextChanged when the text changed.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.editor.Value()

	cmd := m.editor.press(m.modes.Key(msg.String()), msg)

	if after := m.editor.Value(); after != before {
		m.publish(preview.TextChanged{Text: after})
	}
	return m, cmd
}

// --- Actions ---

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.doc.path == "" {
		m.state = UIStateSaveAs
		m.saveAs.SetValue("")
		cmd := m.saveAs.Focus()
		m.editor.Blur()
		return m, tea.Batch(cmd, textinput.Blink)
	}
	m.saveTo(m.doc.path)
	return m, nil
}

func (m Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endSaveAs()
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.saveAs.Value())
		m.endSaveAs()
		if path != "" {
			m.saveTo(path)
		}
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.saveAs, cmd = m.saveAs.Update(msg)
	return m, cmd
}

func (m *Model) endSaveAs() {
	m.state = UIStateEditing
	m.saveAs.Blur()
	m.editor.Focus()
}

// saveTo writes the text to path. A changed identity is published so relative
// assets resolve against the new location. On failure the document state is
// unchanged and the error is shown in the status bar.
func (m *Model) saveTo(path string) {
	doc, err := document.Save(path, m.editor.Value())
	if err != nil {
		m.err = err
		m.status = ""
		m.logger.Error().Err(err).Str("path", path).Msg("save document")
		return
	}

	changed := doc.Path != m.doc.path
	m.doc.path = doc.Path
	m.doc.saved = doc.Text
	m.err = nil
	m.status = fmt.Sprintf("saved %s", doc.Name())

	m.logger.Info().Str("path", doc.Path).Int("bytes", len(doc.Text)).Msg("document saved")

	if changed {
		m.publish(preview.IdentityChanged{})
	}
}

// cycleAppearance persists the next appearance mode and republishes.
func (m *Model) cycleAppearance() {
	m.mode = m.mode.Next()
	m.prefs.Save(prefs.KeyTheme, m.mode.String())
	m.publish(preview.AppearanceChanged{})
	m.status = fmt.Sprintf("appearance %s", m.mode)
}

// cycleScheme persists and applies the next editor scheme.
func (m *Model) cycleScheme() {
	m.scheme = m.schemes.Next(m.scheme, m.host)
	m.prefs.Save(prefs.KeyColorScheme, m.scheme)
	m.editor.applyScheme(m.scheme)
	m.status = fmt.Sprintf("scheme %s", m.scheme)
}

func (m *Model) togglePreview() {
	if m.layout.ToggleHidden() {
		m.status = "preview hidden"
	} else {
		m.status = "preview shown"
	}
	m.resize()
}

func (m *Model) toggleVim() {
	if m.modes.Toggle() {
		m.status = "vim mode on"
	} else {
		m.status = "vim mode off"
	}
}
