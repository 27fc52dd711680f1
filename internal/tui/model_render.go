package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/markview/internal/core/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	editor := styles.PaneFocusedStyle.Render(m.editor.View())

	body := editor
	if !m.layout.Hidden() && m.split.Position() > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, editor, styles.PaneBorderStyle.Render(m.preview.View()))
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteByte('\n')
	b.WriteString(m.renderStatusBar())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderStatusBar() string {
	if m.state == UIStateSaveAs {
		return styles.StatusBarStyle.Width(m.width).Render(m.saveAs.View())
	}

	mode := "EDIT"
	if active := m.modes.Active(); active != nil {
		mode = active.Name() + " " + active.Status()
	}

	name := m.Document().Name()
	if m.Modified() {
		name += " *"
	}

	appearance := "light"
	if m.dark {
		appearance = "dark"
	}

	info := strings.Join([]string{
		name,
		m.mode.String() + " (" + appearance + ")",
		m.scheme,
	}, "  ")

	left := styles.StatusModeStyle.Render(mode) + styles.StatusBarStyle.Render(info)

	var msg string
	switch {
	case m.err != nil:
		msg = styles.StatusErrorStyle.Render(m.err.Error())
	case m.status != "":
		msg = styles.StatusBarStyle.Render(m.status)
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(msg), 0)
	return left + styles.StatusBarStyle.Padding(0).Render(strings.Repeat(" ", gap)) + msg
}

// helpStyles maps the current palette onto the help line.
func helpStyles() help.Styles {
	return help.Styles{
		ShortKey:       styles.KeyStyle,
		ShortDesc:      styles.HelpStyle,
		ShortSeparator: styles.HelpStyle,
		Ellipsis:       styles.HelpStyle,
		FullKey:        styles.KeyStyle,
		FullDesc:       styles.HelpStyle,
		FullSeparator:  styles.HelpStyle,
	}
}
