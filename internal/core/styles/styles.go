// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	KeyStyle           lipgloss.Style
	ValueStyle         lipgloss.Style
	MutedStyle         lipgloss.Style

	// TUI styles.
	StatusBarStyle   lipgloss.Style
	StatusModeStyle  lipgloss.Style
	StatusErrorStyle lipgloss.Style
	PaneBorderStyle  lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	HelpStyle        lipgloss.Style
)

func init() {
	SetTheme(PaletteFor(true))
}

// SetTheme rebuilds all global styles from p.
func SetTheme(p Palette) {
	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	KeyStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	ValueStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Padding(0, 1)
	StatusModeStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Background(p.Surface).
		Padding(0, 1)

	PaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted)
	PaneFocusedStyle = PaneBorderStyle.
		BorderForeground(p.Primary)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
}
