package styles

import (
	"github.com/alecthomas/chroma/v2"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// EditorColors are the editing surface colours taken from a highlighting
// scheme.
type EditorColors struct {
	Text       lipgloss.Color
	Background lipgloss.Color
	LineNumber lipgloss.Color
	CursorLine lipgloss.Color
}

// SchemeColors extracts editor colours from the chroma style named scheme.
// Unknown names use chroma's fallback style. Entries the scheme leaves unset
// are derived from its text and background colours.
func SchemeColors(scheme string) EditorColors {
	style := chromastyles.Get(scheme)

	bgEntry := style.Get(chroma.Background)
	text := style.Get(chroma.Text).Colour
	if !text.IsSet() {
		text = bgEntry.Colour
	}

	c := EditorColors{
		Text:       colourOr(text, "#d4d4d4"),
		Background: colourOr(bgEntry.Background, "#1e1e1e"),
	}

	c.LineNumber = colourOr(style.Get(chroma.LineNumbers).Colour, string(blend(c.Background, c.Text, 0.45)))
	c.CursorLine = colourOr(style.Get(chroma.LineHighlight).Background, string(blend(c.Background, c.Text, 0.08)))

	return c
}

func colourOr(c chroma.Colour, def string) lipgloss.Color {
	if !c.IsSet() {
		return lipgloss.Color(def)
	}
	return lipgloss.Color(c.String())
}

// blend mixes from toward to by t in Lab space.
func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, err := colorful.Hex(string(from))
	if err != nil {
		return from
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return from
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// EditorStyles are the lipgloss styles for the editing surface.
type EditorStyles struct {
	Base             lipgloss.Style
	Text             lipgloss.Style
	LineNumber       lipgloss.Style
	CursorLine       lipgloss.Style
	CursorLineNumber lipgloss.Style
}

// NewEditorStyles builds editing surface styles for the colours.
func NewEditorStyles(c EditorColors) EditorStyles {
	base := lipgloss.NewStyle().Background(c.Background)
	return EditorStyles{
		Base:             base,
		Text:             base.Foreground(c.Text),
		LineNumber:       base.Foreground(c.LineNumber),
		CursorLine:       lipgloss.NewStyle().Background(c.CursorLine).Foreground(c.Text),
		CursorLineNumber: lipgloss.NewStyle().Background(c.CursorLine).Foreground(c.Text).Bold(true),
	}
}
