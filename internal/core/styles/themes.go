package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/hay-kot/markview/internal/core/page"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Error      lipgloss.Color
}

var (
	darkPalette = Palette{
		Primary:    lipgloss.Color("#4493f8"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#d4d4d4"),
		Muted:      lipgloss.Color("#6e7681"),
		Background: lipgloss.Color(page.DarkBackground.Hex()),
		Surface:    lipgloss.Color("#2d2d2d"),
		Error:      lipgloss.Color("#f7768e"),
	}
	lightPalette = Palette{
		Primary:    lipgloss.Color("#0969da"),
		Secondary:  lipgloss.Color("#1b7c83"),
		Foreground: lipgloss.Color("#1f2328"),
		Muted:      lipgloss.Color("#8c959f"),
		Background: lipgloss.Color(page.LightBackground.Hex()),
		Surface:    lipgloss.Color("#eff1f3"),
		Error:      lipgloss.Color("#cf222e"),
	}
)

// PaletteFor returns the palette for the presentation. Backgrounds match the
// preview page backgrounds.
func PaletteFor(isDark bool) Palette {
	if isDark {
		return darkPalette
	}
	return lightPalette
}

func colorHexPtr(c lipgloss.Color) *string {
	cc, err := colorful.Hex(string(c))
	if err != nil {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the palette for
// the presentation.
func GlamourStyle(isDark bool) ansi.StyleConfig {
	cfg := glamourstyles.LightStyleConfig
	if isDark {
		cfg = glamourstyles.DarkStyleConfig
	}
	p := PaletteFor(isDark)

	fg := colorHexPtr(p.Foreground)
	primary := colorHexPtr(p.Primary)
	secondary := colorHexPtr(p.Secondary)
	muted := colorHexPtr(p.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Table.Color = fg

	return cfg
}
