// Package page assembles rendered fragments into complete, self-contained
// HTML documents.
package page

import (
	_ "embed"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	//go:embed css/dark.css
	darkCSS string
	//go:embed css/light.css
	lightCSS string
	//go:embed css/print.css
	printCSS string
)

const preamble = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
`

// RGB is an opaque background colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	cc := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	return cc.Hex()
}

// Background colours matching the body background of each stylesheet.
var (
	DarkBackground  = RGB{R: 0x1e, G: 0x1e, B: 0x1e}
	LightBackground = RGB{R: 0xff, G: 0xff, B: 0xff}
)

// BackgroundFor returns the background colour for the presentation.
func BackgroundFor(isDark bool) RGB {
	if isDark {
		return DarkBackground
	}
	return LightBackground
}

// Page is a rendered preview. It is regenerated wholesale on every change.
type Page struct {
	// HTML is the complete document.
	HTML string
	// BaseURI resolves relative references; empty when unknown.
	BaseURI string
	// Background is painted before the page loads.
	Background RGB
	Dark       bool
	// Source is the markdown the fragment was produced from, with the
	// placeholder substituted for empty documents.
	Source string
}

// StyleSheet returns the stylesheet body for the presentation.
func StyleSheet(isDark bool) string {
	if isDark {
		return darkCSS
	}
	return lightCSS
}

// PrintStyleSheet returns the print media rules shared by both presentations.
func PrintStyleSheet() string {
	return printCSS
}

// Assemble joins the preamble, the theme stylesheet, the print stylesheet and
// the fragment, in that order.
func Assemble(fragment string, isDark bool) string {
	css := StyleSheet(isDark)

	var b strings.Builder
	b.Grow(len(preamble) + len(css) + len(printCSS) + len(fragment) + 64)

	b.WriteString(preamble)
	b.WriteString(css)
	b.WriteString("\n")
	b.WriteString(printCSS)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString("\n</body>\n</html>\n")

	return b.String()
}
