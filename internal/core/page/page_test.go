package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_Order(t *testing.T) {
	for _, dark := range []bool{true, false} {
		html := Assemble("<p>FRAGMENT</p>", dark)

		iDoctype := strings.Index(html, "<!DOCTYPE html>")
		iTheme := strings.Index(html, StyleSheet(dark))
		iPrint := strings.Index(html, PrintStyleSheet())
		iFrag := strings.Index(html, "<p>FRAGMENT</p>")

		require.Equal(t, 0, iDoctype)
		require.Positive(t, iTheme)
		require.Positive(t, iPrint)
		require.Positive(t, iFrag)
		assert.Less(t, iTheme, iPrint)
		assert.Less(t, iPrint, iFrag)
		assert.True(t, strings.HasSuffix(html, "</html>\n"))
	}
}

func TestAssemble_ThemeSelectsStylesheet(t *testing.T) {
	dark := Assemble("", true)
	light := Assemble("", false)

	assert.Contains(t, dark, "background: #1e1e1e")
	assert.NotContains(t, dark, "background: #ffffff;\n}")
	assert.Contains(t, light, "background: #ffffff")
	assert.NotContains(t, light, "background: #1e1e1e")
}

func TestAssemble_SelfContained(t *testing.T) {
	html := Assemble("<p>x</p>", true)

	assert.NotContains(t, html, "<link")
	assert.NotContains(t, html, "@import")
	assert.Contains(t, html, "@media print")
}

func TestBackgroundMatchesStylesheet(t *testing.T) {
	assert.Equal(t, "#1e1e1e", BackgroundFor(true).Hex())
	assert.Equal(t, "#ffffff", BackgroundFor(false).Hex())
	assert.Contains(t, StyleSheet(true), "background: "+BackgroundFor(true).Hex())
	assert.Contains(t, StyleSheet(false), "background: "+BackgroundFor(false).Hex())
}
