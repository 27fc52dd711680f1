package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/markview/internal/core/page"
	"github.com/hay-kot/markview/internal/core/styles"
)

// previewPane shows the most recently published page. It renders the page
// source for the terminal with glamour on the page background.
type previewPane struct {
	viewport  viewport.Model
	page      page.Page
	loaded    bool
	bg        page.RGB
	renderers map[bool]*glamour.TermRenderer
}

func newPreviewPane() *previewPane {
	return &previewPane{
		viewport:  viewport.New(0, 0),
		renderers: map[bool]*glamour.TermRenderer{},
	}
}

// SetBackground implements preview.Viewer.
func (p *previewPane) SetBackground(bg page.RGB) {
	p.bg = bg
	p.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))
}

// Load implements preview.Viewer. The previous page is replaced.
func (p *previewPane) Load(pg page.Page) error {
	p.page = pg
	p.loaded = true
	return p.refresh()
}

// Page returns the displayed page.
func (p *previewPane) Page() (page.Page, bool) {
	return p.page, p.loaded
}

func (p *previewPane) setSize(width, height int) {
	if width != p.viewport.Width {
		clear(p.renderers)
	}
	p.viewport.Width = width
	p.viewport.Height = height
	_ = p.refresh()
}

func (p *previewPane) refresh() error {
	if !p.loaded || p.viewport.Width <= 0 {
		return nil
	}

	r, err := p.renderer(p.page.Dark)
	if err != nil {
		return fmt.Errorf("create preview renderer: %w", err)
	}

	out, err := r.Render(p.page.Source)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}

	p.viewport.SetContent(out)
	return nil
}

func (p *previewPane) renderer(dark bool) (*glamour.TermRenderer, error) {
	if r, ok := p.renderers[dark]; ok {
		return r, nil
	}

	wrap := p.viewport.Width - 2
	if wrap < 10 {
		wrap = 10
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle(dark)),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}

	p.renderers[dark] = r
	return r, nil
}

func (p *previewPane) View() string {
	return p.viewport.View()
}
