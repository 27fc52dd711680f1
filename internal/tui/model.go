// Package tui implements the terminal host: an editor pane and a live preview
// pane kept in sync by a preview.Synchronizer.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/markview/internal/core/config"
	"github.com/hay-kot/markview/internal/core/document"
	"github.com/hay-kot/markview/internal/core/editmode"
	"github.com/hay-kot/markview/internal/core/layout"
	"github.com/hay-kot/markview/internal/core/markdown"
	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/preview"
	"github.com/hay-kot/markview/internal/core/styles"
	"github.com/hay-kot/markview/internal/core/theme"
	"github.com/hay-kot/markview/internal/viewer"
)

// Preferences reads and persists user preferences.
type Preferences interface {
	Load(key, def string) string
	Save(key, value string)
}

// Options configures the terminal host.
type Options struct {
	Renderer    *markdown.Renderer
	Prefs       Preferences
	System      theme.System
	Schemes     theme.SchemeResolver
	HostSchemes []string          // schemes the host can apply
	Document    document.Document // initial document, may be unsaved
	Mirror      preview.Viewer    // optional second viewer fed every page
	Logger      zerolog.Logger
}

// SystemAppearanceMsg reports that the host dark/light signal changed.
type SystemAppearanceMsg struct{}

// systemPollMsg schedules the next system signal check.
type systemPollMsg struct{}

// systemWatcher is implemented by systems whose signal can change while the
// program runs. Refresh reports whether it did.
type systemWatcher interface {
	Refresh(ctx context.Context) bool
}

// systemPollInterval is how often a systemWatcher is asked to refresh.
const systemPollInterval = 2 * time.Second

// UIState represents the current state of the TUI.
type UIState int

const (
	UIStateEditing UIState = iota
	UIStateSaveAs
)

// docState is the identity and last saved text of the open document.
type docState struct {
	path  string
	saved string
}

// split is the divider between editor and preview. Position is the preview
// width in percent of the terminal width.
type split struct {
	pos int
}

func (s *split) Position() int       { return s.pos }
func (s *split) SetPosition(pos int) { s.pos = pos }

// Model is the Bubble Tea model for the terminal host.
type Model struct {
	ctx    context.Context
	prefs  Preferences
	logger zerolog.Logger

	system    theme.System
	pollEvery time.Duration
	mode      theme.Mode

	schemes theme.SchemeResolver
	host    []string
	scheme  string

	doc     *docState
	editor  *editorPane
	preview *previewPane
	split   *split
	layout  *layout.Controller
	modes   *editmode.Controller
	sync    *preview.Synchronizer

	keys   keyMap
	help   help.Model
	saveAs textinput.Model
	state  UIState

	dark   bool
	status string
	err    error
	width  int
	height int
}

// New creates the model and publishes the initial page.
func New(ctx context.Context, cfg *config.Config, opts Options) Model {
	doc := &docState{path: opts.Document.Path, saved: opts.Document.Text}
	editor := newEditorPane(opts.Document.Text, cfg.Editor.ShowLineNumbers())
	pane := newPreviewPane()

	var v preview.Viewer = pane
	if opts.Mirror != nil {
		v = viewer.Tee{pane, opts.Mirror}
	}

	sync := preview.New(preview.Deps{
		Renderer: opts.Renderer,
		Source: preview.SourceFunc(func() document.Document {
			return document.Document{Text: editor.Value(), Path: doc.path}
		}),
		Prefs:  opts.Prefs,
		System: opts.System,
		Viewer: v,
		Logger: opts.Logger,
	})

	previewPct := 100 - cfg.Layout.DefaultSplit
	sp := &split{pos: previewPct}

	modes := editmode.NewController(editor, editmode.NewVimMode)
	if cfg.Editor.VimMode {
		modes.Enable()
	}

	saveAs := textinput.New()
	saveAs.Prompt = "save as: "
	saveAs.Placeholder = "path/to/file.md"

	m := Model{
		ctx:     ctx,
		prefs:   opts.Prefs,
		logger:  opts.Logger,
		system:  opts.System,
		schemes: opts.Schemes,
		host:    opts.HostSchemes,
		doc:     doc,
		editor:  editor,
		preview: pane,
		split:   sp,
		layout:  layout.NewController(sp, previewPct),
		modes:   modes,
		sync:    sync,
		keys:    defaultKeyMap(),
		help:    help.New(),
		saveAs:  saveAs,

		pollEvery: systemPollInterval,
	}

	m.mode = theme.ParseMode(m.prefs.Load(prefs.KeyTheme, theme.ValueDefault))
	m.scheme = m.schemes.Resolve(m.prefs.Load(prefs.KeyColorScheme, theme.DefaultScheme), m.host)
	m.editor.applyScheme(m.scheme)

	m.applyPage(sync.Start(ctx).Dark)

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.pollSystem())
}

// pollSystem checks the system signal after pollEvery. It returns
// nil when the system cannot change.
func (m Model) pollSystem() tea.Cmd {
	w, ok := m.system.(systemWatcher)
	if !ok {
		return nil
	}

	ctx := m.ctx
	return tea.Tick(m.pollEvery, func(time.Time) tea.Msg {
		if w.Refresh(ctx) {
			return SystemAppearanceMsg{}
		}
		return systemPollMsg{}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if m.state == UIStateSaveAs {
			return m.handleSaveAsKey(msg)
		}
		return m.handleKey(msg)
	case SystemAppearanceMsg:
		m.publish(preview.AppearanceChanged{})
		return m, m.pollSystem()
	case systemPollMsg:
		return m, m.pollSystem()
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.preview.viewport, cmd = m.preview.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.state == UIStateSaveAs {
		m.saveAs, cmd = m.saveAs.Update(msg)
	} else {
		m.editor.Model, cmd = m.editor.Model.Update(msg)
	}
	return m, cmd
}

// Document returns the current document.
func (m Model) Document() document.Document {
	return document.Document{Text: m.editor.Value(), Path: m.doc.path}
}

// Modified reports whether the text differs from the last saved text.
func (m Model) Modified() bool {
	return m.editor.Value() != m.doc.saved
}

// publish runs one trigger through the synchronizer on the update loop.
func (m *Model) publish(ev preview.Event) {
	m.applyPage(m.sync.Handle(m.ctx, ev).Dark)
}

// applyPage restyles the host chrome for the published appearance.
func (m *Model) applyPage(dark bool) {
	m.dark = dark
	styles.SetTheme(styles.PaletteFor(dark))
	m.help.Styles = helpStyles()
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	// status bar and help line
	contentHeight := max(m.height-2, 3)
	innerHeight := contentHeight - 2

	previewWidth := 0
	if !m.layout.Hidden() {
		previewWidth = m.width * m.split.Position() / 100
	}
	editorWidth := m.width - previewWidth

	m.editor.SetWidth(max(editorWidth-2, 1))
	m.editor.SetHeight(max(innerHeight, 1))

	if previewWidth > 2 {
		m.preview.setSize(previewWidth-2, max(innerHeight, 1))
	}

	m.help.Width = m.width
}
