// Package preview keeps a rendered HTML page consistent with the live document
// text and the appearance preference.
//
// Every trigger is handled synchronously and to completion: the document is
// snapshotted, the appearance resolved against the live system signal, the
// page recomputed from scratch and published to the viewer. Nothing is
// debounced or coalesced.
package preview

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/markview/internal/core/baseuri"
	"github.com/hay-kot/markview/internal/core/document"
	"github.com/hay-kot/markview/internal/core/logging"
	"github.com/hay-kot/markview/internal/core/markdown"
	"github.com/hay-kot/markview/internal/core/page"
	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/theme"
)

// Source returns a snapshot of the document being edited.
type Source interface {
	Snapshot() document.Document
}

// SourceFunc adapts a function to Source.
type SourceFunc func() document.Document

func (f SourceFunc) Snapshot() document.Document { return f() }

// Preferences reads persisted preferences.
type Preferences interface {
	Load(key, def string) string
}

// Viewer displays published pages. Each Load replaces the previous page.
type Viewer interface {
	SetBackground(bg page.RGB)
	Load(p page.Page) error
}

// Deps holds the collaborators of a Synchronizer.
type Deps struct {
	Renderer *markdown.Renderer
	Source   Source
	Prefs    Preferences
	System   theme.System
	Viewer   Viewer
	Logger   zerolog.Logger
}

// Synchronizer recomputes and publishes the preview on every trigger.
type Synchronizer struct {
	renderer *markdown.Renderer
	source   Source
	prefs    Preferences
	system   theme.System
	viewer   Viewer
	logger   zerolog.Logger
}

// New creates a Synchronizer.
func New(d Deps) *Synchronizer {
	return &Synchronizer{
		renderer: d.Renderer,
		source:   d.Source,
		prefs:    d.Prefs,
		system:   d.System,
		viewer:   d.Viewer,
		logger:   d.Logger,
	}
}

// Recompute builds the page for doc. It depends only on its arguments and the
// process working directory, which anchors unsaved documents.
func Recompute(r *markdown.Renderer, doc document.Document, isDark bool) page.Page {
	source := doc.Text
	if source == "" {
		source = r.Placeholder()
	}

	base, _ := baseuri.Resolve(doc.Path)

	return page.Page{
		HTML:       page.Assemble(r.Render(doc.Text, isDark), isDark),
		BaseURI:    base,
		Background: page.BackgroundFor(isDark),
		Dark:       isDark,
		Source:     source,
	}
}

// Start publishes the initial page. For a new document this is the
// placeholder.
func (s *Synchronizer) Start(ctx context.Context) page.Page {
	return s.Handle(ctx, AppearanceChanged{})
}

// IsDark resolves the stored appearance mode against the live system signal.
func (s *Synchronizer) IsDark() bool {
	return theme.ResolveValue(s.prefs.Load(prefs.KeyTheme, theme.ValueDefault), s.system)
}

// Handle processes one trigger and returns the published page.
func (s *Synchronizer) Handle(ctx context.Context, ev Event) page.Page {
	start := time.Now()

	doc := s.source.Snapshot()
	if tc, ok := ev.(TextChanged); ok {
		doc.Text = tc.Text
	}

	ctx = logging.WithTrigger(ctx, ev.Name())
	if doc.Path != "" {
		ctx = logging.WithDocument(ctx, doc.Path)
	}

	p := Recompute(s.renderer, doc, s.IsDark())

	s.viewer.SetBackground(p.Background)
	if err := s.viewer.Load(p); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("publish preview")
		return p
	}

	s.logger.Debug().
		Ctx(ctx).
		Bool("dark", p.Dark).
		Str("base", p.BaseURI).
		Int("bytes", len(p.HTML)).
		Dur("took", time.Since(start)).
		Msg("preview published")

	return p
}
