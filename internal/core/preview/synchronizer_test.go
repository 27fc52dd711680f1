package preview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/markview/internal/core/document"
	"github.com/hay-kot/markview/internal/core/markdown"
	"github.com/hay-kot/markview/internal/core/page"
	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/theme"
	"github.com/hay-kot/markview/internal/viewer"
)

type mapPrefs map[string]string

func (m mapPrefs) Load(key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

type fixture struct {
	doc    document.Document
	prefs  mapPrefs
	system *theme.StaticSystem
	box    *viewer.Mailbox
	sync   *Synchronizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		prefs:  mapPrefs{},
		system: &theme.StaticSystem{},
		box:    viewer.NewMailbox(),
	}
	f.sync = New(Deps{
		Renderer: markdown.New(markdown.WithPlaceholder("Nothing yet")),
		Source:   SourceFunc(func() document.Document { return f.doc }),
		Prefs:    f.prefs,
		System:   f.system,
		Viewer:   f.box,
		Logger:   zerolog.Nop(),
	})
	return f
}

func TestStart_PublishesPlaceholder(t *testing.T) {
	f := newFixture(t)

	p := f.sync.Start(context.Background())

	got, ok := f.box.Latest()
	require.True(t, ok)
	assert.Equal(t, p, got)
	assert.Contains(t, got.HTML, `class="placeholder"`)
	assert.Contains(t, got.HTML, "Nothing yet")
	assert.Equal(t, "Nothing yet", got.Source)
}

func TestHandle_TextChangedUsesEventText(t *testing.T) {
	f := newFixture(t)
	f.doc = document.Document{Text: "stale", Path: "/a/b/doc.md"}

	f.sync.Handle(context.Background(), TextChanged{Text: "# Fresh"})

	got, _ := f.box.Latest()
	assert.Contains(t, got.HTML, `<h1 id="fresh">Fresh</h1>`)
	assert.NotContains(t, got.HTML, "stale")
	assert.Equal(t, "file:///a/b/", got.BaseURI)
	assert.Equal(t, "# Fresh", got.Source)
}

func TestHandle_AppearanceChangedReadsLiveState(t *testing.T) {
	f := newFixture(t)
	f.doc = document.Document{Text: "hello"}

	f.sync.Handle(context.Background(), TextChanged{Text: "hello"})
	first, _ := f.box.Latest()
	assert.False(t, first.Dark)
	assert.Equal(t, page.LightBackground, f.box.Background())

	f.prefs[prefs.KeyTheme] = theme.ValueForceDark
	f.doc.Text = "hello again"
	f.sync.Handle(context.Background(), AppearanceChanged{})

	second, _ := f.box.Latest()
	assert.True(t, second.Dark)
	assert.Contains(t, second.HTML, "hello again")
	assert.Contains(t, second.HTML, page.StyleSheet(true))
	assert.Equal(t, page.DarkBackground, f.box.Background())
	assert.Equal(t, theme.ModeForceDark, f.system.Applied)
}

func TestHandle_SystemSignalFollowedInDefaultMode(t *testing.T) {
	f := newFixture(t)

	f.system.Dark = true
	assert.True(t, f.sync.Handle(context.Background(), AppearanceChanged{}).Dark)

	f.system.Dark = false
	assert.False(t, f.sync.Handle(context.Background(), AppearanceChanged{}).Dark)

	f.prefs[prefs.KeyTheme] = theme.ValueForceLight
	f.system.Dark = true
	assert.False(t, f.sync.Handle(context.Background(), AppearanceChanged{}).Dark)
}

func TestHandle_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.doc = document.Document{Text: "# Same\n\n- [ ] task", Path: "/x/y.md"}

	a := f.sync.Handle(context.Background(), AppearanceChanged{})
	b := f.sync.Handle(context.Background(), AppearanceChanged{})
	c := f.sync.Handle(context.Background(), TextChanged{Text: f.doc.Text})

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Equal(t, 3, f.box.Loads())
}

type brokenViewer struct{ bg page.RGB }

func (b *brokenViewer) SetBackground(bg page.RGB) { b.bg = bg }
func (b *brokenViewer) Load(page.Page) error      { return errors.New("disk full") }

func TestHandle_ViewerErrorIsNotFatal(t *testing.T) {
	v := &brokenViewer{}
	s := New(Deps{
		Renderer: markdown.New(),
		Source:   SourceFunc(func() document.Document { return document.Document{} }),
		Prefs:    mapPrefs{prefs.KeyTheme: theme.ValueForceDark},
		System:   &theme.StaticSystem{},
		Viewer:   v,
		Logger:   zerolog.Nop(),
	})

	p := s.Handle(context.Background(), AppearanceChanged{})

	assert.True(t, strings.HasPrefix(p.HTML, "<!DOCTYPE html>"))
	assert.Equal(t, page.DarkBackground, v.bg)
}

func TestRecompute_Pure(t *testing.T) {
	r := markdown.New()
	doc := document.Document{Text: "*x*", Path: "/a/b/doc.md"}

	assert.Equal(t, Recompute(r, doc, true), Recompute(r, doc, true))
	assert.NotEqual(t, Recompute(r, doc, true).HTML, Recompute(r, doc, false).HTML)
}
