package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/markview/internal/core/page"
)

func TestMailbox_ReplacesContent(t *testing.T) {
	m := NewMailbox()

	_, ok := m.Latest()
	assert.False(t, ok)

	require.NoError(t, m.Load(page.Page{HTML: "first"}))
	require.NoError(t, m.Load(page.Page{HTML: "second"}))
	m.SetBackground(page.DarkBackground)

	got, ok := m.Latest()
	require.True(t, ok)
	assert.Equal(t, "second", got.HTML)
	assert.Equal(t, 2, m.Loads())
	assert.Equal(t, page.DarkBackground, m.Background())
}

func TestFile_WritesPageWithBase(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "preview.html")
	f := NewFile(out)

	p := page.Page{
		HTML:    page.Assemble("<p>hi</p>", false),
		BaseURI: "file:///docs/",
	}
	require.NoError(t, f.Load(p))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<head>`+"\n"+`<base href="file:///docs/">`)
	assert.Contains(t, string(data), "<p>hi</p>")
}

func TestWithBase(t *testing.T) {
	doc := "<html>\n<head>\n<title>x</title>"

	assert.Equal(t, doc, WithBase(doc, ""))
	assert.Equal(t, "<p>no head</p>", WithBase("<p>no head</p>", "file:///a/"))
	assert.Equal(t,
		"<html>\n<head>\n<base href=\"file:///a%20b/\">\n<title>x</title>",
		WithBase(doc, "file:///a%20b/"),
	)
}

type failingViewer struct{ loads int }

func (f *failingViewer) SetBackground(page.RGB) {}

func (f *failingViewer) Load(page.Page) error {
	f.loads++
	return errors.New("boom")
}

func TestTee_FeedsAllViewers(t *testing.T) {
	bad := &failingViewer{}
	good := NewMailbox()

	tee := Tee{bad, good}
	tee.SetBackground(page.LightBackground)
	err := tee.Load(page.Page{HTML: "x"})

	require.Error(t, err)
	assert.Equal(t, 1, bad.loads)
	assert.Equal(t, 1, good.Loads())
	assert.Equal(t, page.LightBackground, good.Background())
}
