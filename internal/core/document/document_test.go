package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Grüße\n"), 0o644))

	doc, err := Open(path)

	require.NoError(t, err)
	assert.Equal(t, "# Grüße\n", doc.Text)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "notes.md", doc.Name())
	assert.False(t, doc.Unsaved())
}

func TestOpen_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.md")
	require.NoError(t, os.WriteFile(path, []byte{'a', 0xff, 0xfe}, 0o644))

	_, err := Open(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.md"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	doc, err := Save(path, "new")

	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestSave_Failure(t *testing.T) {
	orig := Document{Text: "keep", Path: "/somewhere/orig.md"}

	got, err := Save(filepath.Join(t.TempDir(), "no", "such", "dir.md"), "new")

	require.Error(t, err)
	assert.Equal(t, Document{}, got)
	assert.Equal(t, "keep", orig.Text)
}

func TestDocument_UnsavedName(t *testing.T) {
	var d Document
	assert.True(t, d.Unsaved())
	assert.Equal(t, "untitled", d.Name())
}
