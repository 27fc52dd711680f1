package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "MarkView", "preferences.ini"), zerolog.Nop())
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, "default", s.Load(KeyTheme, "default"))
	assert.Equal(t, "Adwaita-dark", s.Load(KeyColorScheme, "Adwaita-dark"))
	assert.Empty(t, s.All())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		prior string
		key   string
		value string
	}{
		{name: "empty file", prior: "", key: "theme", value: "force-dark"},
		{name: "overwrite existing", prior: "theme=force-light\n", key: "theme", value: "default"},
		{name: "malformed lines", prior: "garbage\n=novalue\ntheme=x\n", key: "color-scheme", value: "Kate"},
		{name: "value with spaces", prior: "", key: "note", value: "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if tt.prior != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
				require.NoError(t, os.WriteFile(s.Path(), []byte(tt.prior), 0o644))
			}

			s.Save(tt.key, tt.value)

			assert.Equal(t, tt.value, s.Load(tt.key, "fallback"))
		})
	}
}

func TestSave_KeepsOtherKeysAndDeduplicates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("theme=a\ncolor-scheme=Kate\ntheme=b\n"), 0o644))

	s.Save(KeyTheme, "force-dark")

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "color-scheme=Kate\ntheme=force-dark\n", string(data))
}

func TestLoad_Scenario(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("theme=force-light\ncolor-scheme=Kate"), 0o644))

	assert.Equal(t, "force-light", s.Load(KeyTheme, "default"))
	assert.Equal(t, "Kate", s.Load(KeyColorScheme, "Adwaita-dark"))
}

func TestSave_UnwritableLocationIsSilent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// parent "directory" is a regular file, so MkdirAll fails
	s := New(filepath.Join(blocker, "MarkView", "preferences.ini"), zerolog.Nop())

	assert.NotPanics(t, func() { s.Save(KeyTheme, "force-dark") })
	assert.Equal(t, "default", s.Load(KeyTheme, "default"))
}

func TestDecode(t *testing.T) {
	got := Decode([]byte("  theme =  force-dark \nno-equals\n\nurl=a=b\ntheme=force-light\r\n"))

	assert.Equal(t, map[string]string{
		"theme": "force-light",
		"url":   "a=b",
	}, got)
}

func TestLoad_LongLineDoesNotHideLaterKeys(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))

	long := "note=" + strings.Repeat("x", 70*1024) + "\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(long+"theme=force-light\ncolor-scheme=Kate\n"), 0o644))

	assert.Equal(t, "force-light", s.Load(KeyTheme, "default"))

	s.Save("other", "v")

	assert.Equal(t, "Kate", s.Load(KeyColorScheme, "fallback"))
	assert.Equal(t, strings.Repeat("x", 70*1024), s.Load("note", ""))
	assert.Equal(t, "v", s.Load("other", ""))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "plain", key: "theme", value: "force-dark"},
		{name: "value with equals", key: "url", value: "a=b"},
		{name: "value with inner spaces", key: "note", value: "a b c"},
		{name: "empty value", key: "theme", value: ""},
		{name: "empty key", key: "", value: "x", wantErr: true},
		{name: "key with equals", key: "a=b", value: "x", wantErr: true},
		{name: "key with newline", key: "a\nb", value: "x", wantErr: true},
		{name: "key with padding", key: " theme", value: "x", wantErr: true},
		{name: "value with newline", key: "x", value: "1\ntheme=force-dark", wantErr: true},
		{name: "value with carriage return", key: "x", value: "1\r", wantErr: true},
		{name: "value with padding", key: "x", value: "v ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.key, tt.value)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSave_RejectsRecordThatWouldInjectKeys(t *testing.T) {
	s := newTestStore(t)

	s.Save(KeyTheme, "force-light")
	s.Save("x", "1\ntheme=force-dark")

	assert.Equal(t, "force-light", s.Load(KeyTheme, "default"))
	assert.Equal(t, "missing", s.Load("x", "missing"))
}
