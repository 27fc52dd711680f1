package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	return &cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig(t)
	cfg.Preview.Locale = "fr_CA.UTF-8"
	cfg.Editor.Schemes = []string{"monokai"}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{name: "split too small", mutate: func(c *Config) { c.Layout.DefaultSplit = 5 }, field: "layout.default_split"},
		{name: "split too large", mutate: func(c *Config) { c.Layout.DefaultSplit = 91 }, field: "layout.default_split"},
		{name: "bad locale", mutate: func(c *Config) { c.Preview.Locale = "not a locale!" }, field: "preview.locale"},
		{name: "empty scheme id", mutate: func(c *Config) { c.Editor.Schemes = []string{"ok", " "} }, field: "editor.schemes[1]"},
		{name: "empty fallback", mutate: func(c *Config) { c.Editor.FallbackScheme = "" }, field: "editor.fallback_scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Contains(t, fieldErrs[0].Field, tt.field)
		})
	}
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs[0].Field, "config_file")
}

func TestValidateDeep_Output(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name    string
		output  string
		wantErr bool
	}{
		{name: "empty", output: "", wantErr: false},
		{name: "new file in existing dir", output: filepath.Join(dir, "preview.html"), wantErr: false},
		{name: "new dir", output: filepath.Join(dir, "new", "preview.html"), wantErr: false},
		{name: "is a directory", output: dir, wantErr: true},
		{name: "parent is a file", output: filepath.Join(file, "preview.html"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Preview.Output = tt.output

			err := cfg.ValidateDeep("")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Contains(t, fieldErrs[0].Field, "preview.output")
		})
	}
}
