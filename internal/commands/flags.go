package commands

import (
	"os"
	"path/filepath"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hay-kot/markview/internal/core/config"
	"github.com/hay-kot/markview/internal/core/markdown"
	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/theme"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	PrefsPath  string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Prefs is the preference store opened in the Before hook
	Prefs *prefs.Store
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "markview", "config.yaml")
}

// Renderer builds the markdown renderer described by the config.
func (f *Flags) Renderer() *markdown.Renderer {
	cfg := f.Config

	placeholder := cfg.Preview.Placeholder
	if placeholder == "" {
		locale := cfg.Preview.Locale
		if locale == "" {
			locale = markdown.LocaleFromEnv()
		}
		placeholder = markdown.Placeholder(locale)
	}

	opts := []markdown.Option{markdown.WithPlaceholder(placeholder)}
	if cfg.Preview.Sanitize {
		policy := bluemonday.UGCPolicy()
		// highlighted code carries inline colours
		policy.AllowAttrs("style").OnElements("pre", "code", "span")
		opts = append(opts, markdown.WithSanitizer(policy))
	}

	return markdown.New(opts...)
}

// Schemes returns the scheme resolver described by the config.
func (f *Flags) Schemes() theme.SchemeResolver {
	known := f.Config.Editor.Schemes
	if len(known) == 0 {
		known = theme.KnownSchemes
	}
	return theme.NewSchemeResolver(known, f.Config.Editor.FallbackScheme)
}
