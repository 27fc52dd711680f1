package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/text/language"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("layout.default_split", c.Layout.DefaultSplit, splitInRange),
		criterio.Run("preview.locale", c.Preview.Locale, validLocale),
		c.validateSchemes(),
	)
}

// ValidateDeep runs Validate and adds filesystem checks for the config file and
// the preview output path. An empty configPath skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("preview.output", c.Preview.Output, outputWritable),
	)
}

func (c *Config) validateSchemes() error {
	var errs criterio.FieldErrorsBuilder
	for i, id := range c.Editor.Schemes {
		if strings.TrimSpace(id) == "" {
			errs = errs.Append(fmt.Sprintf("editor.schemes[%d]", i), fmt.Errorf("scheme id cannot be empty"))
		}
	}
	if strings.TrimSpace(c.Editor.FallbackScheme) == "" {
		errs = errs.Append("editor.fallback_scheme", fmt.Errorf("cannot be empty"))
	}
	return errs.ToError()
}

func splitInRange(pct int) error {
	if pct < 10 || pct > 90 {
		return fmt.Errorf("must be between 10 and 90, got %d", pct)
	}
	return nil
}

// validLocale accepts BCP 47 tags and POSIX locales such as de_DE.UTF-8.
func validLocale(locale string) error {
	if locale == "" || locale == "C" || locale == "POSIX" {
		return nil
	}
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if _, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err != nil {
		return fmt.Errorf("unknown locale %q", locale)
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// outputWritable validates that the output path is not a directory and that
// its parent is a directory or doesn't exist yet.
func outputWritable(path string) error {
	if path == "" {
		return nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	info, err := os.Stat(filepath.Dir(path))
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("parent exists but is not a directory")
	}
	return nil
}
