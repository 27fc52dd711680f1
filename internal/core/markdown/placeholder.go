package markdown

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

var placeholderTags = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
}

var placeholderText = []string{
	"Start typing Markdown in the editor to see a live preview here.",
	"Beginnen Sie im Editor mit Markdown, um hier eine Live-Vorschau zu sehen.",
	"Commencez à écrire du Markdown dans l'éditeur pour voir un aperçu en direct ici.",
	"Empieza a escribir Markdown en el editor para ver aquí una vista previa en vivo.",
}

var placeholderMatcher = language.NewMatcher(placeholderTags)

// Placeholder returns the placeholder text for locale, which may be a BCP 47
// tag or a POSIX locale such as de_DE.UTF-8. An empty locale is read from the
// environment. Unsupported locales get English.
func Placeholder(locale string) string {
	if locale == "" {
		locale = LocaleFromEnv()
	}
	_, idx := language.MatchStrings(placeholderMatcher, normalizeLocale(locale))
	return placeholderText[idx]
}

// LocaleFromEnv returns the first non-empty of LC_ALL, LC_MESSAGES and LANG.
func LocaleFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func normalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}
