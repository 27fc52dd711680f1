// Package prefs persists user preferences as newline separated key=value
// records in a single file.
//
// Preference I/O never fails loudly. A missing or unreadable file reads as an
// empty set and write failures are logged and dropped, so callers always fall
// back to their own defaults.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Well-known preference keys.
const (
	KeyTheme       = "theme"
	KeyColorScheme = "color-scheme"
)

// Store reads and writes the preference file at a fixed path.
type Store struct {
	path   string
	logger zerolog.Logger
}

// New returns a store backed by the file at path.
func New(path string, logger zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// DefaultPath returns <config-root>/MarkView/preferences.ini. When the user
// config directory cannot be determined it falls back to ~/.config.
func DefaultPath() string {
	root, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, "MarkView", "preferences.ini")
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored value for key, or def when the key or the file is
// absent.
func (s *Store) Load(key, def string) string {
	if v, ok := s.read()[key]; ok {
		return v
	}
	return def
}

// All returns a copy of the persisted set.
func (s *Store) All() map[string]string {
	return s.read()
}

// ErrInvalidRecord is returned by Validate for a key or value that would not
// survive a write and read back.
var ErrInvalidRecord = errors.New("invalid preference record")

// Validate reports whether key and value can be stored as one record. Keys
// must be non-empty and free of '=' and line breaks, values free of line
// breaks. Surrounding whitespace is trimmed on read, so it is rejected too.
func Validate(key, value string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty key", ErrInvalidRecord)
	case key != strings.TrimSpace(key):
		return fmt.Errorf("%w: key %q has surrounding whitespace", ErrInvalidRecord, key)
	case strings.ContainsAny(key, "=\r\n"):
		return fmt.Errorf("%w: key %q contains '=' or a line break", ErrInvalidRecord, key)
	case strings.ContainsAny(value, "\r\n"):
		return fmt.Errorf("%w: value for %q contains a line break", ErrInvalidRecord, key)
	case value != strings.TrimSpace(value):
		return fmt.Errorf("%w: value for %q has surrounding whitespace", ErrInvalidRecord, key)
	}
	return nil
}

// Save sets key to value and rewrites the whole set. Records rejected by
// Validate are logged and dropped.
func (s *Store) Save(key, value string) {
	if err := Validate(key, value); err != nil {
		s.logger.Warn().Err(err).Msg("save preference")
		return
	}

	set := s.read()
	set[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("create preferences dir")
		return
	}

	if err := os.WriteFile(s.path, Encode(set), 0o644); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("write preferences")
		return
	}

	s.logger.Debug().Str("key", key).Str("value", value).Msg("preference saved")
}

func (s *Store) read() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("read preferences")
		}
		return map[string]string{}
	}
	return Decode(data)
}

// Decode parses key=value records. Each line is split on the first '=' and
// both halves are trimmed. Lines without '=' or with an empty key are skipped.
// The last occurrence of a key wins. Lines have no length limit.
func Decode(data []byte) map[string]string {
	set := map[string]string{}

	for line := range bytes.SplitSeq(data, []byte("\n")) {
		key, value, ok := strings.Cut(string(line), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		set[key] = strings.TrimSpace(value)
	}

	return set
}

// Encode renders the set as key=value lines sorted by key.
func Encode(set map[string]string) []byte {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(set[k])
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
