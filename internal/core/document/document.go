// Package document reads and writes UTF-8 text documents.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a file does not contain valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Document is the text being edited and its identity. An empty Path means the
// document has never been saved.
type Document struct {
	Text string
	Path string
}

// Unsaved reports whether the document has no identity.
func (d Document) Unsaved() bool {
	return d.Path == ""
}

// Name returns the file name, or "untitled" for unsaved documents.
func (d Document) Name() string {
	if d.Path == "" {
		return "untitled"
	}
	return filepath.Base(d.Path)
}

// Open reads the whole file at path. The returned document's Path is absolute.
func Open(path string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Document{}, fmt.Errorf("resolve path: %w", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}

	if !utf8.Valid(data) {
		return Document{}, fmt.Errorf("read document %s: %w", abs, ErrInvalidUTF8)
	}

	return Document{Text: string(data), Path: abs}, nil
}

// Save overwrites the file at path with text. The document is returned with
// its identity set to the absolute path; on error the caller's copy is left
// untouched.
func Save(path, text string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Document{}, fmt.Errorf("resolve path: %w", err)
	}

	if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
		return Document{}, fmt.Errorf("write document: %w", err)
	}

	return Document{Text: text, Path: abs}, nil
}
