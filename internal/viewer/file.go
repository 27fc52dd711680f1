package viewer

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/markview/internal/core/page"
)

// File writes every published page to a path so it can be opened in a
// browser. The base URI is injected as a <base> element.
type File struct {
	path string
}

// NewFile returns a viewer writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the output path.
func (f *File) Path() string {
	return f.path
}

// SetBackground is a no-op; the page carries its own background.
func (f *File) SetBackground(page.RGB) {}

func (f *File) Load(p page.Page) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := os.WriteFile(f.path, []byte(WithBase(p.HTML, p.BaseURI)), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

// WithBase inserts <base href> right after <head>. The page is returned
// unchanged when base is empty or the page has no head.
func WithBase(doc, base string) string {
	if base == "" {
		return doc
	}

	const head = "<head>\n"
	i := strings.Index(doc, head)
	if i < 0 {
		return doc
	}
	i += len(head)

	tag := `<base href="` + html.EscapeString(base) + `">` + "\n"
	return doc[:i] + tag + doc[i:]
}
