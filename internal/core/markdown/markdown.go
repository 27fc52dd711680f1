// Package markdown converts document text into an HTML fragment.
package markdown

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Code block styles, one per presentation.
const (
	CodeStyleDark  = "monokai"
	CodeStyleLight = "github"
)

// Renderer converts markdown to HTML fragments. It is safe for concurrent use.
type Renderer struct {
	dark        goldmark.Markdown
	light       goldmark.Markdown
	placeholder string
	policy      *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPlaceholder sets the text shown for an empty document.
func WithPlaceholder(text string) Option {
	return func(r *Renderer) {
		if text != "" {
			r.placeholder = text
		}
	}
}

// WithSanitizer runs every fragment through policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		r.policy = policy
	}
}

// New returns a renderer with tables, strikethrough, autolinks, task lists,
// footnotes, definition lists, smart punctuation and emoji enabled.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		dark:        newMarkdown(CodeStyleDark),
		light:       newMarkdown(CodeStyleLight),
		placeholder: Placeholder(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newMarkdown(codeStyle string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
			extension.Typographer,
			emoji.Emoji,
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// Placeholder returns the text substituted for an empty document.
func (r *Renderer) Placeholder() string {
	return r.placeholder
}

// PlaceholderFragment returns the placeholder as escaped plain text. It is
// never parsed as markdown.
func (r *Renderer) PlaceholderFragment() string {
	return `<div class="placeholder"><p>` + html.EscapeString(r.placeholder) + "</p></div>\n"
}

// Render converts text to an HTML fragment without <html> or <head>. It never
// fails: empty text yields the placeholder fragment and a conversion error
// yields the escaped source in a <pre> block.
func (r *Renderer) Render(text string, isDark bool) string {
	if text == "" {
		return r.PlaceholderFragment()
	}

	md := r.light
	if isDark {
		md = r.dark
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "<pre>" + html.EscapeString(text) + "</pre>\n"
	}

	if r.policy != nil {
		return r.policy.Sanitize(buf.String())
	}
	return buf.String()
}
