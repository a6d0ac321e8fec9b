// Package markdown renders the site's markdown: static pages with
// frontmatter, and the short texts users post with their requests.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Document is a rendered page plus the frontmatter fields the site reads.
type Document struct {
	HTML    []byte
	Title   string
	Summary string
	Meta    map[string]any
}

// Parser converts markdown to HTML. Raw HTML in the source is escaped in
// both modes.
type Parser struct {
	md goldmark.Markdown
}

// NewPageParser is for the bundled pages: frontmatter and heading anchors.
func NewPageParser() *Parser {
	return &Parser{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
		),
	)}
}

// NewTextParser is for user-posted text. Line breaks are kept as typed and
// bare URLs become links.
func NewTextParser() *Parser {
	return &Parser{md: goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)}
}

// Render converts source to HTML.
func (p *Parser) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Document renders source and decodes its frontmatter. Broken frontmatter
// leaves Meta empty rather than failing the page.
func (p *Parser) Document(source []byte) (*Document, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert(source, &buf, parser.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	doc := &Document{HTML: buf.Bytes(), Meta: map[string]any{}}
	data := frontmatter.Get(ctx)
	if data != nil {
		err = data.Decode(&doc.Meta)
		if err != nil {
			doc.Meta = map[string]any{}
		}
	}
	doc.Title, _ = doc.Meta["title"].(string)
	doc.Summary, _ = doc.Meta["summary"].(string)

	return doc, nil
}
