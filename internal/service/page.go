package service

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skillswap/skillswap/internal/markdown"
)

var ErrPageNotFound = errors.New("page not found")

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

type Page struct {
	Title   string
	Slug    string
	Summary string
	Content string
}

// PageService serves the static markdown pages under pages/ in its filesystem.
type PageService struct {
	fsys   fs.FS
	parser *markdown.Parser
}

func NewPageService(fsys fs.FS) *PageService {
	return &PageService{
		fsys:   fsys,
		parser: markdown.NewPageParser(),
	}
}

// Page reads and renders the page on every call so edits on disk show up
// without a restart.
func (s *PageService) Page(slug string) (*Page, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrPageNotFound
	}

	content, err := fs.ReadFile(s.fsys, path.Join("pages", slug+".md"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", slug, err)
	}

	doc, err := s.parser.Document(content)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", slug, err)
	}

	title := doc.Title
	if title == "" {
		title = titleFromSlug(slug)
	}

	return &Page{
		Title:   title,
		Slug:    slug,
		Summary: doc.Summary,
		Content: string(doc.HTML),
	}, nil
}

func titleFromSlug(slug string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	caser := cases.Title(language.English)
	for i, word := range words {
		words[i] = caser.String(word)
	}
	return strings.Join(words, " ")
}
