package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed content/*.md
var content embed.FS

var ErrPageNotFound = errors.New("page not found")

type Page struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Pages holds the embedded markdown pages rendered once at startup.
type Pages struct {
	bySlug map[string]Page
}

func LoadPages() (*Pages, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	files, err := fs.Glob(content, "content/*.md")
	if err != nil {
		return nil, err
	}

	pages := &Pages{bySlug: make(map[string]Page, len(files))}

	for _, name := range files {
		src, err := content.ReadFile(name)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", name, err)
		}

		slug := strings.TrimSuffix(path.Base(name), ".md")
		pages.bySlug[slug] = Page{
			Slug:  slug,
			Title: title(src),
			HTML:  buf.String(),
		}
	}

	return pages, nil
}

func (p *Pages) Get(slug string) (Page, error) {
	page, ok := p.bySlug[slug]
	if !ok {
		return Page{}, ErrPageNotFound
	}
	return page, nil
}

// title is the text of the first level-one heading.
func title(src []byte) string {
	for _, line := range strings.Split(string(src), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
