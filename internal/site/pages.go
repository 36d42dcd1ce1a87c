package site

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var contentFS embed.FS

// ContentFS returns the built-in page sources.
func ContentFS() fs.FS {
	sub, err := fs.Sub(contentFS, "content")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is one markdown page of the site with its header block decoded.
type Page struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	NavLabel    string   `yaml:"nav"`
	Order       int      `yaml:"order"`
	Description string   `yaml:"description"`
	Sections    []string `yaml:"sections"`

	Source []byte `yaml:"-"` // markdown after the header block
}

// OutputPath is where the page lands in a static build.
func (p Page) OutputPath() string {
	if p.Slug == "" {
		return "index.html"
	}
	return p.Slug + "/index.html"
}

// URL is the absolute path the page is served under.
func (p Page) URL() string {
	if p.Slug == "" {
		return "/"
	}
	return "/" + p.Slug + "/"
}

// Has reports whether the page includes the named widget section.
func (p Page) Has(section string) bool {
	for _, s := range p.Sections {
		if s == section {
			return true
		}
	}
	return false
}

// LoadPages reads every .md file at the root of fsys, ordered by their
// order field.
func LoadPages(fsys fs.FS) ([]Page, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no pages found")
	}

	pages := make([]Page, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		p, err := parsePage(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if p.Title == "" {
			p.Title = strings.TrimSuffix(path.Base(name), ".md")
		}
		if prev, ok := seen[p.Slug]; ok {
			return nil, fmt.Errorf("%s and %s share slug %q", prev, name, p.Slug)
		}
		seen[p.Slug] = name
		pages = append(pages, p)
	}

	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Order != pages[j].Order {
			return pages[i].Order < pages[j].Order
		}
		return pages[i].Slug < pages[j].Slug
	})
	return pages, nil
}

var frontMatterDelim = []byte("---")

// parsePage splits an optional "---" delimited YAML header from the body.
func parsePage(data []byte) (Page, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	var p Page

	rest, ok := bytes.CutPrefix(data, frontMatterDelim)
	if !ok {
		p.Source = data
		return p, nil
	}
	rest = bytes.TrimLeft(rest, "\r")
	if !bytes.HasPrefix(rest, []byte("\n")) {
		p.Source = data
		return p, nil
	}

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return p, fmt.Errorf("unterminated header block")
	}
	if err := yaml.Unmarshal(rest[:end], &p); err != nil {
		return p, fmt.Errorf("decoding header: %w", err)
	}

	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	p.Source = body
	return p, nil
}

// FindPage returns the page with the given slug.
func FindPage(pages []Page, slug string) (Page, bool) {
	for _, p := range pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}
