package site

import "strings"

// NavItem is one entry of the header navigation.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// BuildNav lists pages in display order, marking activeSlug. basePath is the
// relative prefix back to the site root ("" for the home page, "../" one
// level down) so the links work from a static build opened from disk.
func BuildNav(pages []Page, activeSlug, basePath string) []NavItem {
	items := make([]NavItem, 0, len(pages))
	for _, p := range pages {
		label := p.NavLabel
		if label == "" {
			label = p.Title
		}
		items = append(items, NavItem{
			Label:  label,
			Href:   pageHref(p.Slug, basePath),
			Active: p.Slug == activeSlug,
		})
	}
	return items
}

// pageHref links to a page relative to basePath.
func pageHref(slug, basePath string) string {
	if slug == "" {
		if basePath == "" {
			return "./"
		}
		return basePath
	}
	return basePath + slug + "/"
}

// basePathFor returns the relative prefix from a page's output file back to
// the root, one "../" per directory level.
func basePathFor(outputPath string) string {
	return strings.Repeat("../", strings.Count(outputPath, "/"))
}
