package site

import (
	"encoding/json"
	"os"
)

// maxSearchContent caps the indexed text per page.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page of the site.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex extracts title, summary and plain text for every page.
func BuildSearchIndex(r *Renderer) []SearchEntry {
	entries := make([]SearchEntry, 0, len(r.Pages()))
	for _, p := range r.Pages() {
		content := r.PlainText(p.Source)
		if runes := []rune(content); len(runes) > maxSearchContent {
			content = string(runes[:maxSearchContent])
		}
		summary := p.Description
		if summary == "" {
			summary = firstSentence(content)
		}
		entries = append(entries, SearchEntry{
			Path:    p.URL(),
			Title:   p.Title,
			Summary: summary,
			Content: content,
		})
	}
	return entries
}

// firstSentence returns text up to and including the first full stop.
func firstSentence(s string) string {
	for i, r := range s {
		if r == '.' || r == '!' || r == '?' {
			return s[:i+1]
		}
	}
	return s
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
