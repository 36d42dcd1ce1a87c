// Package preview turns editor text into a sandboxed HTML document on a
// debounced schedule.
package preview

import (
	"regexp"
	"strings"
)

// Prefix opens the document shell around user markup and hides scrollbars.
const Prefix = `<!DOCTYPE html><html><head><style>
    html { -ms-overflow-style: none; scrollbar-width: none; }
    ::-webkit-scrollbar { display: none; }
  </style></head><body>`

// Suffix closes the document shell.
const Suffix = `</body></html>`

// preamble matches a leading doctype through the first opening body tag.
// Later body tags are left in the content.
var preamble = regexp.MustCompile(`(?is)\A\s*<!DOCTYPE html>.*?<body[^>]*>`)

// Document is a complete HTML page ready for a sandboxed frame.
type Document string

func (d Document) String() string { return string(d) }

// Body returns the content between Prefix and Suffix.
func (d Document) Body() string {
	return strings.TrimSuffix(strings.TrimPrefix(string(d), Prefix), Suffix)
}

// Render wraps raw in the fixed shell after removing a leading
// doctype/html/body preamble, if any. It accepts any input.
func Render(raw string) Document {
	body := raw
	if loc := preamble.FindStringIndex(raw); loc != nil {
		body = raw[loc[1]:]
	}

	var b strings.Builder
	b.Grow(len(Prefix) + len(body) + len(Suffix))
	b.WriteString(Prefix)
	b.WriteString(body)
	b.WriteString(Suffix)
	return Document(b.String())
}
