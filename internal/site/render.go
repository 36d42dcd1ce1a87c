package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/richmanstudio/studio/internal/preview"
	"github.com/richmanstudio/studio/internal/quote"
)

// Info is the studio's public identity shown in the header and footer.
type Info struct {
	Name    string
	BaseURL string
	Email   string
	Phone   string
}

// Options configures a Renderer.
type Options struct {
	Info        Info
	Pages       []Page
	Data        Data
	Catalog     quote.Catalog
	PerPageRate decimal.Decimal
	Currency    string
}

// InitialPages is the page count the calculator opens with.
const InitialPages = 3

// Renderer turns pages into complete HTML documents.
type Renderer struct {
	opts   Options
	md     goldmark.Markdown
	tmpl   *template.Template
	static bool
}

// pageData holds the data passed to the layout template for each page.
type pageData struct {
	Info        Info
	Page        Page
	Nav         []NavItem
	Content     template.HTML
	BasePath    string
	Data        Data
	Catalog     quote.Catalog
	PerPageRate decimal.Decimal
	MinPages    int
	MaxPages    int
	MaxTotal    decimal.Decimal
	Selection   quote.Selection
	Quote       *quote.Quote
	Sample      string
	SampleDoc   string
	Prefix      string
	Suffix      string
	DelayMS     int64
	Currency    string
	Static      bool
	Year        int
}

// NewRenderer parses the layout and prepares the markdown pipeline.
func NewRenderer(opts Options) (*Renderer, error) {
	if len(opts.Pages) == 0 {
		return nil, fmt.Errorf("renderer needs at least one page")
	}
	if opts.Currency == "" {
		opts.Currency = "₽"
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	currency := opts.Currency
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"price": func(d decimal.Decimal) string { return quote.FormatPrice(d, currency) },
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	if _, err := tmpl.New("notfound").Parse(notFoundTemplate); err != nil {
		return nil, fmt.Errorf("parsing not found template: %w", err)
	}

	return &Renderer{opts: opts, md: md, tmpl: tmpl}, nil
}

// Static returns a renderer for output without a server behind it: the
// calculator and the preview run in the browser and the forms fall back
// to email.
func (r *Renderer) Static() *Renderer {
	cp := *r
	cp.static = true
	return &cp
}

// Pages returns the pages in navigation order.
func (r *Renderer) Pages() []Page {
	return r.opts.Pages
}

// RenderPage writes the complete document for slug. basePath is the
// relative prefix to the site root.
func (r *Renderer) RenderPage(w io.Writer, slug, basePath string) error {
	p, ok := FindPage(r.opts.Pages, slug)
	if !ok {
		return fmt.Errorf("unknown page %q", slug)
	}

	var htmlBuf bytes.Buffer
	if err := r.md.Convert(p.Source, &htmlBuf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	return r.tmpl.ExecuteTemplate(w, "page", r.data(p, basePath, template.HTML(htmlBuf.String())))
}

// RenderNotFound writes the 404 document.
func (r *Renderer) RenderNotFound(w io.Writer, basePath string) error {
	p := Page{Slug: "404", Title: "Страница не найдена"}
	return r.tmpl.ExecuteTemplate(w, "notfound", r.data(p, basePath, ""))
}

func (r *Renderer) data(p Page, basePath string, content template.HTML) pageData {
	sel, q := r.initialQuote()
	return pageData{
		Info:        r.opts.Info,
		Page:        p,
		Nav:         BuildNav(r.opts.Pages, p.Slug, basePath),
		Content:     content,
		BasePath:    basePath,
		Data:        r.opts.Data,
		Catalog:     r.opts.Catalog,
		PerPageRate: r.opts.PerPageRate,
		MinPages:    quote.MinPages,
		MaxPages:    quote.MaxPages,
		MaxTotal:    quote.MaxPossibleTotal(r.opts.Catalog, r.opts.PerPageRate),
		Selection:   sel,
		Quote:       q,
		Sample:      preview.SampleHTML(),
		SampleDoc:   preview.Render(preview.SampleHTML()).String(),
		Prefix:      preview.Prefix,
		Suffix:      preview.Suffix,
		DelayMS:     preview.DefaultDelay.Milliseconds(),
		Currency:    r.opts.Currency,
		Static:      r.static,
		Year:        time.Now().Year(),
	}
}

// initialQuote prices the calculator's starting state: the first site type
// at InitialPages. q is nil when the catalog cannot price it.
func (r *Renderer) initialQuote() (quote.Selection, *quote.Quote) {
	if len(r.opts.Catalog.SiteTypes) == 0 {
		return quote.Selection{PageCount: InitialPages}, nil
	}
	sel := quote.NewSelection(r.opts.Catalog.SiteTypes[0].ID, InitialPages)
	q, err := quote.ComputeQuote(sel, r.opts.Catalog, r.opts.PerPageRate)
	if err != nil {
		return sel, nil
	}
	return sel, &q
}

// PlainText returns the readable text of a markdown source, headings and
// paragraphs separated by single spaces.
func (r *Renderer) PlainText(src []byte) string {
	doc := r.md.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
