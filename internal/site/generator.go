package site

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/richmanstudio/studio/internal/logger"
	"github.com/richmanstudio/studio/internal/progress"
)

// assetsPrefix is the output subdirectory static assets are copied into.
const assetsPrefix = "assets"

// Generator writes the site as static files.
type Generator struct {
	Renderer      *Renderer
	OutputDir     string
	AssetsDir     string
	AssetPatterns []string
	Reporter      progress.Reporter
	Log           *logger.Logger
}

// Result summarises a build.
type Result struct {
	Pages  int
	Assets int
}

// Build renders every page to <slug>/index.html and writes style.css,
// app.js, search-index.json and the matching assets under OutputDir.
func (g *Generator) Build() (Result, error) {
	var res Result
	if g.Renderer == nil {
		return res, fmt.Errorf("generator has no renderer")
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	log := g.Log
	if log == nil {
		log = logger.Discard()
	}

	assets, err := g.matchAssets()
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return res, err
	}

	renderer := g.Renderer.Static()
	pages := renderer.Pages()
	reporter.Start(len(pages) + len(assets) + 3)
	defer reporter.Finish()
	step := 0

	for _, p := range pages {
		if err := g.writePage(renderer, p); err != nil {
			return res, fmt.Errorf("rendering %s: %w", p.OutputPath(), err)
		}
		step++
		reporter.Update(step, p.OutputPath())
		res.Pages++
	}

	var notFound bytes.Buffer
	if err := renderer.RenderNotFound(&notFound, ""); err != nil {
		return res, fmt.Errorf("rendering 404.html: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "404.html"), notFound.Bytes(), 0o644); err != nil {
		return res, err
	}
	step++
	reporter.Update(step, "404.html")

	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return res, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "app.js"), []byte(jsContent), 0o644); err != nil {
		return res, err
	}
	step++
	reporter.Update(step, "style.css, app.js")

	if err := WriteSearchIndex(BuildSearchIndex(renderer), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return res, fmt.Errorf("writing search index: %w", err)
	}
	step++
	reporter.Update(step, "search-index.json")

	for _, rel := range assets {
		if err := g.copyAsset(rel); err != nil {
			return res, fmt.Errorf("copying %s: %w", rel, err)
		}
		step++
		reporter.Update(step, rel)
		res.Assets++
	}

	log.Info("site built", "output", g.OutputDir, "pages", res.Pages, "assets", res.Assets)
	return res, nil
}

func (g *Generator) writePage(renderer *Renderer, p Page) error {
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(p.OutputPath()))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.RenderPage(&buf, p.Slug, basePathFor(p.OutputPath())); err != nil {
		return err
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

// matchAssets returns the slash-separated paths under AssetsDir matching any
// of AssetPatterns, deduplicated in match order. A missing AssetsDir yields
// no assets.
func (g *Generator) matchAssets() ([]string, error) {
	if g.AssetsDir == "" || len(g.AssetPatterns) == 0 {
		return nil, nil
	}
	info, err := os.Stat(g.AssetsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets path %s is not a directory", g.AssetsDir)
	}

	fsys := os.DirFS(g.AssetsDir)
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range g.AssetPatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid asset pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (g *Generator) copyAsset(rel string) error {
	data, err := fs.ReadFile(os.DirFS(g.AssetsDir), rel)
	if err != nil {
		return err
	}
	outPath := filepath.Join(g.OutputDir, assetsPrefix, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
