package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingReporter struct {
	total    int
	messages []string
	finished bool
}

func (r *recordingReporter) Start(total int)              { r.total = total }
func (r *recordingReporter) Update(_ int, message string) { r.messages = append(r.messages, message) }
func (r *recordingReporter) Finish()                      { r.finished = true }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGeneratorBuild(t *testing.T) {
	assets := t.TempDir()
	writeFile(t, filepath.Join(assets, "img", "logo.png"), "png")
	writeFile(t, filepath.Join(assets, "img", "deep", "hero.jpg"), "jpg")
	writeFile(t, filepath.Join(assets, "fonts", "inter.woff2"), "font")
	writeFile(t, filepath.Join(assets, "notes.txt"), "skip me")

	out := filepath.Join(t.TempDir(), "public")
	rep := &recordingReporter{}
	g := &Generator{
		Renderer:      newTestRenderer(t),
		OutputDir:     out,
		AssetsDir:     assets,
		AssetPatterns: []string{"**/*.png", "**/*.jpg", "fonts/*", "img/*.png"},
		Reporter:      rep,
	}

	res, err := g.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Pages != 5 {
		t.Errorf("pages = %d, want 5", res.Pages)
	}
	if res.Assets != 3 {
		t.Errorf("assets = %d, want 3 (duplicates collapse)", res.Assets)
	}

	for _, rel := range []string{
		"index.html",
		"about/index.html",
		"services/index.html",
		"portfolio/index.html",
		"contact/index.html",
		"404.html",
		"style.css",
		"app.js",
		"search-index.json",
		"assets/img/logo.png",
		"assets/img/deep/hero.jpg",
		"assets/fonts/inter.woff2",
	} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "assets", "notes.txt")); !os.IsNotExist(err) {
		t.Error("notes.txt should not be copied")
	}

	about, err := os.ReadFile(filepath.Join(out, "about", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(about), `href="../style.css"`) {
		t.Error("about page should reference ../style.css")
	}

	// The built site has no server: nothing may point at server-only paths.
	home, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`data-mode="static"`, `srcdoc="&lt;!DOCTYPE html&gt;`, `data-rate="2000"`} {
		if !strings.Contains(string(home), want) {
			t.Errorf("index.html missing %q", want)
		}
	}
	if strings.Contains(string(home), `src="/preview/frame"`) {
		t.Error("index.html links the server-only preview frame")
	}
	contactPage, err := os.ReadFile(filepath.Join(out, "contact", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(contactPage), `id="order-form"`) {
		t.Error("static contact page should not include the API-backed order form")
	}

	data, err := os.ReadFile(filepath.Join(out, "search-index.json"))
	if err != nil {
		t.Fatal(err)
	}
	var entries []SearchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("search index is not valid JSON: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("search entries = %d, want 5", len(entries))
	}

	if rep.total != 5+3+3 {
		t.Errorf("reporter total = %d, want 11", rep.total)
	}
	if len(rep.messages) != rep.total {
		t.Errorf("reporter updates = %d, want %d", len(rep.messages), rep.total)
	}
	if !rep.finished {
		t.Error("reporter not finished")
	}
}

func TestGeneratorMissingAssetsDir(t *testing.T) {
	g := &Generator{
		Renderer:      newTestRenderer(t),
		OutputDir:     t.TempDir(),
		AssetsDir:     filepath.Join(t.TempDir(), "nope"),
		AssetPatterns: []string{"**/*"},
	}
	res, err := g.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Assets != 0 {
		t.Errorf("assets = %d, want 0", res.Assets)
	}
}

func TestGeneratorInvalidPattern(t *testing.T) {
	g := &Generator{
		Renderer:      newTestRenderer(t),
		OutputDir:     t.TempDir(),
		AssetsDir:     t.TempDir(),
		AssetPatterns: []string{"[unclosed"},
	}
	if _, err := g.Build(); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestGeneratorNoRenderer(t *testing.T) {
	g := &Generator{OutputDir: t.TempDir()}
	if _, err := g.Build(); err == nil {
		t.Fatal("expected error without renderer")
	}
}
