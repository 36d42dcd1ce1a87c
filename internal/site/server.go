package site

import (
	"bytes"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/richmanstudio/studio/internal/httpkit"
	"github.com/richmanstudio/studio/internal/logger"
)

// Handler serves the site pages dynamically.
type Handler struct {
	renderer  *Renderer
	assetsDir string
	log       *logger.Logger
}

// NewHandler creates a Handler. assetsDir may be empty to serve no assets.
func NewHandler(renderer *Renderer, assetsDir string, log *logger.Logger) *Handler {
	return &Handler{renderer: renderer, assetsDir: assetsDir, log: log}
}

// RegisterRoutes mounts pages, generated files and assets on r. Register
// API routes before calling it; "/{slug}" matches any single segment.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/style.css", h.serveStatic("text/css; charset=utf-8", cssContent))
	r.Get("/app.js", h.serveStatic("text/javascript; charset=utf-8", jsContent))
	r.Get("/search-index.json", h.handleSearchIndex)

	if h.assetsDir != "" {
		if info, err := os.Stat(h.assetsDir); err == nil && info.IsDir() {
			fs := http.StripPrefix("/"+assetsPrefix+"/", http.FileServer(http.Dir(h.assetsDir)))
			r.Handle("/"+assetsPrefix+"/*", fs)
		}
	}

	r.Get("/", h.handlePage)
	r.Get("/{slug}", h.redirectSlash)
	r.Get("/{slug}/", h.handlePage)
}

// NotFound renders the 404 page. Use it as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeNotFound(w, r)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, ok := FindPage(h.renderer.Pages(), slug); !ok {
		h.writeNotFound(w, r)
		return
	}

	basePath := ""
	if slug != "" {
		basePath = "../"
	}
	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, slug, basePath); err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// redirectSlash sends /about to /about/ so relative links resolve.
func (h *Handler) redirectSlash(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, ok := FindPage(h.renderer.Pages(), slug); !ok || slug == "" {
		h.writeNotFound(w, r)
		return
	}
	http.Redirect(w, r, "/"+slug+"/", http.StatusMovedPermanently)
}

func (h *Handler) writeNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		httpkit.Error(w, http.StatusNotFound, "not found", nil)
		return
	}
	var buf bytes.Buffer
	if err := h.renderer.RenderNotFound(&buf, "/"); err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	httpkit.JSON(w, http.StatusOK, BuildSearchIndex(h.renderer))
}

func (h *Handler) serveStatic(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write([]byte(body))
	}
}
