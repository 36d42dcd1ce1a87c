package site

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/richmanstudio/studio/internal/logger"
)

func newTestRouter(t *testing.T, assetsDir string) http.Handler {
	t.Helper()
	h := NewHandler(newTestRenderer(t), assetsDir, logger.Discard())
	r := chi.NewRouter()
	r.NotFound(h.NotFound)
	h.RegisterRoutes(r)
	return r
}

func TestHandlerPages(t *testing.T) {
	assets := t.TempDir()
	if err := os.WriteFile(filepath.Join(assets, "logo.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	router := newTestRouter(t, assets)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
		wantType   string
	}{
		{"home", "/", http.StatusOK, `id="calculator"`, "text/html"},
		{"about", "/about/", http.StatusOK, "Richman Studio", "text/html"},
		{"contact", "/contact/", http.StatusOK, `id="order-form"`, "text/html"},
		{"unknown slug", "/nowhere/", http.StatusNotFound, "404", "text/html"},
		{"deep unknown", "/a/b/c", http.StatusNotFound, "На главную", "text/html"},
		{"api unknown", "/api/nothing", http.StatusNotFound, `"error"`, "application/json"},
		{"css", "/style.css", http.StatusOK, "--accent", "text/css"},
		{"js", "/app.js", http.StatusOK, "/ws/preview", "text/javascript"},
		{"search index", "/search-index.json", http.StatusOK, `"/about/"`, "application/json"},
		{"asset", "/assets/logo.svg", http.StatusOK, "<svg/>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
			if tt.wantType != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.wantType) {
				t.Errorf("content type = %q, want %q", rec.Header().Get("Content-Type"), tt.wantType)
			}
		})
	}
}

func TestHandlerRedirectsWithoutSlash(t *testing.T) {
	router := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/services/" {
		t.Errorf("location = %q, want /services/", loc)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug status = %d, want 404", rec.Code)
	}
}
