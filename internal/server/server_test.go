package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/richmanstudio/studio/internal/config"
	"github.com/richmanstudio/studio/internal/contact"
	"github.com/richmanstudio/studio/internal/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Site.AssetsDir = t.TempDir()
	cfg.Preview.DebounceMS = 10
	srv, err := NewFromConfig(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	return srv
}

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0}, logger.Discard(), nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Port: 0, AllowAll: true}, logger.Discard(), nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestNotFoundWithoutPages(t *testing.T) {
	srv := New(Config{}, logger.Discard(), nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/anything", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Errorf("body = %q", w.Body.String())
	}
}

type pingFeature struct{}

func (pingFeature) RegisterRoutes(r chi.Router) {
	r.Post("/api/ping", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
}

func TestFeatureRoutesAndMethodNotAllowed(t *testing.T) {
	srv := New(Config{}, logger.Discard(), nil, pingFeature{})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("POST", "/api/ping", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("POST status = %d, want 204", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/api/ping", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d, want 405", w.Code)
	}
}

func TestNewFromConfigRoutes(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"home", "GET", "/", "", http.StatusOK, `id="calculator"`},
		{"page", "GET", "/portfolio/", "", http.StatusOK, "ManyIQ"},
		{"missing page", "GET", "/nope/", "", http.StatusNotFound, "404"},
		{"catalog", "GET", "/api/catalog", "", http.StatusOK, `"landing"`},
		{"quote", "POST", "/api/quote", `{"site_type":"corporate","pages":5,"extras":["seo","cms"]}`, http.StatusOK, `"total_formatted":"57 000 ₽"`},
		{"invalid quote", "POST", "/api/quote", `{"site_type":"nope","pages":5,"extras":[]}`, http.StatusUnprocessableEntity, "error"},
		{"preview render", "POST", "/api/preview/render", `{"html":"<p>hi</p>"}`, http.StatusOK, "<p>hi</p>"},
		{"preview frame", "GET", "/preview/frame", "", http.StatusOK, "<!DOCTYPE html>"},
		{"order steps", "GET", "/api/order/steps", "", http.StatusOK, `"budgets"`},
		{"contact invalid", "POST", "/api/contact", `{"name":"","email":"x","message":""}`, http.StatusUnprocessableEntity, "details"},
		{"search index", "GET", "/search-index.json", "", http.StatusOK, `"/services/"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q: %s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestNewFromConfigInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Port = 0
	if _, err := NewFromConfig(cfg, nil); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestMailSenderSelection(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, ok := MailSender(cfg, logger.Discard()).(*contact.LogSender); !ok {
		t.Error("disabled mail should use LogSender")
	}
	cfg.Mail.Enabled = true
	cfg.Mail.Host = "smtp.example.com"
	if _, ok := MailSender(cfg, logger.Discard()).(*contact.SMTPSender); !ok {
		t.Error("enabled mail should use SMTPSender")
	}
	cfg.Mail.WebhookURL = "https://hooks.example.com/studio"
	if _, ok := MailSender(cfg, logger.Discard()).(*contact.Dispatcher); !ok {
		t.Error("webhook should wrap the sender in a Dispatcher")
	}
}

func TestInbox(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mail.ToEmail = ""
	if got := Inbox(cfg); got != cfg.Site.Email {
		t.Errorf("Inbox = %q, want site email", got)
	}
	cfg.Mail.ToEmail = "orders@example.com"
	if got := Inbox(cfg); got != "orders@example.com" {
		t.Errorf("Inbox = %q", got)
	}
}

func TestServeAndShutdown(t *testing.T) {
	srv := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	base := "http://" + ln.Addr().String()
	resp, err := http.Get(base + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	// The preview socket must survive the request timeout wrapper.
	wsURL := "ws://" + ln.Addr().String() + "/ws/preview"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	var ready struct {
		Type string `json:"type"`
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&ready); err != nil || ready.Type != "ready" {
		t.Fatalf("ready = %+v, err = %v", ready, err)
	}
	if err := conn.WriteJSON(map[string]string{"type": "edit", "content": "<h1>x</h1>"}); err != nil {
		t.Fatal(err)
	}
	var rendered struct {
		Type     string `json:"type"`
		Document string `json:"document"`
	}
	if err := conn.ReadJSON(&rendered); err != nil {
		t.Fatalf("read render: %v", err)
	}
	if rendered.Type != "render" || !strings.Contains(rendered.Document, "<h1>x</h1>") {
		t.Errorf("render = %+v", rendered)
	}
	conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Serve returned %v", err)
	}
}
