package preview

import (
	_ "embed"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/richmanstudio/studio/internal/apperr"
	"github.com/richmanstudio/studio/internal/httpkit"
	"github.com/richmanstudio/studio/internal/logger"
)

//go:embed sample.html
var sampleHTML string

// SampleHTML is the markup the hero editor starts with.
func SampleHTML() string { return sampleHTML }

// SandboxPolicy is sent with every rendered document. It puts the document
// in an opaque origin where scripts run but cannot reach or navigate the host.
const SandboxPolicy = "sandbox allow-scripts"

// Handler serves rendered previews over HTTP and WebSocket.
type Handler struct {
	clock    Clock
	delay    time.Duration
	maxBytes int64
	log      *logger.Logger
}

// NewHandler creates a preview handler. delay is the per-session debounce.
func NewHandler(delay time.Duration, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		clock:    SystemClock{},
		delay:    delay,
		maxBytes: httpkit.MaxBodyBytes,
		log:      log,
	}
}

// RegisterRoutes mounts the preview endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/preview/render", h.handleRender)
	r.Get("/preview/frame", h.handleFrame)
	r.Get("/ws/preview", h.handleWebSocket)
}

type renderRequest struct {
	HTML string `json:"html"`
}

// handleRender accepts {"html": "..."} or a raw text body.
func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	var raw string
	if httpkit.IsJSON(r) {
		var req renderRequest
		if err := httpkit.DecodeJSON(w, r, &req); err != nil {
			httpkit.HandleError(w, r, h.log, err)
			return
		}
		raw = req.HTML
	} else {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
		if err != nil {
			httpkit.HandleError(w, r, h.log, apperr.BadRequest("request body too large"))
			return
		}
		raw = string(body)
	}
	WriteDocument(w, Render(raw))
}

func (h *Handler) handleFrame(w http.ResponseWriter, r *http.Request) {
	WriteDocument(w, Render(sampleHTML))
}

// WriteDocument writes doc as a sandboxed HTML response.
func WriteDocument(w http.ResponseWriter, doc Document) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", SandboxPolicy)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, doc.String())
}
