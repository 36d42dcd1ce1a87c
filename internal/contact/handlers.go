package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/richmanstudio/studio/internal/apperr"
	"github.com/richmanstudio/studio/internal/httpkit"
	"github.com/richmanstudio/studio/internal/logger"
)

// Handler exposes the contact form endpoint.
type Handler struct {
	svc     *Service
	limiter *httpkit.IPRateLimiter
	log     *logger.Logger
}

// NewHandler creates a contact handler. limiter may be nil.
func NewHandler(svc *Service, limiter *httpkit.IPRateLimiter, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{svc: svc, limiter: limiter, log: log}
}

// RegisterRoutes mounts POST /api/contact.
func (h *Handler) RegisterRoutes(r chi.Router) {
	if h.limiter != nil {
		r = r.With(h.limiter.Middleware)
	}
	r.Post("/api/contact", h.handleSubmit)
}

type submitResponse struct {
	Receipt
	Error string `json:"error,omitempty"`
}

// handleSubmit accepts a JSON body or a classic form post.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	msg, err := decodeMessage(w, r)
	if err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}

	receipt, err := h.svc.Submit(r.Context(), msg)
	if err != nil {
		if receipt.ID == "" {
			httpkit.HandleError(w, r, h.log, err)
			return
		}
		status := http.StatusBadGateway
		message := err.Error()
		if ae, ok := apperr.As(err); ok {
			status = ae.HTTPStatus()
			message = ae.Message
		}
		httpkit.JSON(w, status, submitResponse{Receipt: receipt, Error: message})
		return
	}
	httpkit.JSON(w, http.StatusOK, submitResponse{Receipt: receipt})
}

func decodeMessage(w http.ResponseWriter, r *http.Request) (Message, error) {
	var msg Message
	if httpkit.IsJSON(r) {
		err := httpkit.DecodeJSON(w, r, &msg)
		return msg, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, httpkit.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return msg, apperr.Wrap(apperr.KindBadRequest, "invalid form body", err)
	}
	msg.Name = r.PostForm.Get("name")
	msg.Email = r.PostForm.Get("email")
	msg.Body = r.PostForm.Get("message")
	return msg, nil
}
