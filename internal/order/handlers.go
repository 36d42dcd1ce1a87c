package order

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/richmanstudio/studio/internal/apperr"
	"github.com/richmanstudio/studio/internal/contact"
	"github.com/richmanstudio/studio/internal/httpkit"
	"github.com/richmanstudio/studio/internal/logger"
)

// Handler exposes the order form endpoints.
type Handler struct {
	svc     *Service
	limiter *httpkit.IPRateLimiter
	log     *logger.Logger
}

// NewHandler creates an order handler. limiter may be nil.
func NewHandler(svc *Service, limiter *httpkit.IPRateLimiter, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{svc: svc, limiter: limiter, log: log}
}

// RegisterRoutes mounts the order endpoints. Only submission is rate limited.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/order/steps", h.handleSteps)
	r.Post("/api/order/validate", h.handleValidate)

	submit := r
	if h.limiter != nil {
		submit = r.With(h.limiter.Middleware)
	}
	submit.Post("/api/order", h.handleSubmit)
}

type stepsResponse struct {
	Steps        []StepInfo    `json:"steps"`
	Budgets      []string      `json:"budgets"`
	ProjectTypes []ProjectType `json:"project_types"`
}

type validateResponse struct {
	Step     int  `json:"step"`
	Next     int  `json:"next_step"`
	Progress int  `json:"progress"`
	Last     bool `json:"last"`
}

type submitResponse struct {
	contact.Receipt
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSteps(w http.ResponseWriter, r *http.Request) {
	httpkit.JSON(w, http.StatusOK, stepsResponse{Steps: Steps, Budgets: Budgets, ProjectTypes: ProjectTypes})
}

// handleValidate checks one step and reports where the wizard moves next.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("step"))
	if err != nil {
		httpkit.HandleError(w, r, h.log, apperr.BadRequest("step query parameter must be an integer"))
		return
	}
	step := Step(n)

	var req Request
	if err := httpkit.DecodeJSON(w, r, &req); err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}
	if err := h.svc.ValidateStep(req, step); err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}

	wiz := WizardAt(step)
	wiz.Next()
	httpkit.JSON(w, http.StatusOK, validateResponse{
		Step:     int(step),
		Next:     int(wiz.Step()),
		Progress: wiz.Progress(),
		Last:     WizardAt(step).IsLast(),
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpkit.DecodeJSON(w, r, &req); err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}

	receipt, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		if receipt.ID == "" {
			httpkit.HandleError(w, r, h.log, err)
			return
		}
		status, message := http.StatusBadGateway, err.Error()
		if ae, ok := apperr.As(err); ok {
			status, message = ae.HTTPStatus(), ae.Message
		}
		httpkit.JSON(w, status, submitResponse{Receipt: receipt, Error: message})
		return
	}
	httpkit.JSON(w, http.StatusOK, submitResponse{Receipt: receipt})
}
