package quote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/richmanstudio/studio/internal/apperr"
	"github.com/richmanstudio/studio/internal/httpkit"
	"github.com/richmanstudio/studio/internal/logger"
)

// Handler exposes the calculator over HTTP.
type Handler struct {
	catalog     Catalog
	perPageRate decimal.Decimal
	currency    string
	studio      string
	log         *logger.Logger
}

// NewHandler creates a calculator handler over the given price list.
func NewHandler(cat Catalog, perPageRate decimal.Decimal, currency, studio string, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{catalog: cat, perPageRate: perPageRate, currency: currency, studio: studio, log: log}
}

// RegisterRoutes mounts the calculator endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/catalog", h.handleCatalog)
	r.Post("/api/quote", h.handleQuote)
	r.Post("/api/quote/toggle", h.handleToggle)
	r.Post("/api/quote/export", h.handleExport)
}

type catalogResponse struct {
	Catalog     Catalog         `json:"catalog"`
	PerPageRate decimal.Decimal `json:"per_page_rate"`
	MinPages    int             `json:"min_pages"`
	MaxPages    int             `json:"max_pages"`
	Currency    string          `json:"currency"`
}

// quoteResponse adds display strings to a Quote.
type quoteResponse struct {
	Quote
	TotalFormatted string   `json:"total_formatted"`
	Lines          []string `json:"lines_formatted"`
}

type toggleRequest struct {
	Selection Selection `json:"selection"`
	Extra     string    `json:"extra"`
}

type toggleResponse struct {
	Selection Selection      `json:"selection"`
	Quote     *quoteResponse `json:"quote,omitempty"`
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	httpkit.JSON(w, http.StatusOK, catalogResponse{
		Catalog:     h.catalog,
		PerPageRate: h.perPageRate,
		MinPages:    MinPages,
		MaxPages:    MaxPages,
		Currency:    h.currency,
	})
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var sel Selection
	if err := httpkit.DecodeJSON(w, r, &sel); err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}
	resp, err := h.price(sel)
	if err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}
	httpkit.JSON(w, http.StatusOK, resp)
}

// handleToggle flips one extra and reprices. An unpriceable result still
// returns the new selection, without a quote.
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := httpkit.DecodeJSON(w, r, &req); err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}
	if req.Extra == "" {
		httpkit.HandleError(w, r, h.log, apperr.BadRequest("extra is required"))
		return
	}

	next := ToggleExtra(req.Selection, req.Extra)
	resp := toggleResponse{Selection: next}
	if q, err := h.price(next); err == nil {
		resp.Quote = &q
	}
	httpkit.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var sel Selection
	if err := httpkit.DecodeJSON(w, r, &sel); err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}
	q, err := h.compute(sel)
	if err != nil {
		httpkit.HandleError(w, r, h.log, err)
		return
	}

	data, err := ExportXLSX(q, sel, h.catalog, h.studio)
	if err != nil {
		httpkit.HandleError(w, r, h.log, apperr.Internal("export failed", err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="estimate-%s-%d.xlsx"`, sel.SiteTypeID, sel.PageCount))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) compute(sel Selection) (Quote, error) {
	q, err := ComputeQuote(sel, h.catalog, h.perPageRate)
	if errors.Is(err, ErrInvalidSelection) {
		return Quote{}, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}
	return q, err
}

func (h *Handler) price(sel Selection) (quoteResponse, error) {
	q, err := h.compute(sel)
	if err != nil {
		return quoteResponse{}, err
	}
	return h.format(q), nil
}

// format attaches display strings to q.
func (h *Handler) format(q Quote) quoteResponse {
	lines := make([]string, len(q.Breakdown))
	for i, l := range q.Breakdown {
		lines[i] = fmt.Sprintf("%s: %s", l.Label, FormatPrice(l.Price, h.currency))
	}
	return quoteResponse{Quote: q, TotalFormatted: FormatPrice(q.Total, h.currency), Lines: lines}
}
