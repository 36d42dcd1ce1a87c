package mcp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/richmanstudio/studio/internal/preview"
	"github.com/richmanstudio/studio/internal/quote"
)

// handleListCatalog describes every offering with its price.
func (s *Server) handleListCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatCatalog()), nil
}

// handleComputeQuote prices a selection through the quote engine.
func (s *Server) handleComputeQuote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	siteType, err := request.RequireString("site_type")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: site_type"), nil
	}
	rawPages, err := request.RequireFloat("pages")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pages"), nil
	}
	pages, ok := wholePages(rawPages)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("pages must be a whole number from %d to %d, got %v",
			quote.MinPages, quote.MaxPages, rawPages)), nil
	}
	extras := request.GetStringSlice("extras", nil)

	sel := quote.NewSelection(siteType, pages, extras...)
	q, err := quote.ComputeQuote(sel, s.catalog, s.perPageRate)
	if err != nil {
		if errors.Is(err, quote.ErrInvalidSelection) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	return mcp.NewToolResultText(s.formatQuote(q)), nil
}

// handleRenderPreview returns the sandboxed document for the given HTML.
func (s *Server) handleRenderPreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("html")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: html"), nil
	}
	return mcp.NewToolResultText(preview.Render(raw).String()), nil
}

// wholePages accepts only integral values that fit the page range check
// without overflowing. The engine still enforces the exact bounds.
func wholePages(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func (s *Server) formatCatalog() string {
	var sb strings.Builder
	sb.WriteString("Site types (choose one):\n")
	for _, st := range s.catalog.SiteTypes {
		fmt.Fprintf(&sb, "- %s: %s, %s. %s\n", st.ID, st.Label, quote.FormatPrice(st.BasePrice, s.currency), st.Description)
	}
	sb.WriteString("\nExtras (any number):\n")
	for _, ex := range s.catalog.Extras {
		fmt.Fprintf(&sb, "- %s: %s, +%s\n", ex.ID, ex.Label, quote.FormatPrice(ex.Price, s.currency))
	}
	fmt.Fprintf(&sb, "\nPer page: %s, %d to %d pages.\n",
		quote.FormatPrice(s.perPageRate, s.currency), quote.MinPages, quote.MaxPages)
	return sb.String()
}

func (s *Server) formatQuote(q quote.Quote) string {
	var sb strings.Builder
	for _, line := range q.Breakdown {
		fmt.Fprintf(&sb, "%s: %s\n", line.Label, quote.FormatPrice(line.Price, s.currency))
	}
	fmt.Fprintf(&sb, "Total: %s\n", quote.FormatPrice(q.Total, s.currency))
	fmt.Fprintf(&sb, "Completeness: %d%%\n", q.CompletenessPercent)
	return sb.String()
}
