package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/richmanstudio/studio/internal/quote"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the calculator and the preview
// renderer to agents.
type Server struct {
	catalog     quote.Catalog
	perPageRate decimal.Decimal
	currency    string
	mcp         *server.MCPServer
}

// NewServer creates a new MCP server over the given price list.
func NewServer(cat quote.Catalog, perPageRate decimal.Decimal, currency string) *Server {
	s := &Server{
		catalog:     cat,
		perPageRate: perPageRate,
		currency:    currency,
	}

	s.mcp = server.NewMCPServer(
		"studio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCatalogTool, s.handleListCatalog)
	s.mcp.AddTool(computeQuoteTool, s.handleComputeQuote)
	s.mcp.AddTool(renderPreviewTool, s.handleRenderPreview)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
