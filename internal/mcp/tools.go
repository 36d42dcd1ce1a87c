package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCatalogTool defines the list_catalog MCP tool.
var listCatalogTool = mcp.NewTool("list_catalog",
	mcp.WithDescription("List the site types, extra features and per-page rate the studio prices projects with."),
)

// computeQuoteTool defines the compute_quote MCP tool.
var computeQuoteTool = mcp.NewTool("compute_quote",
	mcp.WithDescription("Price a website: one site type, a page count and any extra features. Returns the total, the line-by-line breakdown and how complete the package is."),
	mcp.WithString("site_type",
		mcp.Required(),
		mcp.Description("Site type id from list_catalog, e.g. landing or ecommerce"),
	),
	mcp.WithNumber("pages",
		mcp.Required(),
		mcp.Description("Number of content pages, 1 to 20"),
	),
	mcp.WithArray("extras",
		mcp.Description("Extra feature ids from list_catalog"),
		mcp.WithStringItems(),
	),
)

// renderPreviewTool defines the render_preview MCP tool.
var renderPreviewTool = mcp.NewTool("render_preview",
	mcp.WithDescription("Wrap an HTML fragment or full page into the sandboxed preview document shown in the live editor."),
	mcp.WithString("html",
		mcp.Required(),
		mcp.Description("Raw HTML typed by the user"),
	),
)
