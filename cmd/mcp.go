package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/richmanstudio/studio/internal/mcp"
	"github.com/richmanstudio/studio/internal/quote"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the price calculator and the preview renderer to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "studio MCP server started on stdio (%s)\n", cfg.Site.Name)

		srv := mcpserver.NewServer(quote.DefaultCatalog(), cfg.Pricing.Rate(), cfg.Pricing.Currency)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
