package cmd

import (
	"github.com/spf13/cobra"

	"github.com/richmanstudio/studio/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Web studio site with a live quote calculator and HTML preview",
	Long: `Studio serves the Richman Studio website: a price calculator that
quotes a site from its type, page count and extras, a live HTML editor
with a debounced sandboxed preview, and contact and order forms that
forward to the studio inbox. It can also build the site as static files
and expose the calculator to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
