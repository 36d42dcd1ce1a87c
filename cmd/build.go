package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/richmanstudio/studio/internal/progress"
	"github.com/richmanstudio/studio/internal/server"
	"github.com/richmanstudio/studio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the site as static files",
	Long: `Renders every page to <slug>/index.html with style.css, app.js and a
search index, and copies static assets matching site.asset_patterns.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override site.output_dir")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Site.OutputDir = out
	}

	renderer, err := server.SiteRenderer(cfg)
	if err != nil {
		return err
	}

	g := &site.Generator{
		Renderer:      renderer,
		OutputDir:     cfg.Site.OutputDir,
		AssetsDir:     cfg.Site.AssetsDir,
		AssetPatterns: cfg.Site.AssetPatterns,
		Reporter:      progress.NewReporter("Building site"),
		Log:           newLogger(cfg),
	}
	res, err := g.Build()
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages and %d assets into %s\n", res.Pages, res.Assets, cfg.Site.OutputDir)
	return nil
}
