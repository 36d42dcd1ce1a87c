package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/richmanstudio/studio/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Render an HTML file into the sandboxed preview document on every save",
	Long: `Watches FILE and, after edits settle for preview.debounce_ms, writes the
rendered preview document to --out. With --once it renders a single time.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("out", "preview.html", "where to write the rendered document")
	previewCmd.Flags().Bool("once", false, "render once and exit")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src := args[0]
	out, _ := cmd.Flags().GetString("out")

	if once, _ := cmd.Flags().GetBool("once"); once {
		raw, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(preview.Render(string(raw))), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s to %s\n", src, out)
		return nil
	}

	log := newLogger(cfg)
	delay := cfg.Preview.Debounce()
	if delay <= 0 {
		delay = preview.DefaultDelay
	}
	pipeline := preview.NewPipeline(preview.SystemClock{}, delay)

	w, err := preview.NewFileWatcher(src, pipeline, func(doc preview.Document) {
		if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
			log.Error("preview: write", "path", out, "error", err)
			return
		}
		log.Info("preview rendered", "path", out)
	}, log)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, writing %s. Press Ctrl+C to stop.\n", src, out)
	return w.Run(ctx)
}
