package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/richmanstudio/studio/internal/config"
	"github.com/richmanstudio/studio/internal/quote"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a website from the terminal",
	Long: `Computes a quote for one site type, a page count and any extras.
Without --type the selection is asked for interactively.`,
	Example: `  studio quote --type corporate --pages 5 --extra seo --extra cms
  studio quote --type landing --json
  studio quote --type ecommerce --pages 12 --xlsx estimate.xlsx`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().String("type", "", "site type id (landing, corporate, ecommerce, lms, pwa)")
	quoteCmd.Flags().Int("pages", quote.MinPages, "number of pages")
	quoteCmd.Flags().StringSlice("extra", nil, "extra feature id, repeatable")
	quoteCmd.Flags().Bool("json", false, "print the quote as JSON")
	quoteCmd.Flags().String("xlsx", "", "also write the estimate spreadsheet to this path")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat := quote.DefaultCatalog()

	siteType, _ := cmd.Flags().GetString("type")
	pages, _ := cmd.Flags().GetInt("pages")
	extras, _ := cmd.Flags().GetStringSlice("extra")

	var sel quote.Selection
	if siteType == "" {
		sel, err = promptSelection(cat)
		if err != nil {
			return err
		}
	} else {
		sel = quote.NewSelection(siteType, pages, extras...)
	}

	q, err := quote.ComputeQuote(sel, cat, cfg.Pricing.Rate())
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
		data, err := quote.ExportXLSX(q, sel, cat, cfg.Site.Name)
		if err != nil {
			return fmt.Errorf("exporting estimate: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Estimate written to %s\n", path)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Selection quote.Selection `json:"selection"`
			quote.Quote
		}{sel, q})
	}
	printQuote(cmd.OutOrStdout(), q, cfg)
	return nil
}

func printQuote(w io.Writer, q quote.Quote, cfg *config.Config) {
	width := 0
	for _, line := range q.Breakdown {
		if n := len([]rune(line.Label)); n > width {
			width = n
		}
	}
	for _, line := range q.Breakdown {
		pad := strings.Repeat(" ", width-len([]rune(line.Label)))
		fmt.Fprintf(w, "  %s%s  %s\n", line.Label, pad, quote.FormatPrice(line.Price, cfg.Pricing.Currency))
	}
	fmt.Fprintf(w, "Total: %s (%d%% of the full package)\n", quote.FormatPrice(q.Total, cfg.Pricing.Currency), q.CompletenessPercent)
}

// promptSelection asks for a site type, a page count and each extra in turn.
func promptSelection(cat quote.Catalog) (quote.Selection, error) {
	labels := make([]string, len(cat.SiteTypes))
	for i, st := range cat.SiteTypes {
		labels[i] = fmt.Sprintf("%s (%s)", st.Label, st.Description)
	}
	idx, _, err := (&promptui.Select{Label: "Site type", Items: labels}).Run()
	if err != nil {
		return quote.Selection{}, fmt.Errorf("site type: %w", err)
	}

	pagesStr, err := (&promptui.Prompt{
		Label:   fmt.Sprintf("Pages (%d-%d)", quote.MinPages, quote.MaxPages),
		Default: strconv.Itoa(quote.MinPages),
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < quote.MinPages || n > quote.MaxPages {
				return fmt.Errorf("enter a number from %d to %d", quote.MinPages, quote.MaxPages)
			}
			return nil
		},
	}).Run()
	if err != nil {
		return quote.Selection{}, fmt.Errorf("pages: %w", err)
	}
	pages, _ := strconv.Atoi(strings.TrimSpace(pagesStr))

	var extras []string
	for _, ex := range cat.Extras {
		_, err := (&promptui.Prompt{Label: "Add " + ex.Label, IsConfirm: true}).Run()
		if err == nil {
			extras = append(extras, ex.ID)
			continue
		}
		if !errors.Is(err, promptui.ErrAbort) {
			return quote.Selection{}, fmt.Errorf("extras: %w", err)
		}
	}

	return quote.NewSelection(cat.SiteTypes[idx].ID, pages, extras...), nil
}
