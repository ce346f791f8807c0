package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/plainspeak/internal/history"
	"github.com/ppiankov/plainspeak/internal/pipeline"
)

var (
	historyLimit  int
	historyFormat string
	historyOut    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past simplifications",
	Long: `History lists recent simplifications, newest first.

The default memory backend forgets everything on exit; set
history.backend: sqlite in the config to keep history between runs.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent history items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cfg, err := openPipeline()
		if err != nil {
			return err
		}
		defer func() { _ = p.Close() }()

		items, err := p.History().List(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
		return render(renderer, historyFormat, "-", map[string]any{"items": items}, func(w io.Writer) error {
			return renderer.HistoryMarkdown(w, items)
		})
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history to a spreadsheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyOut == "" || historyOut == "-" {
			return fmt.Errorf("--output is required for spreadsheet export")
		}

		p, _, err := openPipeline()
		if err != nil {
			return err
		}
		defer func() { _ = p.Close() }()

		items, err := p.History().List(cmd.Context(), 0)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		if err := writeTo(historyOut, func(w io.Writer) error { return history.ExportXLSX(w, items) }); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Exported %d items to %s\n", len(items), historyOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum items (0 for all)")
	historyListCmd.Flags().StringVar(&historyFormat, "format", "json", "output format (json, md)")
	historyExportCmd.Flags().StringVarP(&historyOut, "output", "o", "plainspeak-history.xlsx", "spreadsheet path")
}
