package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/pipeline"
)

var (
	analyzeURLs     []string
	analyzeJSON     string
	analyzeMD       string
	analyzeTimeout  time.Duration
	noProsCons      bool
	noStakeholders  bool
	noActions       bool
	analyzeNoFooter bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Analyze a civic document",
	Long: `Analyze produces a short summary, key points, arguments for and against,
the people and bodies involved, and the actions a reader must take.

Text is read from a file, from stdin, or fetched from --url pages when no
text is given.

Example:
  plainspeak analyze notice.txt
  plainspeak analyze notice.txt --md notice.md
  cat notice.txt | plainspeak analyze --url https://example.gov/notice
  plainspeak analyze --url https://www.uscis.gov/green-card --json -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringArrayVar(&analyzeURLs, "url", nil, "source URL (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeJSON, "json", "-", "output JSON path (- for stdout)")
	analyzeCmd.Flags().StringVar(&analyzeMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noProsCons, "no-pros-cons", false, "skip arguments for and against")
	analyzeCmd.Flags().BoolVar(&noStakeholders, "no-stakeholders", false, "skip stakeholder detection")
	analyzeCmd.Flags().BoolVar(&noActions, "no-actions", false, "skip action items")
	analyzeCmd.Flags().BoolVar(&analyzeNoFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd.Context(), analyzeTimeout)
	defer cancel()

	var text string
	if len(args) > 0 || len(analyzeURLs) == 0 {
		var err error
		if text, err = readInput(args); err != nil {
			return err
		}
	}

	p, cfg, err := openPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	features := cfg.Features
	features.ProsCons = features.ProsCons && !noProsCons
	features.Stakeholders = features.Stakeholders && !noStakeholders
	features.Actions = features.Actions && !noActions

	res, err := p.Analyze(ctx, model.AnalyzeRequest{Text: text, URLs: analyzeURLs, Features: &features})
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", w)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter && !analyzeNoFooter)
	if analyzeJSON != "" {
		if err := writeTo(analyzeJSON, func(w io.Writer) error { return renderer.WriteJSON(w, res) }); err != nil {
			return err
		}
	}
	if analyzeMD != "" {
		title := "Document"
		if len(args) > 0 && args[0] != "-" {
			title = args[0]
		} else if len(analyzeURLs) > 0 {
			title = analyzeURLs[0]
		}
		if err := writeTo(analyzeMD, func(w io.Writer) error { return renderer.AnalysisMarkdown(w, title, res) }); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d key points, %d actions, %d stakeholders\n",
			len(res.Bullets), len(res.Actions), len(res.Stakeholders))
	}
	return nil
}
