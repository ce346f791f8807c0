package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/pipeline"
)

var (
	simplifyGrade  int
	simplifyLang   string
	simplifyFormat string
	simplifyOut    string
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [file|-]",
	Short: "Rewrite text in plain language",
	Long: `Simplify swaps bureaucratic words for everyday ones, keeps the most
important sentences and lists the actions the reader must take.

With --lang and an LLM provider configured (llm.translate: true) the
simplified text is also translated.

Example:
  plainspeak simplify letter.txt
  plainspeak simplify letter.txt --grade 6 --format md
  plainspeak simplify - --lang es < letter.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimplify,
}

func init() {
	rootCmd.AddCommand(simplifyCmd)

	simplifyCmd.Flags().IntVar(&simplifyGrade, "grade", 0, "target reading grade (default from config)")
	simplifyCmd.Flags().StringVar(&simplifyLang, "lang", "", "translate the result to this language code")
	simplifyCmd.Flags().StringVar(&simplifyFormat, "format", "json", "output format (json, md)")
	simplifyCmd.Flags().StringVarP(&simplifyOut, "output", "o", "-", "output path (- for stdout)")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	p, cfg, err := openPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	res, err := p.Simplify(cmd.Context(), model.SimplifyRequest{
		Text:        text,
		TargetGrade: simplifyGrade,
		TargetLang:  simplifyLang,
	})
	if err != nil {
		return fmt.Errorf("simplify failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	return render(renderer, simplifyFormat, simplifyOut, res, func(w io.Writer) error {
		return renderer.SimplifyMarkdown(w, res)
	})
}
