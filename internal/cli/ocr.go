package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/plainspeak/internal/pipeline"
)

var (
	ocrFormat string
	ocrOut    string
)

var ocrCmd = &cobra.Command{
	Use:   "ocr <image>",
	Short: "Read a photographed notice and simplify it",
	Long: `OCR runs tesseract over a photo or scan, rebuilds the text lines,
simplifies the text and marks the lines that ask the reader to act.

Requires the tesseract binary (see ocr.tesseract in the config).

Example:
  plainspeak ocr letter.jpg
  plainspeak ocr letter.png --format md -o letter.md`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringVar(&ocrFormat, "format", "json", "output format (json, md)")
	ocrCmd.Flags().StringVarP(&ocrOut, "output", "o", "-", "output path (- for stdout)")
}

func runOCR(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	p, cfg, err := openPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	res, err := p.AnalyzeImage(cmd.Context(), data)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	return render(renderer, ocrFormat, ocrOut, res, func(w io.Writer) error {
		return renderer.ImageMarkdown(w, res)
	})
}
