package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/plainspeak/internal/pipeline"
	"github.com/ppiankov/plainspeak/internal/worker"
)

var (
	concurrency   int
	outputDir     string
	batchTimeout  time.Duration
	batchNoFooter bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir|list>",
	Short: "Analyze many documents in parallel",
	Long: `Batch analyzes every .txt and .md file in a directory, or every entry of a
list file (one path or URL per line, # for comments).

A JSON and a Markdown report are written per document.

Example:
  plainspeak batch ./notices
  plainspeak batch docs.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./plainspeak-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchNoFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	docs, err := worker.LoadDocuments(args[0])
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found in %s", args[0])
	}

	p, cfg, err := openPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Analyzing %d documents with %d workers...\n\n", len(docs), concurrency)

	processor := worker.NewBatchProcessor(p, concurrency, cfg.Features)
	results := processor.Process(ctx, docs)
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter && !batchNoFooter)

	failures := 0
	for i, result := range results {
		name := result.Document.Name()
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, result.Error)
			continue
		}

		base := filepath.Join(outputDir, reportName(i, result.Document))
		if err := writeTo(base+".json", func(w io.Writer) error { return renderer.WriteJSON(w, result.Result) }); err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, err)
			continue
		}
		if err := writeTo(base+".md", func(w io.Writer) error { return renderer.AnalysisMarkdown(w, name, result.Result) }); err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%d actions)\n", name, len(result.Result.Actions))
	}

	fmt.Fprintf(os.Stderr, "\n  Total:     %d\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(results)-failures)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n\n", outputDir)

	if failures == len(results) {
		return fmt.Errorf("all %d documents failed", failures)
	}
	return nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
)

// reportName builds a unique, filesystem-safe base name for a document's reports
func reportName(index int, doc worker.Document) string {
	stem := ""
	if doc.URL != "" {
		if u, err := url.Parse(doc.URL); err == nil {
			stem = u.Host + u.Path
		}
	} else {
		stem = strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
	}

	stem = strings.Trim(filenameReplacer.Replace(stem), "_-.")
	if stem == "" {
		stem = "document"
	}
	if len(stem) > 80 {
		stem = stem[:80]
	}
	return fmt.Sprintf("%03d-%s", index+1, stem)
}
