package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/plainspeak/internal/pipeline"
	"github.com/ppiankov/plainspeak/internal/sources"
)

var (
	sourcesCheck   bool
	sourcesFormat  string
	sourcesTimeout time.Duration
)

var sourcesCmd = &cobra.Command{
	Use:   "sources [topic]",
	Short: "List curated official sources for a topic",
	Long: `Sources lists curated official and explanatory links for a topic, plus a
few general civic references. Without a topic it lists the known topics.

--check verifies that each link still resolves.

Example:
  plainspeak sources
  plainspeak sources immigration --check --format md`,
	Args: cobra.ArbitraryArgs,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().BoolVar(&sourcesCheck, "check", false, "check that every link is reachable")
	sourcesCmd.Flags().StringVar(&sourcesFormat, "format", "json", "output format (json, md)")
	sourcesCmd.Flags().DurationVar(&sourcesTimeout, "timeout", time.Minute, "link check timeout")
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	authority := sources.NewAuthorityClassifier(&cfg.Authority)
	catalog := sources.DefaultCatalog(authority)

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, topic := range catalog.TopicNames() {
			fmt.Fprintln(out, topic)
		}
		return nil
	}

	res := catalog.Lookup(strings.Join(args, " "))

	var status []sources.LinkStatus
	if sourcesCheck {
		urls := make([]string, 0, len(res.Sources))
		for _, s := range res.Sources {
			urls = append(urls, s.URL)
		}

		ctx, cancel := withTimeout(cmd.Context(), sourcesTimeout)
		defer cancel()
		status = sources.NewChecker(cfg.HTTP, cfg.Concurrency.FetchWorkers, authority).Check(ctx, urls)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	payload := map[string]any{"topic": res.Topic, "sources": res.Sources}
	if status != nil {
		payload["links"] = status
	}
	return render(renderer, sourcesFormat, "-", payload, func(w io.Writer) error {
		return renderer.SourcesMarkdown(w, res, status)
	})
}
