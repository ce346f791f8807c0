package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	plog "github.com/ppiankov/plainspeak/internal/log"
	"github.com/ppiankov/plainspeak/internal/pipeline"
	"github.com/ppiankov/plainspeak/internal/server"
	"github.com/ppiankov/plainspeak/internal/sources"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes the analysis pipeline as a JSON API for the web front end:

  POST /analyze        {text, urls, flags}
  POST /simplify       {text, target_lang, target_grade}
  POST /analyze_image  multipart field "image"
  POST /ocr_simplify   multipart field "image"
  POST /sources        {topic}
  GET  /history        ?limit=N
  GET  /history/export spreadsheet download
  GET  /health

Example:
  plainspeak serve
  plainspeak serve --addr 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :5003)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := plog.NewJSON(os.Stderr, verbose)
	p, err := pipeline.FromConfig(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	catalog := sources.DefaultCatalog(sources.NewAuthorityClassifier(&cfg.Authority))
	srv := server.New(p, catalog, cfg.Server, logger)

	fmt.Fprintf(os.Stderr, "PlainSpeak API listening on %s\n", cfg.Server.Addr)
	return srv.ListenAndServe(cmd.Context())
}
