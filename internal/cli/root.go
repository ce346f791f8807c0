package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	plog "github.com/ppiankov/plainspeak/internal/log"
	"github.com/ppiankov/plainspeak/internal/model"
)

// Version is set at build time via -ldflags
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "plainspeak",
	Short: "PlainSpeak - civic documents in plain language",
	Long: `PlainSpeak turns civic and bureaucratic text into plain language.

It splits a notice into sentences, swaps jargon for everyday words,
pulls out what you have to do and by when, who is involved, and what
the document says in favour of or against a measure.

Text comes from files, stdin, web pages or photos of paper notices.
PlainSpeak does not give legal advice. Always check the original document.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// ExecuteContext runs the root command; ctx is cancelled on interrupt
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "plainspeak v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.plainspeak/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// envKeys are the settings that can be overridden with PLAINSPEAK_* variables
var envKeys = []string{
	"llm.provider", "llm.model", "llm.api_key", "llm.base_url", "llm.translate",
	"ocr.enabled", "ocr.tesseract", "ocr.lang", "ocr.tessdata_dir",
	"http.timeout", "http.user_agent", "http.http_proxy", "http.https_proxy", "http.no_proxy",
	"cache.enabled", "cache.dir",
	"history.backend", "history.dir",
	"server.addr",
	"simplify.default_grade",
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".plainspeak"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// PLAINSPEAK_LLM_PROVIDER -> llm.provider
	viper.SetEnvPrefix("PLAINSPEAK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges the config file and environment over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	applyLLMEnv(cfg)
	return cfg, nil
}

// applyLLMEnv fills provider credentials from the conventional variables
func applyLLMEnv(cfg *model.Config) {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
}

func newLogger() *slog.Logger {
	return plog.New(os.Stderr, verbose)
}
