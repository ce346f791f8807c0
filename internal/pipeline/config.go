package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/ppiankov/plainspeak/internal/cache"
	"github.com/ppiankov/plainspeak/internal/history"
	"github.com/ppiankov/plainspeak/internal/lang"
	"github.com/ppiankov/plainspeak/internal/llm"
	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/ocr"
	"github.com/ppiankov/plainspeak/internal/sources"
	"github.com/ppiankov/plainspeak/internal/util"
	"github.com/ppiankov/plainspeak/internal/worker"
)

// FromConfig wires a pipeline from configuration. An LLM provider that fails to
// initialize is logged and skipped; a history store that fails to open is an error.
func FromConfig(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	opts := []Option{
		WithLogger(logger),
		WithHistory(store),
		WithCache(cache.New(cfg.Cache), cfg.Cache.MemoryTTL),
		WithAuthority(sources.NewAuthorityClassifier(&cfg.Authority)),
		WithOCR(ocr.NewEngine(cfg.OCR, logger)),
		WithDefaultGrade(cfg.Simplify.DefaultGrade),
		WithMaxImageBytes(cfg.OCR.MaxBytes),
		WithMaxImagePixels(cfg.OCR.MaxPixels),
		WithFetcher(NewFetcherFromConfig(cfg, logger)),
	}

	if cfg.Simplify.DetectLang {
		opts = append(opts, WithLanguageDetector(lang.NewDetector()))
	}

	if cfg.LLM.Provider != "" {
		client, err := llm.NewClient(llm.ConfigFromModel(cfg.LLM, cfg.HTTP), logger)
		if err != nil {
			logger.Warn("LLM provider disabled", "provider", cfg.LLM.Provider, "error", err)
		} else {
			opts = append(opts, WithSummarizer(client, client.ProviderName()))
			if cfg.LLM.Translate {
				opts = append(opts, WithTranslator(client))
			}
		}
	}

	return New(opts...), nil
}

// NewFetcherFromConfig builds the page fetcher with robots.txt and per-host rate limits
func NewFetcherFromConfig(cfg *model.Config, logger *slog.Logger) *Fetcher {
	opts := []FetcherOption{
		WithFetchLogger(logger),
		WithFetchWorkers(cfg.Concurrency.FetchWorkers),
		WithRateLimiter(worker.LimiterFromConfig(cfg.RateLimiting)),
	}

	f := NewFetcher(cfg.HTTP, opts...)
	if cfg.HTTP.RespectRobots {
		WithRobots(util.NewRobotsChecker(f.HTTPClient(), cfg.HTTP.UserAgent))(f)
	}
	return f
}
