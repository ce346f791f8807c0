package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ppiankov/plainspeak/internal/model"
)

// Summarizer condenses a document into a few plain sentences
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Translator renders text in another language (ISO 639-1 code)
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Unavailable is the summarizer and translator used when no provider is configured.
// Every call fails with model.ErrEngineUnavailable.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Summarize(context.Context, string) (string, error) {
	return "", model.Unavailable("summarizer", u.reason())
}

func (u Unavailable) Translate(context.Context, string, string) (string, error) {
	return "", model.Unavailable("translator", u.reason())
}

func (u Unavailable) reason() error {
	if u.Reason == "" {
		return errors.New("no LLM provider configured")
	}
	return errors.New(u.Reason)
}

// Client wraps a Provider as a Summarizer and Translator
type Client struct {
	provider Provider
	config   Config
	logger   *slog.Logger
}

// NewClient creates a client for the configured provider.
// When the provider is disabled the client reports itself as not enabled.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	return &Client{provider: provider, config: config, logger: logger}, nil
}

// NewClientWithProvider wraps an existing provider
func NewClientWithProvider(provider Provider, config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{provider: provider, config: config, logger: logger}
}

// IsEnabled returns true if a provider is configured
func (c *Client) IsEnabled() bool {
	return c.provider != nil
}

// ProviderName returns the name of the configured provider
func (c *Client) ProviderName() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.Name()
}

// Check reports whether the provider is reachable
func (c *Client) Check(ctx context.Context) bool {
	return c.provider != nil && c.provider.IsAvailable(ctx)
}

// Summarize asks the provider for a short plain-language summary.
// A summary that cites a link not present in the document is rejected.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if c.provider == nil {
		return "", model.Unavailable("summarizer", errors.New("no LLM provider configured"))
	}
	if strings.TrimSpace(text) == "" {
		return "", model.InputError("no text to summarize")
	}

	resp, err := c.provider.Complete(ctx, CompletionRequest{
		Prompt:    BuildSummaryPrompt(text),
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		return "", model.Failure(c.provider.Name(), err)
	}
	if resp.Text == "" {
		return "", model.Failure(c.provider.Name(), errors.New("empty summary"))
	}

	for _, cited := range extractURLs(resp.Text) {
		if !strings.Contains(text, cited) {
			return "", model.Failure(c.provider.Name(), fmt.Errorf("summary cites a link not in the document: %s", cited))
		}
	}

	c.logger.Debug("summary generated",
		"provider", c.provider.Name(),
		"model", resp.Model,
		"tokens", resp.TokensUsed,
	)
	return resp.Text, nil
}

// Translate asks the provider for a translation
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if c.provider == nil || !c.config.Translate {
		return "", model.Unavailable("translator", errors.New("translation not enabled"))
	}
	if strings.TrimSpace(text) == "" || strings.TrimSpace(targetLang) == "" {
		return "", model.InputError("text and target language are required")
	}

	resp, err := c.provider.Complete(ctx, CompletionRequest{
		Prompt: BuildTranslatePrompt(text, targetLang),
		// Translations run longer than summaries
		MaxTokens: max(c.config.MaxTokens, 4*len(strings.Fields(text))),
	})
	if err != nil {
		return "", model.Failure(c.provider.Name(), err)
	}
	if resp.Text == "" {
		return "", model.Failure(c.provider.Name(), errors.New("empty translation"))
	}

	c.logger.Debug("translation generated", "provider", c.provider.Name(), "lang", targetLang, "tokens", resp.TokensUsed)
	return resp.Text, nil
}

var urlPattern = regexp.MustCompile(`https?://[^\s\)]+`)

// extractURLs returns the unique links in text, trailing punctuation removed
func extractURLs(text string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, url := range urlPattern.FindAllString(text, -1) {
		url = strings.TrimRight(url, ".,;:!?")
		if !seen[url] {
			seen[url] = true
			unique = append(unique, url)
		}
	}
	return unique
}
