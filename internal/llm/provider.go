package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete runs a single prompt and returns the model's text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a single completion
type CompletionRequest struct {
	// System is the system instruction (if empty, DefaultSystemPrompt)
	System string

	// Prompt is the user prompt
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// CompletionResponse contains the model output
type CompletionResponse struct {
	// Text is the generated text, trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Translate enables the translation capability
	Translate bool

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 160,
	}
}

// DefaultSystemPrompt frames every request
const DefaultSystemPrompt = "You rewrite government and civic documents in plain language for residents. " +
	"Use only facts stated in the document. Never add advice, dates or links that are not in it."

// maxPromptChars bounds the document excerpt sent to the model
const maxPromptChars = 12000

// BuildSummaryPrompt constructs the summarization prompt for a document
func BuildSummaryPrompt(text string) string {
	return fmt.Sprintf(`Summarize the document below in 3-4 short sentences at an 8th grade reading level.

RULES:
1. Keep every deadline, amount and required action that appears in the document.
2. Do not cite or invent URLs. Only repeat a link if it is written in the document.
3. Do not use bullet points or headings. Plain sentences only.

Document:
%s`, excerpt(text))
}

// BuildTranslatePrompt constructs the translation prompt
func BuildTranslatePrompt(text, targetLang string) string {
	return fmt.Sprintf(`Translate the text below into the language with ISO 639-1 code %q.
Keep the meaning and the plain reading level. Return only the translation.

Text:
%s`, targetLang, excerpt(text))
}

// Helper functions

func excerpt(text string) string {
	text = strings.TrimSpace(text)
	r := []rune(text)
	if len(r) <= maxPromptChars {
		return text
	}
	return string(r[:maxPromptChars]) + "\n[... document truncated ...]"
}

func resolveMaxTokens(req, cfg int) int {
	if req > 0 {
		return req
	}
	if cfg > 0 {
		return cfg
	}
	return 160
}

func systemPrompt(s string) string {
	if s == "" {
		return DefaultSystemPrompt
	}
	return s
}
