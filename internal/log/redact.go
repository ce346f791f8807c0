package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// Mask replaces redacted values
const Mask = "***REDACTED***"

// redactedKeys are attribute keys whose values are always masked
var redactedKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"api_key":             true,
	"apikey":              true,
	"api-key":             true,
	"cookie":              true,
	"set-cookie":          true,
	"password":            true,
	"secret":              true,
}

// redactedValues match credentials regardless of the key they are logged under
var redactedValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`^sk-(?:ant-|proj-)?[A-Za-z0-9_-]{16,}$`), // OpenAI / Anthropic keys
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
}

// RedactingHandler wraps an slog.Handler and masks credential attributes
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler wraps handler; nil uses the default handler
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redact(a))
		return true
	})
	return h.handler.Handle(ctx, out)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = redact(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(clean)}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

func redact(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		clean := make([]slog.Attr, len(group))
		for i, ga := range group {
			clean[i] = redact(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	}

	key := strings.ToLower(a.Key)
	if redactedKeys[key] || strings.HasSuffix(key, "_secret") || strings.HasSuffix(key, "_password") {
		return slog.String(a.Key, Mask)
	}

	if a.Value.Kind() == slog.KindString {
		v := a.Value.String()
		for _, re := range redactedValues {
			if re.MatchString(v) {
				return slog.String(a.Key, Mask)
			}
		}
	}

	return a
}

// New returns a text logger at Debug when verbose, Warn otherwise
func New(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbose)})))
}

// NewJSON returns a JSON logger with the same levels, used by the HTTP server
func NewJSON(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level(verbose)})))
}

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
