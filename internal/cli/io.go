package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/pipeline"
)

// readInput reads a file argument, or stdin when the argument is "-" or missing
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// writeTo writes via fn to path, or to stdout when path is "" or "-"
func writeTo(path string, fn func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return fn(f)
}

// render writes v as JSON, or as Markdown through md
func render(r *pipeline.Renderer, format, out string, v any, md func(io.Writer) error) error {
	switch strings.ToLower(format) {
	case "json", "":
		return writeTo(out, func(w io.Writer) error { return r.WriteJSON(w, v) })
	case "md", "markdown":
		return writeTo(out, md)
	default:
		return fmt.Errorf("unknown format %q (supported: json, md)", format)
	}
}

// openPipeline loads configuration and wires a pipeline. Callers must Close it.
func openPipeline() (*pipeline.Pipeline, *model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.FromConfig(cfg, newLogger())
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

// withTimeout bounds parent by d; d <= 0 means no deadline
func withTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}
