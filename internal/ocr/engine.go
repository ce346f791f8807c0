package ocr

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"os/exec"

	"github.com/ppiankov/plainspeak/internal/model"
)

// Engine recognizes words in a decoded image
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) ([]model.OCRToken, error)
}

// UnavailableEngine is the engine used when no OCR backend is installed.
// Every call fails with model.ErrEngineUnavailable.
type UnavailableEngine struct {
	Reason error
}

func (UnavailableEngine) Name() string { return "none" }

func (u UnavailableEngine) Recognize(context.Context, image.Image) ([]model.OCRToken, error) {
	reason := u.Reason
	if reason == nil {
		reason = errors.New("install tesseract to enable image text extraction")
	}
	return nil, model.Unavailable("ocr", reason)
}

// NewEngine returns a tesseract engine, or UnavailableEngine when OCR is disabled
// or the binary cannot be found on PATH.
func NewEngine(cfg model.OCRConfig, logger *slog.Logger) Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Enabled {
		return UnavailableEngine{Reason: errors.New("ocr disabled in configuration")}
	}

	binary := cfg.Tesseract
	if binary == "" {
		binary = "tesseract"
	}
	if _, err := exec.LookPath(binary); err != nil {
		logger.Warn("tesseract not found, image analysis disabled", "binary", binary, "error", err)
		return UnavailableEngine{Reason: err}
	}

	return NewTesseractEngine(cfg, execRunner{logger: logger}, logger)
}
