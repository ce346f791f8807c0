package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ppiankov/plainspeak/internal/model"
)

// tsvWordLevel is the tesseract TSV level for a single word
const tsvWordLevel = 5

// TSV column indexes
const (
	colLevel = iota
	colPage
	colBlock
	colPar
	colLine
	colWord
	colLeft
	colTop
	colWidth
	colHeight
	colConf
	colText
	tsvColumns
)

// TesseractEngine runs the tesseract CLI in TSV mode
type TesseractEngine struct {
	cfg    model.OCRConfig
	runner Runner
	logger *slog.Logger
}

// NewTesseractEngine creates an engine over the given runner
func NewTesseractEngine(cfg model.OCRConfig, runner Runner, logger *slog.Logger) *TesseractEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	return &TesseractEngine{cfg: cfg, runner: runner, logger: logger}
}

func (t *TesseractEngine) Name() string { return "tesseract" }

// Recognize writes the image to a temporary PNG and parses tesseract's word rows
func (t *TesseractEngine) Recognize(ctx context.Context, img image.Image) ([]model.OCRToken, error) {
	if img == nil {
		return nil, model.InputError("no image provided")
	}

	path, cleanup, err := writeTempPNG(img)
	if err != nil {
		return nil, model.Failure(t.Name(), err)
	}
	defer cleanup()

	// tesseract <file> stdout -l <lang> [--psm N] [--tessdata-dir D] tsv
	args := []string{path, "stdout", "-l", t.cfg.Lang}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, model.Unavailable(t.Name(), err)
		}
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			err = fmt.Errorf("%w: %s", err, truncate(msg, 512))
		}
		return nil, model.Failure(t.Name(), err)
	}

	tokens := ParseTSV(string(out))
	t.logger.Debug("tesseract recognized words", "tokens", len(tokens))
	return tokens, nil
}

// ParseTSV converts tesseract TSV output into word tokens.
// Only word-level rows are kept. Tesseract numbers lines per paragraph, so the
// paragraph is folded into LineIndex to keep (block, line) unique.
func ParseTSV(out string) []model.OCRToken {
	var tokens []model.OCRToken

	for i, ln := range strings.Split(out, "\n") {
		ln = strings.TrimRight(ln, "\r")
		if i == 0 || ln == "" {
			continue // header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < tsvColumns-1 {
			continue
		}

		level, err := strconv.Atoi(cols[colLevel])
		if err != nil || level != tsvWordLevel {
			continue
		}

		conf, err := strconv.ParseFloat(strings.TrimSpace(cols[colConf]), 64)
		if err != nil {
			continue
		}

		text := ""
		if len(cols) > colText {
			text = strings.Join(cols[colText:], "\t")
		}

		tokens = append(tokens, model.OCRToken{
			Text:       text,
			Confidence: conf,
			BlockIndex: atoi(cols[colBlock]),
			LineIndex:  atoi(cols[colPar])*10000 + atoi(cols[colLine]),
			Box: model.BoundingBox{
				X: atoi(cols[colLeft]),
				Y: atoi(cols[colTop]),
				W: atoi(cols[colWidth]),
				H: atoi(cols[colHeight]),
			},
		})
	}

	return tokens
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func writeTempPNG(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "plainspeak-ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("create temp image: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp image: %w", err)
	}
	return f.Name(), cleanup, nil
}
