package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/plainspeak/internal/cache"
	"github.com/ppiankov/plainspeak/internal/extract"
	"github.com/ppiankov/plainspeak/internal/history"
	"github.com/ppiankov/plainspeak/internal/lang"
	"github.com/ppiankov/plainspeak/internal/llm"
	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/ocr"
	"github.com/ppiankov/plainspeak/internal/sources"
)

const (
	// SummaryChars is the length of the extractive summary
	SummaryChars = 400
	// MaxBullets is how many summary sentences become bullets
	MaxBullets = 6
	// NoTextFound replaces the simplified text of an image without text
	NoTextFound = "No text found"
)

// Pipeline turns documents and images into plain-language results.
// It is safe for concurrent use; all mutable state lives in its collaborators.
type Pipeline struct {
	extractor     *extract.Extractor
	summarizer    llm.Summarizer
	summarySource string
	translator    llm.Translator
	ocr           ocr.Engine
	history       history.Store
	cache         cache.Cache
	cacheTTL      time.Duration
	detector      *lang.Detector
	authority     *sources.AuthorityClassifier
	fetcher       *Fetcher
	defaultGrade  int
	maxImageBytes int64
	maxPixels     int64
	logger        *slog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithExtractor replaces the rule-based extractor (custom vocabulary)
func WithExtractor(e *extract.Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithSummarizer sets the summarizer; source names it in results
func WithSummarizer(s llm.Summarizer, source string) Option {
	return func(p *Pipeline) {
		p.summarizer = s
		p.summarySource = source
	}
}

// WithTranslator sets the translator used by Simplify
func WithTranslator(t llm.Translator) Option {
	return func(p *Pipeline) { p.translator = t }
}

// WithOCR sets the OCR engine
func WithOCR(e ocr.Engine) Option {
	return func(p *Pipeline) { p.ocr = e }
}

// WithHistory sets the history store
func WithHistory(s history.Store) Option {
	return func(p *Pipeline) { p.history = s }
}

// WithCache caches analysis results for ttl (0 = cache default)
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(p *Pipeline) {
		p.cache = c
		p.cacheTTL = ttl
	}
}

// WithLanguageDetector enables source language detection in Simplify
func WithLanguageDetector(d *lang.Detector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithAuthority sets the source authority classifier
func WithAuthority(a *sources.AuthorityClassifier) Option {
	return func(p *Pipeline) { p.authority = a }
}

// WithFetcher enables URL-only analyses
func WithFetcher(f *Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithDefaultGrade sets the grade used when a request gives none
func WithDefaultGrade(grade int) Option {
	return func(p *Pipeline) {
		if grade > 0 {
			p.defaultGrade = grade
		}
	}
}

// WithMaxImageBytes bounds accepted image uploads (0 = unbounded)
func WithMaxImageBytes(n int64) Option {
	return func(p *Pipeline) { p.maxImageBytes = n }
}

// WithMaxImagePixels bounds decoded image area (0 = ocr.DefaultMaxPixels)
func WithMaxImagePixels(n int64) Option {
	return func(p *Pipeline) { p.maxPixels = n }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pipeline. Without options it runs fully offline: no summarizer,
// translator or OCR engine, in-memory history and no cache.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:    extract.Default(),
		summarizer:   llm.Unavailable{},
		translator:   llm.Unavailable{},
		ocr:          ocr.UnavailableEngine{},
		history:      history.NewMemoryStore(),
		cache:        cache.Noop{},
		authority:    sources.NewAuthorityClassifier(nil),
		defaultGrade: 8,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// History returns the pipeline's history store
func (p *Pipeline) History() history.Store {
	return p.history
}

// Close releases the history store
func (p *Pipeline) Close() error {
	return p.history.Close()
}

// Analyze produces the structured analysis of a document.
// Text is required unless URLs are given; with URLs only, the pages are fetched.
func (p *Pipeline) Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error) {
	text := normalize(req.Text)
	urls := cleanURLs(req.URLs)
	features := req.EffectiveFeatures()
	if text == "" && len(urls) == 0 {
		return nil, model.InputError("no text or urls provided")
	}

	var warnings []string
	if text == "" {
		text, warnings = p.fetchText(ctx, urls)
	}

	key := cache.Key("analysis", text, strings.Join(urls, "\n"), featureKey(features), p.summarySource)
	var cached model.AnalysisResult
	if cache.GetJSON(p.cache, key, &cached) {
		p.logger.Debug("analysis cache hit", "key", key)
		return &cached, nil
	}

	result := p.analyzeText(ctx, text, urls, features)
	result.Warnings = append(warnings, result.Warnings...)

	if len(warnings) == 0 {
		if err := cache.SetJSON(p.cache, key, result, p.cacheTTL); err != nil {
			p.logger.Warn("cache write failed", "error", err)
		}
	}
	return result, nil
}

func (p *Pipeline) analyzeText(ctx context.Context, text string, urls []string, features model.Features) *model.AnalysisResult {
	refs := model.FirstSourceRef(urls)
	result := &model.AnalysisResult{
		SummarySource:  model.SimplificationTypeExtraction,
		Bullets:        []model.Bullet{},
		Pros:           []model.Bullet{},
		Cons:           []model.Bullet{},
		Stakeholders:   []model.Stakeholder{},
		Actions:        []model.ActionItem{},
		Contradictions: []string{},
		Sources:        p.sourceList(urls),
		Timestamp:      model.NowUnix(),
	}

	if text != "" {
		result.Summary, result.SummarySource = p.summarize(ctx, text, &result.Warnings)
	}

	sentences := extract.SplitSentences(result.Summary)
	if len(sentences) > MaxBullets {
		sentences = sentences[:MaxBullets]
	}
	result.Bullets = bullets(sentences, refs)

	if features.ProsCons {
		pros, cons := p.extractor.ClassifyPolarity(extract.SplitSentences(text))
		result.Pros = bullets(pros, refs)
		result.Cons = bullets(cons, refs)
	}
	if features.Stakeholders {
		if found := p.extractor.DetectStakeholders(text); len(found) > 0 {
			result.Stakeholders = found
		}
	}
	if features.Actions {
		for _, action := range p.extractor.ExtractActions(text) {
			item := model.ActionItem{Text: action, Sources: refs}
			if due, ok := extract.DetectDeadline(action); ok {
				item.Due = &due
			}
			result.Actions = append(result.Actions, item)
		}
	}

	return result
}

// summarize returns the learned summary when available, else the leading
// SummaryChars characters of text
func (p *Pipeline) summarize(ctx context.Context, text string, warnings *[]string) (string, string) {
	summary, err := p.summarizer.Summarize(ctx, text)
	if err == nil && strings.TrimSpace(summary) != "" {
		return strings.TrimSpace(summary), p.summarySource
	}

	switch {
	case err == nil:
	case errors.Is(err, model.ErrEngineUnavailable):
		p.logger.Debug("summarizer unavailable, using extractive summary", "error", err)
	default:
		p.logger.Warn("summarizer failed, using extractive summary", "error", err)
		*warnings = append(*warnings, "summarizer failed; showing the opening of the document instead")
	}

	return leading(text, SummaryChars), model.SimplificationTypeExtraction
}

// fetchText downloads the pages and joins their text. Failures become warnings.
func (p *Pipeline) fetchText(ctx context.Context, urls []string) (string, []string) {
	if p.fetcher == nil {
		return "", []string{"no text provided and page fetching is disabled"}
	}

	results, err := p.fetcher.FetchAll(ctx, urls)
	var texts, warnings []string
	for _, r := range results {
		switch {
		case r.Err != nil:
			p.logger.Warn("fetch failed", "url", r.URL, "error", r.Err)
			warnings = append(warnings, fmt.Sprintf("could not fetch %s: %v", r.URL, r.Err))
		case r.Page != nil && r.Page.Text != "":
			texts = append(texts, r.Page.Text)
		}
	}
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("fetch interrupted: %v", err))
	}
	return normalize(strings.Join(texts, "\n\n")), warnings
}

func (p *Pipeline) sourceList(urls []string) []model.Source {
	if len(urls) == 0 {
		return []model.Source{{ID: "doc", Title: model.DocumentTitle}}
	}
	out := make([]model.Source, 0, len(urls))
	for i, u := range urls {
		out = append(out, model.Source{
			ID:        fmt.Sprintf("src%d", i+1),
			Title:     u,
			URL:       &u,
			Authority: p.authority.Classify(u),
		})
	}
	return out
}

// Simplify rewrites text for a reading grade and optionally translates it
func (p *Pipeline) Simplify(ctx context.Context, req model.SimplifyRequest) (*model.SimplifyResult, error) {
	text := normalize(req.Text)
	if text == "" {
		return nil, model.InputError("no text provided")
	}

	grade := req.TargetGrade
	if grade <= 0 {
		grade = p.defaultGrade
	}

	simplified := p.extractor.Simplify(text, grade)
	actions := nonNil(p.extractor.ExtractActions(text))

	result := &model.SimplifyResult{
		OriginalText:       text,
		SimplifiedText:     simplified,
		SimplificationType: model.SimplificationTypeExtraction,
		Actions:            actions,
		TargetLang:         strings.TrimSpace(req.TargetLang),
		TargetGrade:        grade,
		Readability: model.Readability{
			Before: len(strings.Fields(text)),
			After:  len(strings.Fields(simplified)),
		},
	}

	if p.detector != nil {
		if code, ok := p.detector.Detect(text); ok {
			result.Language = code
		}
	}

	if result.TargetLang != "" {
		translated, err := p.translator.Translate(ctx, simplified, result.TargetLang)
		switch {
		case err == nil:
			result.TranslatedText = &translated
		case errors.Is(err, model.ErrEngineUnavailable):
			p.logger.Debug("translator unavailable", "lang", result.TargetLang)
		default:
			p.logger.Warn("translation failed", "lang", result.TargetLang, "error", err)
		}
	}

	p.record(ctx, history.NewItem(model.HistoryTypeText, text, simplified, actions))
	return result, nil
}

// AnalyzeImage runs OCR over an uploaded image and simplifies the recognized text.
// A missing OCR engine is an error; there is no fallback for the image path.
func (p *Pipeline) AnalyzeImage(ctx context.Context, data []byte) (*model.ImageAnalysis, error) {
	if len(data) == 0 {
		return nil, model.InputError("empty image")
	}
	if p.maxImageBytes > 0 && int64(len(data)) > p.maxImageBytes {
		return nil, model.InputError(fmt.Sprintf("image larger than %d bytes", p.maxImageBytes))
	}

	img, size, err := ocr.DecodeImage(data, p.maxPixels)
	if err != nil {
		return nil, err
	}

	tokens, err := p.ocr.Recognize(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("ocr failed: %w", err)
	}

	recon := ocr.Reconstruct(tokens, size)

	simplified := NoTextFound
	if recon.FullText != "" {
		simplified = p.extractor.Simplify(recon.FullText, p.defaultGrade)
	}
	actions := nonNil(p.extractor.ExtractActions(recon.FullText))

	result := &model.ImageAnalysis{
		ExtractedText:  recon.FullText,
		SimplifiedText: simplified,
		Actions:        actions,
		FullText:       recon.FullText,
		ImageSize:      recon.ImageSize,
		Boxes:          nonNil(recon.Lines),
		ActionBoxes:    nonNil(ocr.ActionBoxes(recon.Lines)),
	}

	p.logger.Debug("image analyzed", "engine", p.ocr.Name(), "lines", len(recon.Lines), "actions", len(actions))
	p.record(ctx, history.NewItem(model.HistoryTypeImage, recon.FullText, simplified, actions))
	return result, nil
}

// record appends to history; failures are logged, never returned
func (p *Pipeline) record(ctx context.Context, item model.HistoryItem) {
	if _, err := p.history.Append(ctx, item); err != nil {
		p.logger.Warn("history append failed", "error", err)
	}
}

func bullets(texts []string, refs []model.SourceRef) []model.Bullet {
	out := make([]model.Bullet, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, model.Bullet{Text: t, Sources: refs})
		}
	}
	return out
}

// leading returns the first n characters of s with an ellipsis when cut
func leading(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + extract.Ellipsis
}

// normalize trims and composes text to NFC so cache keys and regexes see one form
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cleanURLs(urls []string) []string {
	var out []string
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func featureKey(f model.Features) string {
	return fmt.Sprintf("pros_cons=%t,stakeholders=%t,actions=%t", f.ProsCons, f.Stakeholders, f.Actions)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
