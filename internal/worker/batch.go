package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/plainspeak/internal/model"
)

// DocumentExtensions are the files picked up from a batch directory
var DocumentExtensions = []string{".txt", ".md"}

// Analyzer analyzes one document
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error)
}

// Document is one batch entry: a local file or a URL to fetch
type Document struct {
	Path string
	URL  string
}

// Name identifies the document in logs and output file names
func (d Document) Name() string {
	if d.URL != "" {
		return d.URL
	}
	return d.Path
}

// DocumentResult is the outcome of analyzing one document
type DocumentResult struct {
	Document Document
	Result   *model.AnalysisResult
	Error    error
}

// BatchProcessor analyzes many documents concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	features    model.Features
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int, features model.Features) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		features:    features,
	}
}

// Process analyzes docs and returns results in input order
func (b *BatchProcessor) Process(ctx context.Context, docs []Document) []DocumentResult {
	outcomes := Run(ctx, b.concurrency, docs, b.analyze)

	results := make([]DocumentResult, 0, len(outcomes))
	for _, o := range outcomes {
		results = append(results, DocumentResult{Document: o.Input, Result: o.Value, Error: o.Err})
	}
	return results
}

func (b *BatchProcessor) analyze(ctx context.Context, doc Document) (*model.AnalysisResult, error) {
	features := b.features
	req := model.AnalyzeRequest{Features: &features}

	if doc.URL != "" {
		req.URLs = []string{doc.URL}
	} else {
		data, err := os.ReadFile(doc.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", doc.Path, err)
		}
		req.Text = string(data)
	}

	return b.analyzer.Analyze(ctx, req)
}

// LoadDocuments returns the documents named by path: every .txt/.md file when path is
// a directory, otherwise one entry per line of the list file. List lines may be
// URLs or file paths relative to the list; blanks and # comments are skipped.
func LoadDocuments(path string) ([]Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return documentsInDir(path)
	}
	return documentsFromList(path)
}

func documentsInDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !hasDocumentExt(e.Name()) {
			continue
		}
		docs = append(docs, Document{Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func documentsFromList(listPath string) ([]Document, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(listPath)
	var docs []Document
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true

		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			docs = append(docs, Document{URL: line})
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		docs = append(docs, Document{Path: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return docs, nil
}

func hasDocumentExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range DocumentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
