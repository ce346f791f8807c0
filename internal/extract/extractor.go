package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Result caps
const (
	MaxActionLen     = 240
	actionCutLen     = 237
	MaxPolarity      = 8
	MaxStakeholders  = 8
	MaxDetectedNames = 5
)

// Extractor runs the rule-based classifiers over plain text.
// It holds only compiled, read-only tables and is safe for concurrent use.
type Extractor struct {
	replacements []compiledReplacement
	actionCue    *regexp.Regexp
	pros         *regexp.Regexp
	cons         *regexp.Regexp
	civic        []civicEntity
}

type compiledReplacement struct {
	pattern *regexp.Regexp
	with    string
}

type civicEntity struct {
	name    string
	pattern *regexp.Regexp
}

// NewExtractor compiles a vocabulary into an extractor
func NewExtractor(v Vocabulary) (*Extractor, error) {
	e := &Extractor{}

	for _, r := range v.Replacements {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(r.Phrase) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("replacement %q: %w", r.Phrase, err)
		}
		e.replacements = append(e.replacements, compiledReplacement{pattern: re, with: r.With})
	}

	var err error
	if e.actionCue, err = compileAlternation(v.ActionCues); err != nil {
		return nil, fmt.Errorf("action cues: %w", err)
	}
	if e.pros, err = compileAlternation(v.Pros); err != nil {
		return nil, fmt.Errorf("pros vocabulary: %w", err)
	}
	if e.cons, err = compileAlternation(v.Cons); err != nil {
		return nil, fmt.Errorf("cons vocabulary: %w", err)
	}

	for _, name := range v.CivicEntities {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("civic entity %q: %w", name, err)
		}
		e.civic = append(e.civic, civicEntity{name: name, pattern: re})
	}

	return e, nil
}

// MustNewExtractor is NewExtractor for static vocabularies
func MustNewExtractor(v Vocabulary) *Extractor {
	e, err := NewExtractor(v)
	if err != nil {
		panic(err)
	}
	return e
}

// CompileCues builds a case-insensitive whole-word matcher from regexp fragments
func CompileCues(fragments []string) (*regexp.Regexp, error) {
	return compileAlternation(fragments)
}

// MustCompileCues is CompileCues for static tables
func MustCompileCues(fragments []string) *regexp.Regexp {
	re, err := compileAlternation(fragments)
	if err != nil {
		panic(err)
	}
	return re
}

func compileAlternation(fragments []string) (*regexp.Regexp, error) {
	if len(fragments) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(fragments, "|") + `)\b`)
}

var defaultExtractor = MustNewExtractor(DefaultVocabulary())

// Default returns the extractor built from the default vocabulary
func Default() *Extractor {
	return defaultExtractor
}
