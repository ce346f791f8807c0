package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExtractActions returns obligation sentences using the default vocabulary
func ExtractActions(text string) []string {
	return defaultExtractor.ExtractActions(text)
}

// ExtractActions returns every sentence that carries an action cue,
// truncated to MaxActionLen and deduplicated case-insensitively (first occurrence wins).
func (e *Extractor) ExtractActions(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var actions []string
	for _, sentence := range SplitSentences(text) {
		if !e.actionCue.MatchString(sentence) {
			continue
		}
		actions = append(actions, truncateAction(strings.TrimSpace(sentence)))
	}

	return dedupeFold(actions)
}

// IsAction reports whether a single line or sentence carries an action cue
func (e *Extractor) IsAction(s string) bool {
	return e.actionCue.MatchString(s)
}

func truncateAction(s string) string {
	if utf8.RuneCountInString(s) <= MaxActionLen {
		return s
	}
	cut := string([]rune(s)[:actionCutLen])
	return strings.TrimRightFunc(cut, unicode.IsSpace) + Ellipsis
}

// dedupeFold removes case-insensitive duplicates keeping the first occurrence
func dedupeFold(items []string) []string {
	seen := make(map[string]bool)
	var unique []string

	for _, item := range items {
		key := strings.ToLower(item)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, item)
		}
	}

	return unique
}
