package extract

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis marks truncated text
const Ellipsis = "..."

// fallbackChars is how much of the original input is returned when simplification yields nothing
const fallbackChars = 200

// Profile controls how aggressively text is simplified for a reading grade
type Profile struct {
	SentenceBudget      int  // Leading sentences kept
	SimplifyVocabulary  bool // Apply the replacement table
	MaxWordsPerSentence int  // 0 means no cap
}

// ProfileForGrade maps a target reading grade to a simplification profile.
// Lower grades never get a larger budget or a looser word cap.
func ProfileForGrade(grade int) Profile {
	switch {
	case grade <= 5:
		return Profile{SentenceBudget: 4, SimplifyVocabulary: true, MaxWordsPerSentence: 30}
	case grade <= 8:
		return Profile{SentenceBudget: 4}
	case grade <= 12:
		return Profile{SentenceBudget: 7}
	default:
		return Profile{SentenceBudget: 10}
	}
}

// Simplify rewrites text toward the target reading grade using the default vocabulary
func Simplify(text string, grade int) string {
	return defaultExtractor.Simplify(text, grade)
}

// Simplify rewrites text toward the target reading grade.
// The result is never empty for non-empty input.
func (e *Extractor) Simplify(text string, grade int) string {
	profile := ProfileForGrade(grade)

	sentences := SplitSentences(text)
	if len(sentences) > profile.SentenceBudget {
		sentences = sentences[:profile.SentenceBudget]
	}

	var kept []string
	for _, sentence := range sentences {
		s := strings.TrimSpace(sentence)
		if s == "" {
			continue
		}
		if profile.SimplifyVocabulary {
			s = e.replaceVocabulary(s)
		}
		if profile.MaxWordsPerSentence > 0 {
			s = capWords(s, profile.MaxWordsPerSentence)
		}
		kept = append(kept, s)
	}

	simplified := joinSentences(kept)
	if simplified == "" {
		return truncateRunes(text, fallbackChars)
	}
	// Only a period (or an ellipsis) closes the result; "?" and "!" still get one.
	if !strings.HasSuffix(simplified, ".") {
		simplified += "."
	}
	return simplified
}

// replaceVocabulary applies each replacement pair once, in table order
func (e *Extractor) replaceVocabulary(s string) string {
	for _, r := range e.replacements {
		s = r.pattern.ReplaceAllLiteralString(s, r.with)
	}
	return s
}

func capWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + Ellipsis
}

// joinSentences joins with ". " and only a space where a sentence already ends a thought
func joinSentences(sentences []string) string {
	var b strings.Builder
	for i, s := range sentences {
		if i > 0 {
			if endsTerminal(sentences[i-1]) {
				b.WriteString(" ")
			} else {
				b.WriteString(". ")
			}
		}
		b.WriteString(s)
	}
	return b.String()
}

func endsTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
