package extract

import (
	"regexp"
	"strings"
)

// sentenceBreak matches terminal punctuation followed by whitespace, including
// Unicode spaces such as NBSP and line separators. The punctuation stays with the
// preceding sentence.
var sentenceBreak = regexp.MustCompile(`[.!?][\s\p{Z}\x{85}]+`)

// SplitSentences splits text into sentences on '.', '!' or '?' followed by whitespace.
// The text is trimmed first; empty input yields no sentences.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation byte, always ASCII
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	sentences = append(sentences, text[start:])

	return sentences
}
