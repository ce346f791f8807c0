package extract

import "regexp"

// Deadline patterns in priority order; the first capture group is the deadline.
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bby\s+([A-Z][a-z]+\s+\d{1,2})\b`),             // by March 5
	regexp.MustCompile(`(?i)\bdue\s+(\d{1,2}/\d{1,2}(?:/\d{2,4})?)\b`), // due 3/5, due 03/05/2025
}

// DetectDeadline pulls a date-like deadline out of a single sentence
func DetectDeadline(sentence string) (string, bool) {
	for _, re := range deadlinePatterns {
		if m := re.FindStringSubmatch(sentence); m != nil {
			return m[1], true
		}
	}
	return "", false
}
