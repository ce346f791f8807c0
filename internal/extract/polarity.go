package extract

import "strings"

// ClassifyPolarity splits sentences into pros and cons using the default vocabulary
func ClassifyPolarity(sentences []string) (pros, cons []string) {
	return defaultExtractor.ClassifyPolarity(sentences)
}

// ClassifyPolarity puts a sentence in pros when it matches only the pros vocabulary and in
// cons when it matches only the cons vocabulary. Ambiguous sentences are dropped.
// Both buckets keep input order and are capped at MaxPolarity.
func (e *Extractor) ClassifyPolarity(sentences []string) (pros, cons []string) {
	for _, s := range sentences {
		isPro := e.pros.MatchString(s)
		isCon := e.cons.MatchString(s)

		switch {
		case isPro && !isCon:
			if len(pros) < MaxPolarity {
				pros = append(pros, strings.TrimSpace(s))
			}
		case isCon && !isPro:
			if len(cons) < MaxPolarity {
				cons = append(cons, strings.TrimSpace(s))
			}
		}
	}
	return pros, cons
}
