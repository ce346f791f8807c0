package extract

import (
	"regexp"

	"github.com/ppiankov/plainspeak/internal/model"
)

// properNoun matches two or more consecutive capitalized words
var properNoun = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)

// DetectStakeholders finds stakeholders using the default vocabulary
func DetectStakeholders(text string) []model.Stakeholder {
	return defaultExtractor.DetectStakeholders(text)
}

// DetectStakeholders returns known civic entities (vocabulary order) followed by up to
// MaxDetectedNames capitalized name phrases not already listed, capped at MaxStakeholders.
func (e *Extractor) DetectStakeholders(text string) []model.Stakeholder {
	var found []model.Stakeholder
	names := make(map[string]bool)

	for _, entity := range e.civic {
		if entity.pattern.MatchString(text) {
			found = append(found, model.Stakeholder{Name: entity.name, Role: model.RoleStakeholder})
			names[entity.name] = true
		}
	}

	for _, name := range properNoun.FindAllString(text, MaxDetectedNames) {
		if names[name] {
			continue
		}
		names[name] = true
		found = append(found, model.Stakeholder{Name: name, Role: model.RoleMentioned})
	}

	if len(found) > MaxStakeholders {
		found = found[:MaxStakeholders]
	}
	return found
}
