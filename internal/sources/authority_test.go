package sources

import (
	"testing"

	"github.com/ppiankov/plainspeak/internal/model"
)

func TestAuthorityClassifier_Defaults(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{"https://www.epa.gov/climatechange", model.TierPrimary, "gov TLD from primary list"},
		{"https://crsreports.congress.gov/", model.TierPrimary, "congress.gov subdomain"},
		{"https://www.legislation.gov.uk/ukpga/1998/42", model.TierPrimary, "legislation.gov.uk"},
		{"https://en.wikipedia.org/wiki/Zoning", model.TierSecondary, "wikipedia subdomain"},
		{"https://ballotpedia.org/", model.TierSecondary, "ballotpedia"},
		{"https://www.mit.edu/research", model.TierPrimary, "edu heuristic"},
		{"https://example.com/post", model.TierTertiary, "unlisted domain"},
		{"not a url", model.TierUnknown, "no host"},
		{"", model.TierUnknown, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_DomainMapWins(t *testing.T) {
	config := &model.AuthorityConfig{
		PrimaryDomains: []string{"gov"},
		DomainMap: map[string]string{
			"www.usa.gov":   "secondary",
			"blog.city.org": "primary",
		},
	}

	classifier := NewAuthorityClassifier(config)

	if got := classifier.Classify("https://usa.gov/"); got != model.TierSecondary {
		t.Errorf("Expected domain map to override primary list, got %v", got)
	}
	if got := classifier.Classify("https://blog.city.org/notice"); got != model.TierPrimary {
		t.Errorf("Expected primary from domain map, got %v", got)
	}
	if got := classifier.Classify("https://city.org/notice"); got != model.TierTertiary {
		t.Errorf("Expected parent domain to stay tertiary, got %v", got)
	}
}

func TestAuthorityClassifier_SuffixNotSubstring(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{
		SecondaryDomains: []string{"wikipedia.org"},
	})

	if got := classifier.Classify("https://notwikipedia.org/"); got != model.TierTertiary {
		t.Errorf("Expected tertiary for look-alike domain, got %v", got)
	}
}

func TestParseTier(t *testing.T) {
	tests := map[string]model.AuthorityTier{
		"primary":   model.TierPrimary,
		"Secondary": model.TierSecondary,
		"3":         model.TierTertiary,
		"bogus":     model.TierTertiary,
	}
	for in, want := range tests {
		if got := ParseTier(in); got != want {
			t.Errorf("ParseTier(%q): expected %v, got %v", in, want, got)
		}
	}
}
