// Package sources holds the curated reading list and classifies source authority.
package sources

import (
	"sort"
	"strings"

	"github.com/ppiankov/plainspeak/internal/model"
)

// Entry is one recommended reading
type Entry struct {
	Title     string              `json:"title"`
	URL       string              `json:"url"`
	Summary   string              `json:"summary"`
	Authority model.AuthorityTier `json:"authority,omitempty"`
}

// Result is the response of a topic lookup
type Result struct {
	Topic   string  `json:"topic"`
	Sources []Entry `json:"sources"`
}

// Catalog maps topics to curated entries; Common entries follow every lookup
type Catalog struct {
	Topics map[string][]Entry
	Common []Entry

	authority *AuthorityClassifier
}

// DefaultCatalog returns the built-in reading list
func DefaultCatalog(authority *AuthorityClassifier) *Catalog {
	return &Catalog{
		Topics:    defaultTopics,
		Common:    defaultCommon,
		authority: authority,
	}
}

// Lookup returns the entries for topic (case-insensitive, trimmed) followed by the
// common entries. Unknown topics get only the common entries.
func (c *Catalog) Lookup(topic string) Result {
	topic = strings.ToLower(strings.TrimSpace(topic))

	var entries []Entry
	entries = append(entries, c.Topics[topic]...)
	entries = append(entries, c.Common...)

	if c.authority != nil {
		for i := range entries {
			entries[i].Authority = c.authority.Classify(entries[i].URL)
		}
	}

	return Result{Topic: topic, Sources: entries}
}

// TopicNames returns the curated topics in alphabetical order
func (c *Catalog) TopicNames() []string {
	names := make([]string, 0, len(c.Topics))
	for name := range c.Topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every distinct entry in the catalog
func (c *Catalog) All() []Entry {
	seen := make(map[string]bool)
	var out []Entry
	for _, name := range c.TopicNames() {
		for _, e := range c.Topics[name] {
			if !seen[e.URL] {
				seen[e.URL] = true
				out = append(out, e)
			}
		}
	}
	for _, e := range c.Common {
		if !seen[e.URL] {
			seen[e.URL] = true
			out = append(out, e)
		}
	}
	return out
}

var defaultCommon = []Entry{
	{
		Title:   "USA.gov — Topic Overview",
		URL:     "https://www.usa.gov/",
		Summary: "Official U.S. government portal with links to services and plain-language explainers.",
	},
	{
		Title:   "Wikipedia — Overview",
		URL:     "https://en.wikipedia.org/",
		Summary: "A broad, community-maintained overview. Use as a primer and follow references for depth.",
	},
	{
		Title:   "CRS Reports (Congressional Research Service)",
		URL:     "https://crsreports.congress.gov/",
		Summary: "Nonpartisan backgrounders on legislation and policy. Often dense, but highly credible.",
	},
}

var defaultTopics = map[string][]Entry{
	"climate": {
		{
			Title:   "EPA — Climate Change Basics",
			URL:     "https://www.epa.gov/climatechange",
			Summary: "Plain-language explanations of causes, impacts, and actions from the U.S. EPA.",
		},
		{
			Title:   "NOAA Climate.gov",
			URL:     "https://www.climate.gov/",
			Summary: "Data-driven stories, maps, and explainers from NOAA.",
		},
	},
	"immigration": {
		{
			Title:   "USCIS — Immigration Resources",
			URL:     "https://www.uscis.gov/",
			Summary: "Official forms, timelines, and guides; best for process details.",
		},
		{
			Title:   "American Immigration Council — Policy Explainers",
			URL:     "https://www.americanimmigrationcouncil.org/topics",
			Summary: "Readable explainers on key immigration topics.",
		},
	},
	"student loans": {
		{
			Title:   "Federal Student Aid — Loan Guide",
			URL:     "https://studentaid.gov/loans",
			Summary: "Official info on loan types, repayment, and forgiveness.",
		},
		{
			Title:   "Consumer Finance (CFPB) — Student Loans",
			URL:     "https://www.consumerfinance.gov/paying-for-college/",
			Summary: "Plain-language guides on managing loans and avoiding pitfalls.",
		},
	},
	"elections": {
		{
			Title:   "U.S. Election Assistance Commission",
			URL:     "https://www.eac.gov/",
			Summary: "How voting works, election administration, and best practices.",
		},
		{
			Title:   "Ballotpedia — Election Info",
			URL:     "https://ballotpedia.org/",
			Summary: "Neutral summaries of candidates, ballots, and measures.",
		},
	},
}
