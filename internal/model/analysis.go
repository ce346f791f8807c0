package model

import "time"

// Role tags attached to detected stakeholders
const (
	RoleStakeholder = "Stakeholder" // Known civic-entity vocabulary match
	RoleMentioned   = "Mentioned"   // Heuristically detected proper-noun phrase
)

// DocumentTitle is the generic source title used when no URL was supplied
const DocumentTitle = "Document"

// AnalysisResult is the structured output of a document analysis
type AnalysisResult struct {
	Summary        string        `json:"summary"`
	SummarySource  string        `json:"summary_source"` // "extraction" or the provider name
	Bullets        []Bullet      `json:"bullets"`
	Pros           []Bullet      `json:"pros"`
	Cons           []Bullet      `json:"cons"`
	Stakeholders   []Stakeholder `json:"stakeholders"`
	Actions        []ActionItem  `json:"actions"`
	Contradictions []string      `json:"contradictions"` // Always empty in the deterministic path
	Sources        []Source      `json:"sources"`
	Warnings       []string      `json:"warnings,omitempty"`
	Timestamp      int64         `json:"ts"`
}

// Bullet is a sentence with source attribution
type Bullet struct {
	Text    string      `json:"text"`
	Sources []SourceRef `json:"sources"`
}

// SourceRef attributes a piece of text to a source
type SourceRef struct {
	Title string  `json:"title"`
	URL   *string `json:"url"`
}

// Source is an entry of the result's source list
type Source struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	URL       *string       `json:"url"`
	Authority AuthorityTier `json:"authority,omitempty"`
}

// Stakeholder is a civic entity or a named person/organisation mentioned in the text
type Stakeholder struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ActionItem is an obligation sentence with an optional deadline
type ActionItem struct {
	Text    string      `json:"text"`
	Due     *string     `json:"due"`
	Sources []SourceRef `json:"sources"`
}

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not classified (e.g., no URL)
	TierPrimary   AuthorityTier = 1 // Government, legislation, official documents
	TierSecondary AuthorityTier = 2 // Encyclopedias, reputable media, policy explainers
	TierTertiary  AuthorityTier = 3 // Everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// MarshalText encodes the tier by name in JSON and YAML output
func (t AuthorityTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name; unrecognised names decode to TierUnknown
func (t *AuthorityTier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "primary":
		*t = TierPrimary
	case "secondary":
		*t = TierSecondary
	case "tertiary":
		*t = TierTertiary
	default:
		*t = TierUnknown
	}
	return nil
}

// FirstSourceRef returns the attribution used for every bullet: the first URL, or a bare "Document".
func FirstSourceRef(urls []string) []SourceRef {
	ref := SourceRef{Title: DocumentTitle}
	if len(urls) > 0 {
		u := urls[0]
		ref.URL = &u
	}
	return []SourceRef{ref}
}

// NowUnix is the timestamp source for results (injectable for tests)
var NowUnix = func() int64 { return time.Now().Unix() }
