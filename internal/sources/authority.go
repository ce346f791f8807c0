package sources

import (
	"net/url"
	"strings"

	"github.com/ppiankov/plainspeak/internal/model"
)

// AuthorityClassifier sorts source URLs into authority tiers by domain
type AuthorityClassifier struct {
	domainMap map[string]model.AuthorityTier
	primary   []string
	secondary []string
}

// NewAuthorityClassifier creates a classifier; nil config uses the defaults
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Authority
	}

	c := &AuthorityClassifier{
		domainMap: make(map[string]model.AuthorityTier, len(config.DomainMap)),
	}
	for host, tier := range config.DomainMap {
		c.domainMap[normalizeHost(host)] = ParseTier(tier)
	}
	for _, d := range config.PrimaryDomains {
		c.primary = append(c.primary, normalizeHost(d))
	}
	for _, d := range config.SecondaryDomains {
		c.secondary = append(c.secondary, normalizeHost(d))
	}
	return c
}

// Classify returns the tier of rawURL. Unparseable or host-less URLs are TierUnknown.
//
// Order: explicit domain map, primary domains (suffix match), secondary domains,
// then .gov/.mil/.edu/.ac.uk heuristics. Everything else is tertiary.
func (c *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Hostname() == "" {
		return model.TierUnknown
	}
	host := normalizeHost(parsed.Hostname())

	if tier, ok := c.domainMap[host]; ok {
		return tier
	}
	if matchesDomain(host, c.primary) {
		return model.TierPrimary
	}
	if matchesDomain(host, c.secondary) {
		return model.TierSecondary
	}

	for _, suffix := range []string{".gov", ".mil", ".edu", ".ac.uk"} {
		if strings.HasSuffix(host, suffix) {
			return model.TierPrimary
		}
	}

	return model.TierTertiary
}

// matchesDomain reports whether host equals a domain or is a subdomain of one.
// A bare TLD entry like "gov" matches any *.gov host.
func matchesDomain(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	return strings.TrimPrefix(host, "www.")
}

// ParseTier converts a tier name or number to AuthorityTier
func ParseTier(tier string) model.AuthorityTier {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "primary", "1":
		return model.TierPrimary
	case "secondary", "2":
		return model.TierSecondary
	case "tertiary", "3":
		return model.TierTertiary
	default:
		return model.TierTertiary
	}
}
