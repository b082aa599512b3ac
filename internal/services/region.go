package services

import (
	"net/url"
	"strings"
)

// phTokens are canonical lowercase tokens for Philippine locations,
// cities, provinces and macro-regions, used for substring matching.
var phTokens = []string{
	"philippin", "philippines", "manila", "metro manila",
	"quezon city", "quezon", "makati", "cebu", "cebu city", "davao",
	"davao city", "iloilo", "bacolod", "baguio", "cagayan", "zamboanga",
	"pasig", "muntinlupa", "taguig", "las piñas", "valenzuela",
	"laguna", "batangas", "visayas", "mindanao", "luzon",
	"butuan", "pampanga", "bulacan", "mindoro", "palawan", "marikina",
	"negros", "bicol",
}

// RegionClassifier decides whether a posting is in scope for the
// target region. It is intentionally conservative: no positive signal
// means out of scope, never a guess.
type RegionClassifier struct {
	tokens []string
}

func NewRegionClassifier(extraTokens []string) *RegionClassifier {
	tokens := make([]string, 0, len(phTokens)+len(extraTokens))
	tokens = append(tokens, phTokens...)
	for _, t := range extraTokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tokens = append(tokens, t)
		}
	}

	return &RegionClassifier{tokens: tokens}
}

// InRegion applies an ordered heuristic chain; the first positive
// signal wins and the default is false.
func (rc *RegionClassifier) InRegion(location, postingURL, description, country string) bool {
	loc := strings.ToLower(location)
	link := strings.ToLower(postingURL)
	desc := strings.ToLower(description)
	c := strings.ToLower(strings.TrimSpace(country))

	// 1. Explicit country field.
	if c != "" {
		if strings.Contains(c, "philippin") || c == "ph" || c == "phil" {
			return true
		}
	}

	// 2. Region TLD on the URL host, or the explicit name anywhere in
	// the URL. The TLD check is anchored to the host suffix so paths
	// like ".php" never count as a positive signal.
	if host := urlHost(link); strings.HasSuffix(host, ".ph") || host == "ph" {
		return true
	}
	if strings.Contains(link, "philippines") {
		return true
	}

	// 3. "remote" paired with the region name.
	if strings.Contains(loc, "remote") && strings.Contains(loc, "philippin") {
		return true
	}
	if strings.Contains(desc, "remote") && strings.Contains(desc, "philippin") {
		return true
	}

	// 4. Canonical location tokens in location or description.
	for _, token := range rc.tokens {
		if strings.Contains(loc, token) || strings.Contains(desc, token) {
			return true
		}
	}

	return false
}

// urlHost extracts the lowercase hostname, tolerating scheme-less
// values. Unparseable input yields "" and therefore no region signal.
func urlHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err == nil && parsed.Host == "" {
		parsed, err = url.Parse("//" + raw)
	}
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
