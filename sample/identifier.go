package sample

import (
	"regexp"
	"strings"
)

var (
	orcidRegex = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	igsnRegex  = regexp.MustCompile(`^10\.\d{4,}/[^\s]+$`)
)

// NormalizeORCID canonicalizes an ORCID value to full URL form.
// Values already carrying an http(s) scheme pass through unchanged;
// bare identifiers are prefixed with https://orcid.org/. Empty input
// yields an empty string.
func NormalizeORCID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://orcid.org/" + raw
}

// NormalizeROR canonicalizes a ROR value. Source data already carries
// full URLs, so this only trims surrounding whitespace.
func NormalizeROR(raw string) string {
	return strings.TrimSpace(raw)
}

// ValidORCID reports whether the value is a well-formed ORCID, either
// bare or in URL form.
func ValidORCID(raw string) bool {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "https://orcid.org/")
	raw = strings.TrimPrefix(raw, "http://orcid.org/")
	return orcidRegex.MatchString(raw)
}

// ValidIGSN reports whether the value looks like a DOI-form IGSN
// (e.g. "10.58052/IGSN.ABC123").
func ValidIGSN(raw string) bool {
	return igsnRegex.MatchString(strings.TrimSpace(raw))
}
