package helpers

import (
	"regexp"
	"strings"
	"time"

	"github.com/geosamples/igsnimport/sample"
)

var (
	// Year only: 2024
	yearOnlyRegex = regexp.MustCompile(`^\d{4}$`)

	// Year-month: 2024-06
	yearMonthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

	// Full date: 2024-06-30
	fullDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Layouts tried for natural-language and regional date values.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"2006/01/02",
	time.RFC3339,
}

// ParseCollectionDate canonicalizes one side of a collection date
// range. Values already at a canonical precision (YYYY, YYYY-MM,
// YYYY-MM-DD) pass through unchanged; anything else is tried against
// the known layouts and normalized to YYYY-MM-DD. A value matching
// nothing passes through raw so the curator sees it instead of losing
// it.
func ParseCollectionDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if yearOnlyRegex.MatchString(raw) || yearMonthRegex.MatchString(raw) || fullDateRegex.MatchString(raw) {
		return raw
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return raw
}

// ParseCollectionDates parses the two sides of a collection date range
// independently, so mixed precision and open-ended ranges are valid.
func ParseCollectionDates(startRaw, endRaw string) sample.DateRange {
	return sample.DateRange{
		Start: ParseCollectionDate(startRaw),
		End:   ParseCollectionDate(endRaw),
	}
}
