// Package helpers provides utility functions for parsing loosely
// structured import values.
package helpers

import (
	"regexp"
	"strings"
)

// Pattern for "Family, Given" format
var invertedNameRegex = regexp.MustCompile(`^([^,]+),\s*(.*)$`)

// SplitPersonalName resolves a free-text collector name into given and
// family components. Strategies are tried in order: comma split, last
// whitespace token, single token. Each later strategy only runs when
// the earlier ones do not apply.
func SplitPersonalName(raw string) (given, family string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	strategies := []func(string) (string, string, bool){
		splitOnComma,
		splitOnLastSpace,
		singleToken,
	}
	for _, strategy := range strategies {
		if g, f, ok := strategy(raw); ok {
			return g, f
		}
	}
	return "", ""
}

// splitOnComma handles "Family, Given". Only the first comma splits;
// anything after it belongs to the given name.
func splitOnComma(name string) (given, family string, ok bool) {
	matches := invertedNameRegex.FindStringSubmatch(name)
	if matches == nil {
		return "", "", false
	}
	return strings.TrimSpace(matches[2]), strings.TrimSpace(matches[1]), true
}

// splitOnLastSpace handles "Given Middle Family": the last token is
// the family name, everything before it rejoins as the given name.
func splitOnLastSpace(name string) (given, family string, ok bool) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1], true
}

// singleToken treats a bare mononym as a family name.
func singleToken(name string) (given, family string, ok bool) {
	if len(strings.Fields(name)) != 1 {
		return "", "", false
	}
	return "", strings.TrimSpace(name), true
}
