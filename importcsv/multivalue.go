package importcsv

import "strings"

// splitMultiValue splits a delimited cell into trimmed tokens,
// dropping empty ones and preserving order. An empty cell yields an
// empty slice, never nil, so multi-value fields are always safe to
// iterate.
func splitMultiValue(value, delim string) []string {
	result := make([]string, 0)
	if strings.TrimSpace(value) == "" {
		return result
	}
	for _, p := range strings.Split(value, delim) {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// transposeColumns reads a group of parallel columns, splits each cell
// on the list delimiter, and zips the lists positionally into one
// record per index. Record count is the longest list's length; shorter
// or missing columns contribute empty strings at the missing
// positions. Empty tokens inside a list are kept so positions stay
// aligned across columns; records whose every token is empty are
// dropped.
func transposeColumns(fields map[string]string, cols []string, delim string) [][]string {
	lists := make([][]string, len(cols))
	longest := 0
	for i, col := range cols {
		lists[i] = splitListAligned(fields[col], delim)
		if len(lists[i]) > longest {
			longest = len(lists[i])
		}
	}

	records := make([][]string, 0, longest)
	for idx := 0; idx < longest; idx++ {
		record := make([]string, len(cols))
		empty := true
		for i := range cols {
			if idx < len(lists[i]) {
				record[i] = lists[i][idx]
			}
			if record[i] != "" {
				empty = false
			}
		}
		if !empty {
			records = append(records, record)
		}
	}
	return records
}

// splitListAligned splits a parallel-list cell into trimmed tokens,
// keeping empty tokens in place.
func splitListAligned(value, delim string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, delim)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
