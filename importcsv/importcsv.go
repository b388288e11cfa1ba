// Package importcsv parses pipe-delimited IGSN sample-metadata
// exports into the sample intermediate representation.
package importcsv

import "bytes"

// Format describes the pipe-delimited IGSN import format.
type Format struct{}

// Name returns the format identifier.
func (f *Format) Name() string {
	return "igsn"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Pipe-delimited IGSN sample registration export"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"csv", "psv", "txt"}
}

// CanParse returns true if the input looks like a pipe-delimited
// sample export.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 {
		return false
	}

	// Structured formats start with { [ or <
	if peek[0] == '{' || peek[0] == '[' || peek[0] == '<' {
		return false
	}

	return bytes.Contains(peek, []byte("|"))
}
