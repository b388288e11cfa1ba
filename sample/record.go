// Package sample defines the intermediate representation produced by a
// bulk IGSN sample-metadata import.
package sample

import (
	"fmt"
	"strings"
)

// Batch is the result of parsing one uploaded import file.
// It is immutable once returned: Rows holds every successfully parsed
// data line in input order, and Errors holds batch-level problems.
// Whenever Errors is non-empty, Rows is empty — a bad header gates all
// row parsing.
type Batch struct {
	Headers []string      `json:"headers"`
	Rows    []*Row        `json:"rows"`
	Errors  []ImportError `json:"errors"`
}

// Row is one parsed data line.
type Row struct {
	// RowNumber is the 1-based line position in the original text,
	// with the header counted as row 1.
	RowNumber int `json:"row_number"`

	// Fields maps the lowercased header name to the raw trimmed cell.
	Fields map[string]string `json:"fields"`

	// MultiValueFields is always populated for every declared
	// multi-value field; an empty cell yields an empty slice, never a
	// missing key.
	MultiValueFields map[string][]string `json:"multi_value_fields"`

	Contributors       []*Contributor       `json:"contributors"`
	Creator            *Creator             `json:"creator,omitempty"`
	GeoLocation        *GeoLocation         `json:"geo_location,omitempty"`
	RelatedIdentifiers []*RelatedIdentifier `json:"related_identifiers"`
	FundingReferences  []*FundingReference  `json:"funding_references"`
	CollectionDate     *DateRange           `json:"collection_date,omitempty"`

	// Extra preserves non-empty cells under headers the import profile
	// does not recognize, so a curator can see them instead of losing
	// them. See extra.go.
	Extra *Extra `json:"extra,omitempty"`
}

// RelatedIdentifier links the sample to another resource.
type RelatedIdentifier struct {
	Identifier   string `json:"identifier"`
	Type         string `json:"type"`
	RelationType string `json:"relation_type"`
}

// FundingReference names a funder for the sample's collection.
type FundingReference struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// DateRange is a pair of canonical partial-date strings. Either side
// may be empty for an open-ended range. Canonical precision levels are
// YYYY, YYYY-MM, and YYYY-MM-DD.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// IsZero reports whether both sides of the range are empty.
func (d DateRange) IsZero() bool {
	return d.Start == "" && d.End == ""
}

// ImportError is a batch-level import problem. Its message names the
// offending column(s) where applicable.
type ImportError struct {
	Message string `json:"message"`
}

func (e ImportError) Error() string {
	return e.Message
}

// Errorf creates an ImportError with a formatted message.
func Errorf(format string, args ...any) ImportError {
	return ImportError{Message: fmt.Sprintf(format, args...)}
}

// NewRow creates an empty Row for the given line position.
func NewRow(rowNumber int) *Row {
	return &Row{
		RowNumber:          rowNumber,
		Fields:             make(map[string]string),
		MultiValueFields:   make(map[string][]string),
		Contributors:       make([]*Contributor, 0),
		RelatedIdentifiers: make([]*RelatedIdentifier, 0),
		FundingReferences:  make([]*FundingReference, 0),
	}
}

// HasErrors reports whether the batch carries any batch-level errors.
func (b *Batch) HasErrors() bool {
	return len(b.Errors) > 0
}

// GetField returns the trimmed cell for a header name, matched
// case-insensitively.
func (r *Row) GetField(name string) string {
	return r.Fields[strings.ToLower(name)]
}

// GetMultiValue returns the parsed list for a declared multi-value
// field, or nil when the field is not declared.
func (r *Row) GetMultiValue(name string) []string {
	return r.MultiValueFields[strings.ToLower(name)]
}

// GetContributorsByType returns contributors with a specific
// contributor type (e.g. "ContactPerson").
func (r *Row) GetContributorsByType(contribType string) []*Contributor {
	var result []*Contributor
	for _, c := range r.Contributors {
		if strings.EqualFold(c.Type, contribType) {
			result = append(result, c)
		}
	}
	return result
}

// GetRelatedIdentifiersByRelation returns related identifiers with a
// specific relation type (e.g. "IsDerivedFrom").
func (r *Row) GetRelatedIdentifiersByRelation(relationType string) []*RelatedIdentifier {
	var result []*RelatedIdentifier
	for _, rel := range r.RelatedIdentifiers {
		if strings.EqualFold(rel.RelationType, relationType) {
			result = append(result, rel)
		}
	}
	return result
}

// IGSN returns the sample's IGSN value.
func (r *Row) IGSN() string {
	return r.Fields["igsn"]
}

// Title returns the sample's title.
func (r *Row) Title() string {
	return r.Fields["title"]
}

// Name returns the sample's name.
func (r *Row) Name() string {
	return r.Fields["name"]
}
