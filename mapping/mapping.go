// Package mapping provides the import profile describing how the
// columns of a sample import file map onto the intermediate
// representation.
package mapping

import (
	"sort"
	"strings"
)

// Profile represents a complete column mapping for one import format.
// Column names in a profile are lowercase; the parser lowercases
// headers before lookup.
type Profile struct {
	// Name is the profile identifier
	Name string `yaml:"name" json:"name"`

	// Format is the source format (e.g., "igsn-csv")
	Format string `yaml:"format" json:"format"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// RequiredColumns must all be present in the header row
	RequiredColumns []string `yaml:"required_columns" json:"required_columns"`

	// MultiValueFields maps a field name to its sub-delimiter
	MultiValueFields map[string]string `yaml:"multi_value_fields,omitempty" json:"multi_value_fields,omitempty"`

	// ParallelLists declares the row-wide parallel column groups that
	// transpose into per-item records
	ParallelLists map[string]ParallelList `yaml:"parallel_lists,omitempty" json:"parallel_lists,omitempty"`

	// CreatorColumns names the column shapes the collector may arrive in
	CreatorColumns CreatorColumns `yaml:"creator_columns,omitempty" json:"creator_columns,omitempty"`

	// GeoColumns names the sampling-location columns
	GeoColumns GeoColumns `yaml:"geo_columns,omitempty" json:"geo_columns,omitempty"`

	// DateColumns names the collection date range columns
	DateColumns DateColumns `yaml:"date_columns,omitempty" json:"date_columns,omitempty"`

	// Options contains format-specific options
	Options ProfileOptions `yaml:"options,omitempty" json:"options,omitempty"`
}

// ProfileOptions contains format-specific parsing options.
type ProfileOptions struct {
	// Delimiter separates cells on a line (default "|")
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`

	// ListDelimiter separates entries inside parallel-list cells
	// (default ";")
	ListDelimiter string `yaml:"list_delimiter,omitempty" json:"list_delimiter,omitempty"`
}

// ParallelList is one group of parallel columns. Each cell in the
// group holds a delimited list; lists are zipped positionally into one
// record per index.
type ParallelList struct {
	Columns []string `yaml:"columns" json:"columns"`
}

// CreatorColumns names the columns a collector can be read from.
// Preference slices run first-non-empty-wins.
type CreatorColumns struct {
	GivenName   string   `yaml:"given_name" json:"given_name"`
	FamilyName  string   `yaml:"family_name" json:"family_name"`
	Collector   string   `yaml:"collector" json:"collector"`
	ORCID       []string `yaml:"orcid" json:"orcid"`
	ROR         []string `yaml:"ror" json:"ror"`
	Affiliation []string `yaml:"affiliation" json:"affiliation"`
}

// GeoColumns names the sampling-location columns. Place is a
// preference list.
type GeoColumns struct {
	Latitude      string   `yaml:"latitude" json:"latitude"`
	Longitude     string   `yaml:"longitude" json:"longitude"`
	Elevation     string   `yaml:"elevation" json:"elevation"`
	ElevationUnit string   `yaml:"elevation_unit" json:"elevation_unit"`
	Place         []string `yaml:"place" json:"place"`
}

// DateColumns names the collection date range columns.
type DateColumns struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Delimiter returns the cell delimiter, defaulting to "|".
func (p *Profile) Delimiter() string {
	if p.Options.Delimiter == "" {
		return "|"
	}
	return p.Options.Delimiter
}

// ListDelimiter returns the parallel-list delimiter, defaulting to ";".
func (p *Profile) ListDelimiter() string {
	if p.Options.ListDelimiter == "" {
		return ";"
	}
	return p.Options.ListDelimiter
}

// MultiValueDelimiter returns the sub-delimiter for a declared
// multi-value field.
func (p *Profile) MultiValueDelimiter(field string) (string, bool) {
	d, ok := p.MultiValueFields[strings.ToLower(field)]
	return d, ok
}

// RecognizedColumns returns the sorted set of every column the profile
// gives meaning to. Header cells outside this set are preserved on the
// row's extra fields rather than parsed.
func (p *Profile) RecognizedColumns() []string {
	seen := make(map[string]bool)
	add := func(cols ...string) {
		for _, c := range cols {
			c = strings.ToLower(strings.TrimSpace(c))
			if c != "" {
				seen[c] = true
			}
		}
	}

	add(p.RequiredColumns...)
	for f := range p.MultiValueFields {
		add(f)
	}
	for _, pl := range p.ParallelLists {
		add(pl.Columns...)
	}
	add(p.CreatorColumns.GivenName, p.CreatorColumns.FamilyName, p.CreatorColumns.Collector)
	add(p.CreatorColumns.ORCID...)
	add(p.CreatorColumns.ROR...)
	add(p.CreatorColumns.Affiliation...)
	add(p.GeoColumns.Latitude, p.GeoColumns.Longitude, p.GeoColumns.Elevation, p.GeoColumns.ElevationUnit)
	add(p.GeoColumns.Place...)
	add(p.DateColumns.Start, p.DateColumns.End)

	cols := make([]string, 0, len(seen))
	for c := range seen {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// IsRecognized reports whether a lowercased header name carries import
// semantics under this profile.
func (p *Profile) IsRecognized(col string) bool {
	col = strings.ToLower(strings.TrimSpace(col))
	for _, c := range p.RecognizedColumns() {
		if c == col {
			return true
		}
	}
	return false
}
