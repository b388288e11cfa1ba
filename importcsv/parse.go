package importcsv

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/geosamples/igsnimport/helpers"
	"github.com/geosamples/igsnimport/mapping"
	"github.com/geosamples/igsnimport/sample"
)

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// Profile is the import profile to use; nil selects the embedded
	// IGSN profile.
	Profile *mapping.Profile

	// SourceName is an identifier for the source (for error messages)
	SourceName string
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// Parse reads a pipe-delimited sample export and returns the parsed
// batch. The returned error covers read failures only; every parse
// problem is collected on the batch so a curator sees all of them in
// one pass.
func Parse(r io.Reader, opts *ParseOptions) (*sample.Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return parseText(string(data), opts), nil
}

// ParseString parses a pipe-delimited sample export held in memory.
// It is a pure function: identical input always yields a structurally
// identical batch.
func ParseString(text string) *sample.Batch {
	return parseText(text, nil)
}

func parseText(text string, opts *ParseOptions) *sample.Batch {
	if opts == nil {
		opts = NewParseOptions()
	}
	profile := opts.Profile
	if profile == nil {
		profile = mapping.Default()
	}

	batch := &sample.Batch{
		Rows:   make([]*sample.Row, 0),
		Errors: make([]sample.ImportError, 0),
	}

	if strings.TrimSpace(text) == "" {
		batch.Errors = append(batch.Errors, sample.Errorf("input is empty"))
		return batch
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	headers := splitCells(lines[0], profile.Delimiter())
	batch.Headers = headers

	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}

	if err := validateHeader(lowered, lines[1:], profile); err != nil {
		batch.Errors = append(batch.Errors, *err)
		return batch
	}

	recognized := make(map[string]bool)
	for _, c := range profile.RecognizedColumns() {
		recognized[c] = true
	}

	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Line numbering is literal: header is row 1, so the first
		// data line is row 2 even when blank lines intervene.
		row := parseRow(line, i+2, lowered, profile, recognized)
		batch.Rows = append(batch.Rows, row)
	}

	return batch
}

// validateHeader checks the tokenized header against the profile's
// required column set. A failure gates all row parsing.
func validateHeader(lowered []string, dataLines []string, profile *mapping.Profile) *sample.ImportError {
	hasData := false
	for _, l := range dataLines {
		if strings.TrimSpace(l) != "" {
			hasData = true
			break
		}
	}
	if !hasData {
		e := sample.Errorf("input has no data rows after the header")
		return &e
	}

	present := make(map[string]bool, len(lowered))
	for _, h := range lowered {
		present[h] = true
	}

	var missing []string
	for _, req := range profile.RequiredColumns {
		if !present[strings.ToLower(req)] {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		e := sample.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
		return &e
	}

	return nil
}

func parseRow(line string, rowNumber int, lowered []string, profile *mapping.Profile, recognized map[string]bool) *sample.Row {
	row := sample.NewRow(rowNumber)

	cells := splitCells(line, profile.Delimiter())
	for i, h := range lowered {
		// Extra cells beyond the header are ignored; missing cells
		// read as empty.
		var v string
		if i < len(cells) {
			v = cells[i]
		}
		row.Fields[h] = v
		if v != "" && !recognized[h] {
			row.SetExtra(h, v)
		}
	}

	for field, delim := range profile.MultiValueFields {
		field = strings.ToLower(field)
		row.MultiValueFields[field] = splitMultiValue(row.Fields[field], delim)
	}

	listDelim := profile.ListDelimiter()
	if pl, ok := profile.ParallelLists["contributors"]; ok {
		row.Contributors = extractContributors(row.Fields, pl.Columns, listDelim)
	}
	if pl, ok := profile.ParallelLists["related_identifiers"]; ok {
		row.RelatedIdentifiers = extractRelatedIdentifiers(row.Fields, pl.Columns, listDelim)
	}
	if pl, ok := profile.ParallelLists["funding_references"]; ok {
		row.FundingReferences = extractFundingReferences(row.Fields, pl.Columns, listDelim)
	}

	row.Creator = extractCreator(row.Fields, profile.CreatorColumns)
	row.GeoLocation = extractGeoLocation(row.Fields, profile.GeoColumns)

	dates := helpers.ParseCollectionDates(
		row.Fields[profile.DateColumns.Start],
		row.Fields[profile.DateColumns.End],
	)
	if !dates.IsZero() {
		row.CollectionDate = &dates
	}

	return row
}

func extractContributors(fields map[string]string, cols []string, delim string) []*sample.Contributor {
	records := transposeColumns(fields, cols, delim)
	result := make([]*sample.Contributor, 0, len(records))
	for _, rec := range records {
		c := &sample.Contributor{
			Name:           tokenAt(rec, 0),
			Type:           tokenAt(rec, 1),
			IdentifierType: tokenAt(rec, 3),
		}
		id := tokenAt(rec, 2)
		if strings.EqualFold(c.IdentifierType, "ORCID") {
			id = sample.NormalizeORCID(id)
		}
		c.Identifier = id
		result = append(result, c)
	}
	return result
}

func extractRelatedIdentifiers(fields map[string]string, cols []string, delim string) []*sample.RelatedIdentifier {
	records := transposeColumns(fields, cols, delim)
	result := make([]*sample.RelatedIdentifier, 0, len(records))
	for _, rec := range records {
		result = append(result, &sample.RelatedIdentifier{
			Identifier:   tokenAt(rec, 0),
			Type:         tokenAt(rec, 1),
			RelationType: tokenAt(rec, 2),
		})
	}
	return result
}

func extractFundingReferences(fields map[string]string, cols []string, delim string) []*sample.FundingReference {
	records := transposeColumns(fields, cols, delim)
	result := make([]*sample.FundingReference, 0, len(records))
	for _, rec := range records {
		result = append(result, &sample.FundingReference{
			Name:       tokenAt(rec, 0),
			Identifier: tokenAt(rec, 1),
		})
	}
	return result
}

// extractCreator resolves the sample's collector. Explicit given/family
// columns win; the free-text collector column is the fallback.
// Identifier and affiliation enrichment is independent of where the
// name came from.
func extractCreator(fields map[string]string, cols mapping.CreatorColumns) *sample.Creator {
	given := fields[cols.GivenName]
	family := fields[cols.FamilyName]
	if given == "" && family == "" {
		given, family = helpers.SplitPersonalName(fields[cols.Collector])
	}

	c := &sample.Creator{
		GivenName:   given,
		FamilyName:  family,
		ORCID:       sample.NormalizeORCID(firstNonEmpty(fields, cols.ORCID)),
		ROR:         sample.NormalizeROR(firstNonEmpty(fields, cols.ROR)),
		Affiliation: firstNonEmpty(fields, cols.Affiliation),
	}
	if c.IsZero() {
		return nil
	}
	return c
}

// extractGeoLocation reads the sampling location. A latitude or
// longitude that is absent or fails to parse leaves the whole location
// unset rather than producing half a coordinate pair.
func extractGeoLocation(fields map[string]string, cols mapping.GeoColumns) *sample.GeoLocation {
	lat, latErr := strconv.ParseFloat(fields[cols.Latitude], 64)
	lon, lonErr := strconv.ParseFloat(fields[cols.Longitude], 64)
	if latErr != nil || lonErr != nil {
		return nil
	}

	loc := &sample.GeoLocation{
		Latitude:      lat,
		Longitude:     lon,
		ElevationUnit: fields[cols.ElevationUnit],
		Place:         firstNonEmpty(fields, cols.Place),
	}
	if raw := fields[cols.Elevation]; raw != "" {
		if e, err := strconv.ParseFloat(raw, 64); err == nil {
			loc.Elevation = &e
		}
	}
	return loc
}

// splitCells tokenizes one line on the cell delimiter and trims each
// cell.
func splitCells(line, delim string) []string {
	cells := strings.Split(line, delim)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func tokenAt(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func firstNonEmpty(fields map[string]string, cols []string) string {
	for _, c := range cols {
		if v := fields[c]; v != "" {
			return v
		}
	}
	return ""
}
