package importcsv

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/geosamples/igsnimport/mapping"
)

func TestParseEndToEnd(t *testing.T) {
	batch := ParseString("igsn|title|name\n10.58052/IGSN.1234|Test Title|Sample Name")

	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(batch.Rows))
	}

	row := batch.Rows[0]
	if row.IGSN() != "10.58052/IGSN.1234" {
		t.Errorf("igsn = %q", row.IGSN())
	}
	if row.Title() != "Test Title" {
		t.Errorf("title = %q", row.Title())
	}
	if row.Name() != "Sample Name" {
		t.Errorf("name = %q", row.Name())
	}
}

func TestParseHeaderGate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMention string
	}{
		{
			name:        "empty input",
			input:       "",
			wantMention: "empty",
		},
		{
			name:        "whitespace only",
			input:       "  \n  ",
			wantMention: "empty",
		},
		{
			name:        "header only",
			input:       "igsn|title|name",
			wantMention: "no data rows",
		},
		{
			name:        "header with blank lines only",
			input:       "igsn|title|name\n\n   \n",
			wantMention: "no data rows",
		},
		{
			name:        "missing one required column",
			input:       "igsn|title\nA|B",
			wantMention: "name",
		},
		{
			name:        "missing two required columns",
			input:       "igsn|other\nA|B",
			wantMention: "title, name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := ParseString(tt.input)

			if len(batch.Errors) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(batch.Errors), batch.Errors)
			}
			if !strings.Contains(batch.Errors[0].Message, tt.wantMention) {
				t.Errorf("error %q should mention %q", batch.Errors[0].Message, tt.wantMention)
			}
			if len(batch.Rows) != 0 {
				t.Errorf("header error must leave rows empty, got %d", len(batch.Rows))
			}
		})
	}
}

func TestParseRowNumbering(t *testing.T) {
	batch := ParseString("igsn|title|name\nA|B|C\nD|E|F")
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}
	if len(batch.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(batch.Rows))
	}
	if batch.Rows[0].RowNumber != 2 || batch.Rows[1].RowNumber != 3 {
		t.Errorf("row numbers = %d, %d; want 2, 3", batch.Rows[0].RowNumber, batch.Rows[1].RowNumber)
	}
}

func TestParseBlankLinesKeepLiteralNumbering(t *testing.T) {
	batch := ParseString("igsn|title|name\nA|B|C\n\nD|E|F\n")
	if len(batch.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(batch.Rows))
	}
	// The blank line is skipped but still occupies line 3.
	if batch.Rows[1].RowNumber != 4 {
		t.Errorf("second row number = %d, want 4", batch.Rows[1].RowNumber)
	}
}

func TestParseIdempotent(t *testing.T) {
	input := "igsn|title|name|collector|latitude|longitude|contributor|contributorType\n" +
		"10.58052/IGSN.1|T|S|Doe, John|40.6|-75.4|Smith, Alex|DataCollector\n"

	a, err := json.Marshal(ParseString(input))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(ParseString(input))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("identical input must produce structurally identical batches")
	}
}

func TestParseCRLFAndCaseInsensitiveHeaders(t *testing.T) {
	batch := ParseString("IGSN|Title|NAME\r\nA|B|C\r\n")
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(batch.Rows))
	}
	if batch.Rows[0].IGSN() != "A" {
		t.Errorf("igsn = %q, want A", batch.Rows[0].IGSN())
	}
	if !reflect.DeepEqual(batch.Headers, []string{"IGSN", "Title", "NAME"}) {
		t.Errorf("headers = %v", batch.Headers)
	}
}

func TestParseCellTrimmingAndColumnCountMismatch(t *testing.T) {
	// Second row is short a cell, third carries an extra one.
	batch := ParseString("igsn|title|name\n A | B | C \nD|E\nF|G|H|extra")
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}
	if len(batch.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(batch.Rows))
	}

	if got := batch.Rows[0].Fields; got["igsn"] != "A" || got["title"] != "B" || got["name"] != "C" {
		t.Errorf("cells not trimmed: %v", got)
	}
	if got := batch.Rows[1].GetField("name"); got != "" {
		t.Errorf("missing cell should read empty, got %q", got)
	}
	if got := batch.Rows[2].GetField("name"); got != "H" {
		t.Errorf("name = %q, want H", got)
	}
}

func TestParseMultiValueFields(t *testing.T) {
	batch := ParseString(
		"igsn|title|name|sample_other_names|geological_age|geological_unit\n" +
			"A|B|C|Alias 1; Alias 2; Alias 3|Jurassic, Cretaceous|\n")
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}

	row := batch.Rows[0]
	if got := row.GetMultiValue("sample_other_names"); !reflect.DeepEqual(got, []string{"Alias 1", "Alias 2", "Alias 3"}) {
		t.Errorf("sample_other_names = %v", got)
	}
	if got := row.GetMultiValue("geological_age"); !reflect.DeepEqual(got, []string{"Jurassic", "Cretaceous"}) {
		t.Errorf("geological_age = %v", got)
	}
	// Empty cell is an empty slice, not a missing key.
	got, ok := row.MultiValueFields["geological_unit"]
	if !ok {
		t.Fatal("geological_unit must be present")
	}
	if len(got) != 0 {
		t.Errorf("geological_unit = %v, want empty", got)
	}
}

func TestParseContributors(t *testing.T) {
	batch := ParseString(
		"igsn|title|name|contributor|contributorType|identifier|identifierType\n" +
			"A|B|C|Doe, Jane; Smith, Alex|ContactPerson; DataCollector|0000-0001-2345-6789|ORCID\n")
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}

	row := batch.Rows[0]
	if len(row.Contributors) != 2 {
		t.Fatalf("got %d contributors, want 2", len(row.Contributors))
	}

	first := row.Contributors[0]
	if first.Name != "Doe, Jane" || first.Type != "ContactPerson" {
		t.Errorf("first contributor = %+v", first)
	}
	if first.Identifier != "https://orcid.org/0000-0001-2345-6789" {
		t.Errorf("ORCID identifier not normalized: %q", first.Identifier)
	}
	if first.IdentifierType != "ORCID" {
		t.Errorf("identifier type = %q", first.IdentifierType)
	}

	// The identifier lists are shorter than the name list.
	second := row.Contributors[1]
	if second.Name != "Smith, Alex" || second.Type != "DataCollector" {
		t.Errorf("second contributor = %+v", second)
	}
	if second.Identifier != "" || second.IdentifierType != "" {
		t.Errorf("second contributor should have no identifier: %+v", second)
	}
}

func TestParseRelatedIdentifiers(t *testing.T) {
	batch := ParseString(
		"igsn|title|name|relatedIdentifier|relatedIdentifierType|relationtype\n" +
			"A|B|C|10.1234/parent; https://example.org/x|DOI; URL|IsDerivedFrom; IsDocumentedBy\n")
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}

	row := batch.Rows[0]
	if len(row.RelatedIdentifiers) != 2 {
		t.Fatalf("got %d related identifiers, want 2", len(row.RelatedIdentifiers))
	}
	want := []struct{ id, typ, rel string }{
		{"10.1234/parent", "DOI", "IsDerivedFrom"},
		{"https://example.org/x", "URL", "IsDocumentedBy"},
	}
	for i, w := range want {
		got := row.RelatedIdentifiers[i]
		if got.Identifier != w.id || got.Type != w.typ || got.RelationType != w.rel {
			t.Errorf("related[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestParseFundingReferences(t *testing.T) {
	batch := ParseString(
		"igsn|title|name|funderName|funderIdentifier\n" +
			"A|B|C|NSF; NASA|https://doi.org/10.13039/100000001\n")
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}

	row := batch.Rows[0]
	if len(row.FundingReferences) != 2 {
		t.Fatalf("got %d funding references, want 2", len(row.FundingReferences))
	}
	if row.FundingReferences[0].Name != "NSF" ||
		row.FundingReferences[0].Identifier != "https://doi.org/10.13039/100000001" {
		t.Errorf("first funding reference = %+v", row.FundingReferences[0])
	}
	if row.FundingReferences[1].Name != "NASA" || row.FundingReferences[1].Identifier != "" {
		t.Errorf("second funding reference = %+v", row.FundingReferences[1])
	}
}

func TestParseCreatorHeuristics(t *testing.T) {
	tests := []struct {
		name       string
		collector  string
		wantGiven  string
		wantFamily string
	}{
		{name: "inverted", collector: "Doe, John", wantGiven: "John", wantFamily: "Doe"},
		{name: "direct", collector: "John Doe", wantGiven: "John", wantFamily: "Doe"},
		{name: "three tokens", collector: "John Paul Smith", wantGiven: "John Paul", wantFamily: "Smith"},
		{name: "mononym", collector: "Darwin", wantGiven: "", wantFamily: "Darwin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := ParseString("igsn|title|name|collector\nA|B|C|" + tt.collector + "\n")
			row := batch.Rows[0]
			if row.Creator == nil {
				t.Fatal("expected a creator")
			}
			if row.Creator.GivenName != tt.wantGiven || row.Creator.FamilyName != tt.wantFamily {
				t.Errorf("creator = %+v, want given %q family %q", row.Creator, tt.wantGiven, tt.wantFamily)
			}
		})
	}
}

func TestParseCreatorAbsent(t *testing.T) {
	batch := ParseString("igsn|title|name|collector\nA|B|C|\n")
	if batch.Rows[0].Creator != nil {
		t.Errorf("expected nil creator, got %+v", batch.Rows[0].Creator)
	}
}

func TestParseCreatorExplicitNameOverride(t *testing.T) {
	batch := ParseString(
		"igsn|title|name|collector|givenName|familyName\n" +
			"A|B|C|Ignored, Name|Jane|Doe\n" +
			"D|E|F|Fallback Person||\n")

	first := batch.Rows[0].Creator
	if first == nil || first.GivenName != "Jane" || first.FamilyName != "Doe" {
		t.Errorf("explicit columns must win: %+v", first)
	}

	second := batch.Rows[1].Creator
	if second == nil || second.GivenName != "Fallback" || second.FamilyName != "Person" {
		t.Errorf("collector fallback: %+v", second)
	}
}

func TestParseCreatorEnrichment(t *testing.T) {
	t.Run("preferred columns", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|collector|orcid|ror|affiliation\n" +
				"A|B|C|Doe, John|0000-0001-2345-6789|https://ror.org/03yrm5c26|Lehigh University\n")
		c := batch.Rows[0].Creator
		if c.ORCID != "https://orcid.org/0000-0001-2345-6789" {
			t.Errorf("orcid = %q", c.ORCID)
		}
		if c.ROR != "https://ror.org/03yrm5c26" {
			t.Errorf("ror = %q", c.ROR)
		}
		if c.Affiliation != "Lehigh University" {
			t.Errorf("affiliation = %q", c.Affiliation)
		}
	})

	t.Run("legacy fallback columns", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|collector|collector_identifier|collector_affiliation_identifier|collector_affiliation\n" +
				"A|B|C|Doe, John|0000-0001-2345-6789|https://ror.org/03yrm5c26|Lehigh University\n")
		c := batch.Rows[0].Creator
		if c.ORCID != "https://orcid.org/0000-0001-2345-6789" {
			t.Errorf("orcid = %q", c.ORCID)
		}
		if c.ROR != "https://ror.org/03yrm5c26" {
			t.Errorf("ror = %q", c.ROR)
		}
		if c.Affiliation != "Lehigh University" {
			t.Errorf("affiliation = %q", c.Affiliation)
		}
	})

	t.Run("preferred wins over legacy", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|orcid|collector_identifier\n" +
				"A|B|C|0000-0001-2345-6789|9999-9999-9999-9999\n")
		c := batch.Rows[0].Creator
		if c.ORCID != "https://orcid.org/0000-0001-2345-6789" {
			t.Errorf("orcid = %q", c.ORCID)
		}
	})

	t.Run("enrichment without any name", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|orcid\n" +
				"A|B|C|0000-0001-2345-6789\n")
		c := batch.Rows[0].Creator
		if c == nil || c.HasName() {
			t.Fatalf("creator = %+v", c)
		}
		if c.ORCID != "https://orcid.org/0000-0001-2345-6789" {
			t.Errorf("orcid = %q", c.ORCID)
		}
	})
}

func TestParseGeoLocation(t *testing.T) {
	t.Run("full location", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|latitude|longitude|elevation|elevationUnit|locality\n" +
				"A|B|C|40.6023|-75.3779|120.5|m|Bethlehem, PA\n")
		g := batch.Rows[0].GeoLocation
		if g == nil {
			t.Fatal("expected a geo location")
		}
		if g.Latitude != 40.6023 || g.Longitude != -75.3779 {
			t.Errorf("coordinates = %v, %v", g.Latitude, g.Longitude)
		}
		if g.Elevation == nil || *g.Elevation != 120.5 || g.ElevationUnit != "m" {
			t.Errorf("elevation = %v %q", g.Elevation, g.ElevationUnit)
		}
		if g.Place != "Bethlehem, PA" {
			t.Errorf("place = %q", g.Place)
		}
	})

	t.Run("location_name fallback for place", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|latitude|longitude|location_name\n" +
				"A|B|C|40.6|-75.4|Saucon Valley\n")
		if got := batch.Rows[0].GeoLocation.Place; got != "Saucon Valley" {
			t.Errorf("place = %q", got)
		}
	})

	t.Run("locality preferred over location_name", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|latitude|longitude|locality|location_name\n" +
				"A|B|C|40.6|-75.4|Bethlehem|Saucon Valley\n")
		if got := batch.Rows[0].GeoLocation.Place; got != "Bethlehem" {
			t.Errorf("place = %q", got)
		}
	})

	t.Run("unparseable latitude leaves location nil", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|latitude|longitude\n" +
				"A|B|C|north-ish|-75.4\n")
		if batch.Rows[0].GeoLocation != nil {
			t.Errorf("expected nil location, got %+v", batch.Rows[0].GeoLocation)
		}
	})

	t.Run("missing longitude leaves location nil", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|latitude\n" +
				"A|B|C|40.6\n")
		if batch.Rows[0].GeoLocation != nil {
			t.Errorf("expected nil location, got %+v", batch.Rows[0].GeoLocation)
		}
	})

	t.Run("bad elevation keeps the location", func(t *testing.T) {
		batch := ParseString(
			"igsn|title|name|latitude|longitude|elevation\n" +
				"A|B|C|40.6|-75.4|high\n")
		g := batch.Rows[0].GeoLocation
		if g == nil || g.Elevation != nil {
			t.Errorf("location = %+v", g)
		}
	})
}

func TestParseCollectionDateRange(t *testing.T) {
	batch := ParseString(
		"igsn|title|name|collection_start_date|collection_end_date\n" +
			"A|B|C|2024|2024-06-30\n" +
			"D|E|F||\n")

	first := batch.Rows[0].CollectionDate
	if first == nil || first.Start != "2024" || first.End != "2024-06-30" {
		t.Errorf("collection date = %+v", first)
	}
	if batch.Rows[1].CollectionDate != nil {
		t.Errorf("expected nil date range, got %+v", batch.Rows[1].CollectionDate)
	}
}

func TestParseUnrecognizedColumnsPreserved(t *testing.T) {
	batch := ParseString(
		"igsn|title|name|curator_note\n" +
			"A|B|C|check the thin section\n" +
			"D|E|F|\n")

	if got := batch.Rows[0].GetExtraString("curator_note"); got != "check the thin section" {
		t.Errorf("extra = %q", got)
	}
	// The raw cell is still on Fields either way.
	if got := batch.Rows[0].GetField("curator_note"); got != "check the thin section" {
		t.Errorf("field = %q", got)
	}
	// Empty unrecognized cells are not preserved.
	if batch.Rows[1].Extra != nil {
		t.Errorf("expected no extras, got %v", batch.Rows[1].GetExtraFields())
	}
}

func TestParseSubEntitiesFreshPerRow(t *testing.T) {
	batch := ParseString(
		"igsn|title|name|contributor|contributorType\n" +
			"A|B|C|Doe, Jane|ContactPerson\n" +
			"D|E|F|Doe, Jane|ContactPerson\n")

	if batch.Rows[0].Contributors[0] == batch.Rows[1].Contributors[0] {
		t.Error("sub-entities must be rebuilt fresh per row")
	}
}

func TestParseReader(t *testing.T) {
	opts := NewParseOptions()
	opts.SourceName = "test.csv"

	batch, err := Parse(strings.NewReader("igsn|title|name\nA|B|C\n"), opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(batch.Rows))
	}
}

func TestParseCustomProfile(t *testing.T) {
	profile, err := mapping.LoadProfileFromString(`
name: tsv
format: igsn-csv
options:
  delimiter: "\t"
required_columns: [igsn, title, name]
`)
	if err != nil {
		t.Fatalf("loading profile: %v", err)
	}

	opts := NewParseOptions()
	opts.Profile = profile

	batch, err := Parse(strings.NewReader("igsn\ttitle\tname\nA\tB\tC\n"), opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}
	if batch.Rows[0].IGSN() != "A" {
		t.Errorf("igsn = %q", batch.Rows[0].IGSN())
	}
}
