package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geosamples/igsnimport/importcsv"
	"github.com/geosamples/igsnimport/sample"
)

var (
	validateInput   string
	validateVerbose bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a sample import file without converting",
	Long: `Validate a sample import file by parsing it and reporting every
problem found: batch-level errors (a bad header) and per-row quality
warnings a curator should review before registration.

Input defaults to stdin.

Examples:
  igsnimport validate -i samples.csv
  igsnimport validate -i samples.csv --verbose
  cat samples.csv | igsnimport validate`,
	RunE: runValidateImport,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Input file (default: stdin)")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Show detailed information")
}

func runValidateImport(cmd *cobra.Command, args []string) (err error) {
	input, inputName, cleanup, err := openInput(validateInput)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	opts := importcsv.NewParseOptions()
	opts.SourceName = inputName

	batch, err := importcsv.Parse(input, opts)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if batch.HasErrors() {
		for _, e := range batch.Errors {
			fmt.Printf("✗ %s\n", e.Message)
		}
		return fmt.Errorf("import rejected: %d batch error(s) in %s", len(batch.Errors), inputName)
	}

	fmt.Printf("✓ Valid: parsed %d rows from %s\n", len(batch.Rows), inputName)

	valOpts := sample.DefaultValidationOptions()
	warned := 0
	for _, row := range batch.Rows {
		result := sample.ValidateRow(row, valOpts)
		if result.HasWarnings() {
			warned++
			fmt.Printf("  row %d: %s\n", row.RowNumber, result.Summary())
		}
	}
	if warned > 0 {
		fmt.Printf("%d row(s) carry warnings\n", warned)
	}

	if validateVerbose {
		fmt.Println("\nRow summary:")
		for _, r := range batch.Rows {
			fmt.Printf("\n  Row %d:\n", r.RowNumber)
			fmt.Printf("    IGSN: %s\n", r.IGSN())
			fmt.Printf("    Title: %s\n", truncate(r.Title(), 60))
			fmt.Printf("    Contributors: %d\n", len(r.Contributors))
			fmt.Printf("    Related identifiers: %d\n", len(r.RelatedIdentifiers))
			fmt.Printf("    Funding references: %d\n", len(r.FundingReferences))
			if r.Creator != nil {
				fmt.Printf("    Collector: %s\n", r.Creator.InvertedName())
			}
			if r.GeoLocation != nil {
				fmt.Printf("    Location: %v, %v\n", r.GeoLocation.Latitude, r.GeoLocation.Longitude)
			}
			if extras := r.GetExtraFields(); len(extras) > 0 {
				fmt.Printf("    Unrecognized columns: %d\n", len(extras))
			}
		}
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
