package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/geosamples/igsnimport/importcsv"
	"github.com/geosamples/igsnimport/mapping"
)

var (
	inputFile   string
	outputFile  string
	profileFile string
	pretty      bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a sample import file to JSON",
	Long: `Parse a pipe-delimited sample import file and write the parsed
batch as JSON.

Input defaults to stdin, output defaults to stdout. Batch-level
problems (a bad header) are reported in the output and through a
nonzero exit code.

Examples:
  igsnimport parse -i samples.csv -o batch.json
  cat samples.csv | igsnimport parse --pretty
  igsnimport parse -i samples.csv --profile-file custom.yaml`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	parseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	parseCmd.Flags().StringVar(&profileFile, "profile-file", "", "Custom import profile YAML file")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
}

func runParse(cmd *cobra.Command, args []string) (err error) {
	input, inputName, cleanup, err := openInput(inputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var output io.Writer
	if outputFile != "" {
		f, createErr := os.Create(outputFile)
		if createErr != nil {
			return fmt.Errorf("creating output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	} else {
		output = os.Stdout
	}

	opts, err := buildParseOptions(inputName)
	if err != nil {
		return err
	}

	batch, err := importcsv.Parse(input, opts)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	slog.Info("parsed batch", "source", inputName, "rows", len(batch.Rows), "errors", len(batch.Errors))

	enc := json.NewEncoder(output)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(batch); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if batch.HasErrors() {
		return fmt.Errorf("import rejected: %s", batch.Errors[0].Message)
	}
	return nil
}

func buildParseOptions(sourceName string) (*importcsv.ParseOptions, error) {
	opts := importcsv.NewParseOptions()
	opts.SourceName = sourceName
	if profileFile != "" {
		p, err := mapping.LoadProfile(profileFile)
		if err != nil {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
		opts.Profile = p
	}
	return opts, nil
}

// openInput opens the named file, or falls back to stdin. It also
// sniffs the first bytes and warns when the input does not look like a
// pipe-delimited export.
func openInput(path string) (io.Reader, string, func() error, error) {
	if path == "" {
		return os.Stdin, "stdin", func() error { return nil }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("opening input file: %w", err)
	}
	cleanup := func() error {
		if cerr := f.Close(); cerr != nil {
			return fmt.Errorf("closing input file: %w", cerr)
		}
		return nil
	}

	br := bufio.NewReader(f)
	peek, _ := br.Peek(512)
	if !(&importcsv.Format{}).CanParse(peek) {
		slog.Warn("input does not look pipe-delimited", "file", path)
	}

	return br, path, cleanup, nil
}
