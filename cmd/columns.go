package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/geosamples/igsnimport/mapping"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Inspect the recognized column vocabulary",
	Long:  `List and inspect the columns the import profile gives meaning to.`,
}

var columnsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recognized columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := mapping.Default()

		fmt.Printf("Columns recognized by the %s profile:\n", profile.Name)
		for _, col := range profile.RecognizedColumns() {
			marker := ""
			for _, req := range profile.RequiredColumns {
				if req == col {
					marker = " (required)"
				}
			}
			fmt.Printf("  %s%s\n", col, marker)
		}

		return nil
	},
}

var columnsShowCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Show full profile details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := mapping.NewProfileRegistry()
		if err != nil {
			return err
		}

		name := "igsn"
		if len(args) > 0 {
			name = args[0]
		}

		profile, ok := registry.Get(name)
		if !ok {
			return fmt.Errorf("unknown profile: %s", name)
		}

		// Print as YAML
		out, err := yaml.Marshal(profile)
		if err != nil {
			return err
		}

		fmt.Println(string(out))
		return nil
	},
}

func init() {
	columnsCmd.AddCommand(columnsListCmd)
	columnsCmd.AddCommand(columnsShowCmd)
}
