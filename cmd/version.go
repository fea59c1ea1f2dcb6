package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/skill-matcher/internal/taxonomy"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the size of the embedded skill taxonomy",
	RunE: func(_ *cobra.Command, _ []string) error {
		tax, err := taxonomy.Load()
		if err != nil {
			return fmt.Errorf("loading skill taxonomy: %w", err)
		}
		fmt.Printf("%s version: %s (taxonomy: %d skills in %d categories)\n", app, version, tax.Len(), len(tax.Categories()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
