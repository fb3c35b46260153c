// Package cli implements the docforge command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "docforge",
	Short: "Build DOCX, PPTX, XLSX and PDF files from document schemas",
	Long: `docforge renders format-agnostic document schemas into office files.

A schema is a JSON object describing a document, presentation or
spreadsheet. docforge validates it, optionally resolves pending image
placeholders through an image-generation provider, and writes the
requested output format.

Examples:
  docforge build report.json
  docforge build deck.json --format pdf
  docforge build report.json --resolve-images --provider openai
  docforge templates --kind presentation`,
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "docforge %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
