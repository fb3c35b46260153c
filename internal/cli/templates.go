package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/roboco-io/docforge/internal/schema"
	"github.com/spf13/cobra"
)

var (
	templatesKind   string
	templatesExport string
	templatesOutput string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List and export built-in schema templates",
	Long: `List the built-in schema templates, or export one as a JSON file
to use as a starting point for your own schema.

Examples:
  docforge templates
  docforge templates --kind presentation
  docforge templates --kind document --export report -o report.json`,
	RunE: runTemplates,
}

func init() {
	templatesCmd.Flags().StringVar(&templatesKind, "kind", "", "filter by kind (document, presentation, spreadsheet)")
	templatesCmd.Flags().StringVar(&templatesExport, "export", "", "export the named template as JSON")
	templatesCmd.Flags().StringVarP(&templatesOutput, "output", "o", "", "export file path (default: stdout)")

	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	if templatesExport != "" {
		return exportTemplate(cmd, templatesKind, templatesExport)
	}

	kinds := []string{schema.KindDocument, schema.KindPresentation, schema.KindSpreadsheet}
	if templatesKind != "" {
		kinds = []string{templatesKind}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "KIND\tNAME")
	fmt.Fprintln(w, "----\t----")
	for _, kind := range kinds {
		for _, name := range schema.TemplateNames(kind) {
			fmt.Fprintf(w, "%s\t%s\n", kind, name)
		}
	}
	return nil
}

func exportTemplate(cmd *cobra.Command, kind, name string) error {
	tpl, err := lookupTemplate(kind, name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}
	data = append(data, '\n')

	if templatesOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(templatesOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", templatesOutput)
	return nil
}

// lookupTemplate finds a template by name, searching all kinds when no
// kind filter is given.
func lookupTemplate(kind, name string) (any, error) {
	if kind == "" || kind == schema.KindDocument {
		if tpl, ok := schema.DocumentTemplate(name); ok {
			return tpl, nil
		}
	}
	if kind == "" || kind == schema.KindPresentation {
		if tpl, ok := schema.PresentationTemplate(name); ok {
			return tpl, nil
		}
	}
	if kind == "" || kind == schema.KindSpreadsheet {
		if tpl, ok := schema.SpreadsheetTemplate(name); ok {
			return tpl, nil
		}
	}
	return nil, fmt.Errorf("unknown template: %s", name)
}
