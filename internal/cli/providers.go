package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type providerInfo struct {
	Name         string
	DefaultModel string
	EnvKey       string
	Description  string
}

var providers = []providerInfo{
	{
		Name:         "openai",
		DefaultModel: "dall-e-3",
		EnvKey:       "OPENAI_API_KEY",
		Description:  "OpenAI Images API",
	},
	{
		Name:         "gemini",
		DefaultModel: "imagen-3.0-generate-002",
		EnvKey:       "GOOGLE_API_KEY",
		Description:  "Google Imagen API",
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available image-generation providers",
	Long: `List the providers available for resolving pending image
placeholders with --resolve-images.

A provider needs its API key set in the matching environment variable
or in the config file.

Examples:
  docforge build report.json --resolve-images --provider openai
  docforge build report.json --resolve-images --provider gemini`,
	Run: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "PROVIDER\tDEFAULT MODEL\tENV VAR\tSTATUS\tDESCRIPTION")
	fmt.Fprintln(w, "--------\t-------------\t-------\t------\t-----------")

	for _, p := range providers {
		status := checkProviderStatus(p)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.DefaultModel, p.EnvKey, status, p.Description)
	}
}

func checkProviderStatus(p providerInfo) string {
	if os.Getenv(p.EnvKey) != "" {
		return "✓ configured"
	}
	return "✗ not set"
}
