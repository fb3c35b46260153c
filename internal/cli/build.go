package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roboco-io/docforge/internal/builder"
	"github.com/roboco-io/docforge/internal/config"
	"github.com/roboco-io/docforge/internal/imagegen"
	"github.com/roboco-io/docforge/internal/schema"
	"github.com/spf13/cobra"
)

var (
	buildOutput        string
	buildFormat        string
	buildResolveImages bool
	buildProvider      string
	buildAlsoPDF       bool
	buildVerbose       bool
	buildQuiet         bool
)

var buildCmd = &cobra.Command{
	Use:   "build <schema.json>",
	Short: "Render a document schema into an office file",
	Long: `Render a document schema into an office file.

The schema kind (document, presentation, spreadsheet) selects the
default output format: DOCX, PPTX or XLSX. Use --format to override,
including --format pdf for a paginated PDF rendition of documents and
presentations.

With --resolve-images, pending image placeholders in document schemas
are filled by generating images through the configured provider before
the file is built. Provider API keys come from the config file or the
OPENAI_API_KEY / GOOGLE_API_KEY environment variables.

Examples:
  docforge build report.json
  docforge build report.json -o out/report.docx
  docforge build report.json --format pdf
  docforge build report.json --pdf
  docforge build deck.json --resolve-images --provider gemini`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file path (default: input name with format extension)")
	buildCmd.Flags().StringVar(&buildFormat, "format", "", "output format (docx, pptx, xlsx, pdf)")
	buildCmd.Flags().BoolVar(&buildResolveImages, "resolve-images", false, "generate pending image placeholders before building")
	buildCmd.Flags().StringVar(&buildProvider, "provider", "", "image provider (openai, gemini)")
	buildCmd.Flags().BoolVar(&buildAlsoPDF, "pdf", false, "also write a PDF next to the primary output")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "verbose output")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "quiet mode")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	var loose any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return fmt.Errorf("schema is not valid JSON: %w", err)
	}

	kind := schema.DetectKind(loose)
	format, err := resolveFormat(kind)
	if err != nil {
		return err
	}

	if !buildQuiet && buildVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "input: %s\n", inputPath)
		fmt.Fprintf(cmd.ErrOrStderr(), "kind: %s\n", kindLabel(kind))
		fmt.Fprintf(cmd.ErrOrStderr(), "format: %s\n", format)
	}

	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var payload any = loose
	if buildResolveImages {
		if kind != schema.KindDocument {
			return fmt.Errorf("--resolve-images requires a document schema, got %s", kindLabel(kind))
		}
		doc, err := decodeDocument(raw)
		if err != nil {
			return fmt.Errorf("--resolve-images requires a document schema: %w", err)
		}
		resolved, err := resolveImages(cmd, cfg, doc)
		if err != nil {
			return err
		}
		payload = resolved
	}

	data, err := render(payload, raw, kind, format)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	outPath := resolveOutputPath(cfg, inputPath, buildOutput, format)
	if err := writeOutput(cfg, outPath, data); err != nil {
		return err
	}
	if !buildQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
	}

	if buildAlsoPDF && format != "pdf" {
		pdfData, err := render(payload, raw, kind, "pdf")
		if err != nil {
			return fmt.Errorf("pdf build failed: %w", err)
		}
		pdfPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".pdf"
		if err := writeOutput(cfg, pdfPath, pdfData); err != nil {
			return err
		}
		if !buildQuiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", pdfPath)
		}
	}

	return nil
}

// resolveFormat picks the output format from the --format flag or the
// detected schema kind.
func resolveFormat(kind string) (string, error) {
	if buildFormat != "" {
		switch buildFormat {
		case "docx", "pptx", "xlsx", "pdf":
			return buildFormat, nil
		default:
			return "", fmt.Errorf("unsupported format: %s (supported: docx, pptx, xlsx, pdf)", buildFormat)
		}
	}
	switch kind {
	case schema.KindDocument:
		return "docx", nil
	case schema.KindPresentation:
		return "pptx", nil
	case schema.KindSpreadsheet:
		return "xlsx", nil
	default:
		return "", fmt.Errorf("cannot detect schema kind, pass --format explicitly")
	}
}

func render(payload any, raw []byte, kind, format string) ([]byte, error) {
	switch format {
	case "docx":
		return builder.BuildDocx(payload, "")
	case "pptx":
		return builder.BuildPptx(payload)
	case "xlsx":
		return builder.BuildXlsx(payload)
	case "pdf":
		if kind == schema.KindPresentation {
			return builder.BuildPDFFromDeck(payload)
		}
		doc, ok := payload.(*schema.Document)
		if !ok {
			var err error
			doc, err = decodeDocument(raw)
			if err != nil {
				return nil, err
			}
		}
		return builder.BuildPDF(doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func resolveImages(cmd *cobra.Command, cfg *config.Config, doc *schema.Document) (*schema.Document, error) {
	if !imagegen.HasPendingImages(doc) {
		if !buildQuiet && buildVerbose {
			fmt.Fprintln(cmd.ErrOrStderr(), "no pending images")
		}
		return doc, nil
	}

	name := buildProvider
	if name == "" {
		name = cfg.DefaultProvider
	}
	provider, err := newImageProvider(cmd.Context(), name, cfg)
	if err != nil {
		return nil, err
	}

	if !buildQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "resolving images via %s...\n", provider.Name())
	}

	resolver := imagegen.NewResolver(provider)
	if pc, ok := cfg.GetProvider(name); ok && pc.Style != "" {
		resolver = resolver.WithStyle(pc.Style)
	}
	result, err := resolver.Resolve(cmd.Context(), doc, func(processed, total int) {
		if !buildQuiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "images %d/%d\n", processed, total)
		}
	}, "cli")
	if err != nil {
		return nil, fmt.Errorf("image resolution failed: %w", err)
	}

	for _, genErr := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", genErr)
	}
	if !buildQuiet && buildVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "generated %d images\n", result.ImagesGenerated)
	}

	return result.Document, nil
}

// newImageProvider returns the named provider from the default registry,
// constructing and registering it on first use so repeated builds in one
// process share a client.
func newImageProvider(ctx context.Context, name string, cfg *config.Config) (imagegen.Provider, error) {
	if p, err := imagegen.Get(name); err == nil {
		return p, nil
	}

	var apiKey, model string
	if pc, ok := cfg.GetProvider(name); ok {
		apiKey = pc.APIKey
		model = pc.Model
	}

	var p imagegen.Provider
	var err error
	switch name {
	case "openai":
		p, err = imagegen.NewOpenAIProvider(imagegen.OpenAIConfig{APIKey: apiKey, Model: model})
	case "gemini":
		p, err = imagegen.NewGeminiProvider(ctx, imagegen.GeminiConfig{APIKey: apiKey, Model: model})
	default:
		return nil, fmt.Errorf("unknown image provider: %s (supported: openai, gemini)", name)
	}
	if err != nil {
		return nil, err
	}

	if err := imagegen.Register(p); err != nil {
		// A concurrent registration won the race; use the registered one.
		if reg, getErr := imagegen.Get(name); getErr == nil {
			return reg, nil
		}
		return nil, err
	}
	return p, nil
}

func decodeDocument(raw []byte) (*schema.Document, error) {
	doc := &schema.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	doc.Kind = schema.KindDocument
	return doc, nil
}

func resolveOutputPath(cfg *config.Config, inputPath, explicit, format string) string {
	if explicit != "" {
		return explicit
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(cfg.Output.Directory, base+"."+format)
}

func writeOutput(cfg *config.Config, path string, data []byte) error {
	if !cfg.Output.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("output file already exists: %s (set output.overwrite in config)", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func kindLabel(kind string) string {
	if kind == "" {
		return "(unknown)"
	}
	return kind
}
