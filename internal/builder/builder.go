// Package builder is the format orchestrator: it accepts schemas, loose
// maps or legacy strings, normalizes them into the schema model and
// dispatches to the per-format builders.
package builder

import (
	"encoding/json"
	"fmt"

	"github.com/roboco-io/docforge/internal/builder/docx"
	"github.com/roboco-io/docforge/internal/builder/pdf"
	"github.com/roboco-io/docforge/internal/builder/pptx"
	"github.com/roboco-io/docforge/internal/builder/xlsx"
	"github.com/roboco-io/docforge/internal/schema"
)

// BuildDocx renders input as a DOCX package. Input may be a *Document,
// a loose map in document shape, or a legacy HTML/markdown string.
func BuildDocx(input any, title string) ([]byte, error) {
	switch v := input.(type) {
	case *schema.Document:
		if !schema.ValidateDocument(v) {
			return nil, fmt.Errorf("invalid document schema")
		}
		return docx.Build(v)
	case schema.Document:
		return BuildDocx(&v, title)
	case string:
		doc, err := docx.FromLegacy(v, title)
		if err != nil {
			doc = fallbackDocument(v, title)
		}
		return docx.Build(doc)
	default:
		doc, err := normalizeDocument(input)
		if err != nil {
			return nil, err
		}
		if title != "" && doc.Metadata.Title == "" {
			doc.Metadata.Title = title
		}
		return docx.Build(doc)
	}
}

// BuildPptx renders input as a PPTX package. Input may be a
// *Presentation, a loose map in deck shape, or a legacy deck object.
func BuildPptx(input any) ([]byte, error) {
	deck, err := normalizePresentation(input)
	if err != nil {
		return nil, err
	}
	return pptx.Build(deck)
}

// BuildXlsx renders input as an XLSX workbook. Input may be a
// *Spreadsheet, a loose map in spreadsheet shape, or a CSV string.
func BuildXlsx(input any) ([]byte, error) {
	switch v := input.(type) {
	case *schema.Spreadsheet:
		if !schema.ValidateSpreadsheet(v) {
			return nil, fmt.Errorf("invalid spreadsheet schema")
		}
		return xlsx.Build(v)
	case schema.Spreadsheet:
		return BuildXlsx(&v)
	case string:
		book, err := SpreadsheetFromCSV(v, "Sheet1")
		if err != nil {
			return nil, err
		}
		return xlsx.Build(book)
	default:
		book := &schema.Spreadsheet{}
		if err := roundTrip(input, book); err != nil {
			return nil, fmt.Errorf("input is not a spreadsheet: %w", err)
		}
		if !schema.ValidateSpreadsheet(book) {
			return nil, fmt.Errorf("invalid spreadsheet schema")
		}
		return xlsx.Build(book)
	}
}

// BuildPDF renders a document schema as a paginated PDF.
func BuildPDF(doc *schema.Document) ([]byte, error) {
	if !schema.ValidateDocument(doc) {
		return nil, fmt.Errorf("invalid document schema")
	}
	return pdf.Build(doc)
}

// BuildPDFFromHTML renders raw HTML through the legacy HTML renderer.
func BuildPDFFromHTML(markup, title string) ([]byte, error) {
	return pdf.BuildFromHTML(markup, title)
}

// BuildPDFFromDeck renders a legacy presentation object through the
// landscape deck renderer.
func BuildPDFFromDeck(input any) ([]byte, error) {
	deck, err := normalizePresentation(input)
	if err != nil {
		return nil, err
	}
	return pdf.BuildFromDeck(deck)
}

// normalizeDocument coerces loose input into a document schema via a
// JSON round trip. Unconvertible input degrades to a single-paragraph
// document so callers always get something downloadable.
func normalizeDocument(input any) (*schema.Document, error) {
	if doc, ok := input.(*schema.Document); ok {
		return doc, nil
	}
	doc := &schema.Document{}
	if err := roundTrip(input, doc); err != nil || len(doc.Sections) == 0 {
		return fallbackDocument(fmt.Sprintf("%v", input), ""), nil
	}
	doc.Kind = schema.KindDocument
	return doc, nil
}

func normalizePresentation(input any) (*schema.Presentation, error) {
	switch v := input.(type) {
	case *schema.Presentation:
		if !schema.ValidatePresentation(v) {
			return nil, fmt.Errorf("invalid presentation schema")
		}
		return v, nil
	case schema.Presentation:
		return normalizePresentation(&v)
	default:
		deck := &schema.Presentation{}
		if err := roundTrip(input, deck); err != nil {
			return nil, fmt.Errorf("input is not a presentation: %w", err)
		}
		if len(deck.Slides) == 0 {
			if legacy := legacyDeck(input); legacy != nil {
				deck = legacy
			}
		}
		deck.Kind = schema.KindPresentation
		if emptyTheme(deck.Theme) {
			deck.Theme = schema.DefaultSlideTheme()
		}
		return deck, nil
	}
}

func emptyTheme(t schema.SlideTheme) bool {
	return t == (schema.SlideTheme{})
}

func roundTrip(input, out any) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func fallbackDocument(text, title string) *schema.Document {
	doc := schema.NewDocument(title)
	doc.Sections[0].AddParagraph(text)
	return doc
}
