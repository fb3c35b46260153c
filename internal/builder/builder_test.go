package builder

import (
	"bytes"
	"testing"

	"github.com/roboco-io/docforge/internal/schema"
)

func TestBuildDocx_FromSchema(t *testing.T) {
	doc := schema.NewDocument("Spec")
	doc.Sections[0].AddParagraph("body")

	data, err := BuildDocx(doc, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("docx output should be a zip package")
	}
}

func TestBuildDocx_FromLegacyHTML(t *testing.T) {
	data, err := BuildDocx("<h1>Hi</h1><p>text</p>", "Legacy")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestBuildDocx_FromMarkdownish(t *testing.T) {
	data, err := BuildDocx("# Title\n\nplain text body", "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestBuildDocx_FromLooseMap(t *testing.T) {
	input := map[string]any{
		"kind": "document",
		"sections": []any{
			map[string]any{"elements": []any{
				map[string]any{"type": "paragraph", "paragraph": map[string]any{"text": "hello"}},
			}},
		},
	}
	data, err := BuildDocx(input, "Loose")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestBuildDocx_UnconvertibleDegradesToParagraph(t *testing.T) {
	data, err := BuildDocx(42, "")
	if err != nil {
		t.Fatalf("unconvertible input must still produce a document: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestBuildPptx_FromSchemaAndMap(t *testing.T) {
	deck := schema.NewPresentation("Deck")
	deck.AddSlide(schema.Slide{Layout: schema.LayoutTitle, Title: "Deck"})
	if _, err := BuildPptx(deck); err != nil {
		t.Fatalf("schema deck failed: %v", err)
	}

	loose := map[string]any{
		"kind": "presentation",
		"slides": []any{
			map[string]any{"layout": "title", "title": "Loose Deck"},
		},
	}
	if _, err := BuildPptx(loose); err != nil {
		t.Fatalf("loose deck failed: %v", err)
	}
}

func TestBuildPptx_LegacyObject(t *testing.T) {
	legacy := map[string]any{
		"title": "Old Deck",
		"slides": []any{
			map[string]any{"title": "Old Deck"},
			map[string]any{"title": "Points", "bullets": []any{"a", "b"}},
		},
	}
	data, err := BuildPptx(legacy)
	if err != nil {
		t.Fatalf("legacy deck failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("pptx output should be a zip package")
	}
}

func TestBuildXlsx_FromCSV(t *testing.T) {
	data, err := BuildXlsx("name,qty\napples,3\npears,5\n")
	if err != nil {
		t.Fatalf("csv build failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("xlsx output should be a zip package")
	}
}

func TestBuildXlsx_BadCSV(t *testing.T) {
	if _, err := BuildXlsx("a,\"unterminated\n"); err == nil {
		t.Error("expected error for malformed csv")
	}
}

func TestBuildPDF_FromSchema(t *testing.T) {
	doc := schema.NewDocument("PDF Doc")
	doc.Sections[0].AddParagraph("content")

	data, err := BuildPDF(doc)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("expected a PDF header")
	}
}

func TestBuildPDF_NilDocument(t *testing.T) {
	if _, err := BuildPDF(nil); err == nil {
		t.Error("nil document must be rejected")
	}
}

func TestBuildPDFFromDeck_LegacyMap(t *testing.T) {
	legacy := map[string]any{
		"title": "Quarterly",
		"slides": []any{
			map[string]any{"title": "Quarterly"},
			map[string]any{"title": "Numbers", "bullets": []any{"up", "to the right"}},
		},
	}
	data, err := BuildPDFFromDeck(legacy)
	if err != nil {
		t.Fatalf("legacy deck pdf failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("expected a PDF header")
	}
}

func TestSpreadsheetFromCSV(t *testing.T) {
	book, err := SpreadsheetFromCSV("a,b\n1,2\n", "Data")
	if err != nil {
		t.Fatalf("adapter failed: %v", err)
	}
	sheet := book.Sheets[0]
	if sheet.Name != "Data" {
		t.Errorf("sheet name = %q", sheet.Name)
	}
	if !sheet.HeaderRow {
		t.Error("multi-row csv should flag a header row")
	}
	if got := sheet.Data[1][1].Value; got != "2" {
		t.Errorf("cell value = %v", got)
	}
}

func TestLegacyDeck_Unrecognized(t *testing.T) {
	if legacyDeck(map[string]any{"foo": "bar"}) != nil {
		t.Error("map without slides should not be recognized")
	}
	if legacyDeck("not a map") != nil {
		t.Error("non-map should not be recognized")
	}
}
