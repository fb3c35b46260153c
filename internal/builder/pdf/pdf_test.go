package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/roboco-io/docforge/internal/schema"
)

func assertPDF(t *testing.T, data []byte) {
	t.Helper()
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output does not start with a PDF header")
	}
}

func TestBuild_SimpleDocument(t *testing.T) {
	doc := schema.NewDocument("Quarterly Report")
	doc.Metadata.Author = "Finance Team"
	sec := &doc.Sections[0]
	sec.AddHeading("Overview", 1)
	sec.AddParagraph("Revenue grew in all segments.")
	sec.AddList(false, "North", "South")
	sec.AddDivider()

	data, err := Build(doc)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	assertPDF(t, data)
}

func TestEnsure_BreaksPageAndResetsCursor(t *testing.T) {
	r := newDocRenderer(schema.DefaultDocTheme(), "")

	if got := r.pdf.PageCount(); got != 1 {
		t.Fatalf("expected 1 initial page, got %d", got)
	}

	// Fits: no break, cursor untouched.
	r.cur.Y = 100
	r.ensure(50)
	if r.pdf.PageCount() != 1 || r.cur.Y != 100 {
		t.Errorf("unexpected break: pages=%d y=%v", r.pdf.PageCount(), r.cur.Y)
	}

	// Does not fit above the bottom margin: new page, cursor at top margin.
	r.ensure(200)
	if r.pdf.PageCount() != 2 {
		t.Errorf("expected page break, got %d pages", r.pdf.PageCount())
	}
	if r.cur.Y != pageMargin {
		t.Errorf("cursor should reset to top margin %v, got %v", pageMargin, r.cur.Y)
	}
}

func TestBuild_LongDocumentPaginates(t *testing.T) {
	doc := schema.NewDocument("")
	sec := &doc.Sections[0]
	para := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 4)
	for i := 0; i < 60; i++ {
		sec.AddParagraph(para)
	}

	r := newDocRenderer(doc.Theme.WithDefaults(), "")
	for i := range doc.Sections {
		r.renderSection(&doc.Sections[i])
	}

	if r.pdf.PageCount() < 2 {
		t.Errorf("60 wrapped paragraphs should overflow one page, got %d", r.pdf.PageCount())
	}
	// The renderer never writes into the bottom margin.
	if r.cur.Y > pageHeight-pageMargin {
		t.Errorf("cursor %v ended past the bottom margin", r.cur.Y)
	}
}

// TestRenderSection_ExactPageCount replays the cursor arithmetic for a
// fixed document with the same fonts the renderer uses and checks the
// renderer lands on exactly the predicted page count and cursor.
func TestRenderSection_ExactPageCount(t *testing.T) {
	theme := schema.DefaultDocTheme()
	para := strings.Repeat("Every figure in the ledger is checked twice before it is posted. ", 10)
	rows := [][]string{{"Account", "Balance"}}
	for i := 0; i < 60; i++ {
		rows = append(rows, []string{"cash on hand", "100.00"})
	}

	doc := schema.NewDocument("")
	sec := &doc.Sections[0]
	sec.AddHeading("Ledger", 1)
	sec.AddParagraph(para)
	sec.AddTable(&schema.Table{Rows: rows})

	m := newDocRenderer(theme, "")
	pages := 1
	y := pageMargin
	ensure := func(h float64) {
		if y+h > pageHeight-pageMargin {
			pages++
			y = pageMargin
		}
	}

	m.pdf.SetFont(theme.FontFamily, "B", headingSizes[1])
	headLines := float64(len(m.pdf.SplitText(m.tr("Ledger"), contentWidth)))
	ensure(headLines*headingSizes[1]*headingLineFactor + headingGap)
	y += headLines*headingSizes[1]*headingLineFactor + headingGap

	m.pdf.SetFont(theme.FontFamily, "", bodyFontSize)
	lineHeight := bodyFontSize * bodyLineFactor
	for range m.pdf.SplitText(m.tr(para), contentWidth) {
		ensure(lineHeight)
		y += lineHeight
	}
	y += paragraphGap

	ensure(tableMinHeight)
	y += tableRowHeight // header row
	for range rows[1:] {
		if y+tableRowHeight > pageHeight-pageMargin {
			pages++
			y = pageMargin + tableRowHeight // redrawn header
		}
		y += tableRowHeight
	}
	y += tableGap

	if pages < 2 {
		t.Fatalf("fixture should span multiple pages, predicted %d", pages)
	}

	r := newDocRenderer(theme, "")
	r.renderSection(sec)

	if got := r.pdf.PageCount(); got != pages {
		t.Errorf("rendered %d pages, predicted %d", got, pages)
	}
	if r.cur.Y != y {
		t.Errorf("final cursor = %v, predicted %v", r.cur.Y, y)
	}
}

func TestRenderSection_HonorsOrientation(t *testing.T) {
	doc := schema.NewDocument("")
	doc.Sections[0].Orientation = "landscape"
	doc.Sections[0].AddParagraph("wide table of figures")
	doc.Sections = append(doc.Sections, schema.Section{Orientation: "portrait"})
	doc.Sections[1].AddParagraph("back to portrait")

	r := newDocRenderer(doc.Theme.WithDefaults(), doc.Sections[0].Orientation)
	r.renderSection(&doc.Sections[0])

	if w, h := r.pdf.GetPageSize(); w != pageHeight || h != pageWidth {
		t.Errorf("landscape page = %vx%v, want %vx%v", w, h, pageHeight, pageWidth)
	}
	if r.contentW() != pageHeight-2*pageMargin {
		t.Errorf("landscape content width = %v, want %v", r.contentW(), pageHeight-2*pageMargin)
	}
	if r.pdf.PageCount() != 1 {
		t.Errorf("first section should stay on the opening page, got %d", r.pdf.PageCount())
	}

	r.renderSection(&doc.Sections[1])

	if r.pdf.PageCount() != 2 {
		t.Errorf("orientation change should start a new page, got %d pages", r.pdf.PageCount())
	}
	if w, h := r.pdf.GetPageSize(); w != pageWidth || h != pageHeight {
		t.Errorf("portrait page = %vx%v, want %vx%v", w, h, pageWidth, pageHeight)
	}
}

func TestBuild_LandscapeDocument(t *testing.T) {
	doc := schema.NewDocument("Wide Report")
	doc.Sections[0].Orientation = "landscape"
	doc.Sections[0].AddTable(&schema.Table{Rows: [][]string{
		{"Quarter", "Revenue", "Costs", "Margin"},
		{"Q1", "120", "80", "40"},
	}})

	data, err := Build(doc)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	assertPDF(t, data)
}

func TestRenderTable_ReportsFinalY(t *testing.T) {
	r := newDocRenderer(schema.DefaultDocTheme(), "")
	start := r.cur.Y

	tbl := &schema.Table{Rows: [][]string{
		{"Name", "Qty"},
		{"Apples", "3"},
		{"Pears", "5"},
	}}
	r.renderTable(tbl)

	// Header plus two body rows, plus the trailing gap.
	want := start + 3*tableRowHeight + tableGap
	if r.cur.Y != want {
		t.Errorf("cursor after table = %v, want %v", r.cur.Y, want)
	}
}

func TestRenderTable_PaginatesLongTable(t *testing.T) {
	r := newDocRenderer(schema.DefaultDocTheme(), "")

	rows := [][]string{{"Col A", "Col B"}}
	for i := 0; i < 80; i++ {
		rows = append(rows, []string{"value", "value"})
	}
	r.renderTable(&schema.Table{Rows: rows})

	if r.pdf.PageCount() < 2 {
		t.Errorf("80 rows at %vmm each must span pages, got %d", tableRowHeight, r.pdf.PageCount())
	}
}

func TestRenderImage_MissingURLSkipsSilently(t *testing.T) {
	r := newDocRenderer(schema.DefaultDocTheme(), "")
	before := r.cur.Y
	r.renderImage(&schema.Image{AIPrompt: "a sunset"})
	if r.cur.Y != before {
		t.Error("pending image should not advance the cursor")
	}
}

func TestRenderImage_FetchFailureSkipsSilently(t *testing.T) {
	r := newDocRenderer(schema.DefaultDocTheme(), "")
	before := r.cur.Y
	r.renderImage(&schema.Image{URL: "data:image/png;base64"})
	if r.cur.Y != before {
		t.Error("unfetchable image should not advance the cursor")
	}
	if r.pdf.Err() {
		t.Error("failed image must not poison the document")
	}
}

func TestBuildFromHTML(t *testing.T) {
	markup := `<html><body>
		<h1>Release Notes</h1>
		<p>Changes in this version.</p>
		<ul><li>Faster exports</li><li>Bug fixes</li></ul>
		<ol><li>First</li><li>Second</li></ol>
		<hr>
		<custom-tag><p>Nested content still renders.</p></custom-tag>
	</body></html>`

	data, err := BuildFromHTML(markup, "Release Notes")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	assertPDF(t, data)
}

func TestBuildFromHTML_Invalid(t *testing.T) {
	// html.Parse repairs almost anything, so even junk yields a document.
	data, err := BuildFromHTML("<<<not html", "")
	if err != nil {
		t.Fatalf("expected repaired parse, got %v", err)
	}
	assertPDF(t, data)
}

func TestBuildFromDeck(t *testing.T) {
	deck := schema.NewPresentation("Roadmap")
	deck.AddSlide(schema.Slide{Layout: schema.LayoutTitle, Title: "Roadmap", Subtitle: "H2 2026"})
	deck.AddSlide(schema.Slide{
		Layout: schema.LayoutTitleContent,
		Title:  "Milestones",
		Bullets: []schema.Bullet{
			{Text: "Ship exporter"},
			{Text: "Beta feedback", Level: 1},
		},
	})

	data, err := BuildFromDeck(deck)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	assertPDF(t, data)
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#1F4E79", 31, 78, 121},
		{"ffffff", 255, 255, 255},
		{"#FFF", 0, 0, 0},
		{"", 0, 0, 0},
		{"#zzzzzz", 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := hexToRGB(tt.hex)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("hexToRGB(%q) = %d,%d,%d want %d,%d,%d", tt.hex, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
