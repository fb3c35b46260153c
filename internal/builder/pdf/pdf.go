// Package pdf renders document schemas into paginated PDF files with a
// flowing layout: a vertical cursor advances down the page and elements
// trigger page breaks when their estimated height no longer fits.
//
// Two additional legacy renderers live alongside the schema path: an
// HTML walker (html.go) and a landscape slide renderer (deck.go). They
// keep their own layout code on purpose; see the package-level builders
// for the entry points.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/roboco-io/docforge/internal/fetch"
	"github.com/roboco-io/docforge/internal/schema"
)

const (
	pageWidth    = 210.0 // A4 portrait, millimetres
	pageHeight   = 297.0
	pageMargin   = 20.0
	contentWidth = pageWidth - 2*pageMargin

	bodyFontSize    = 11.0
	captionFontSize = 9.0

	headingGap   = 4.0
	paragraphGap = 3.0
	listItemGap  = 1.5
	tableGap     = 5.0
	dividerGap   = 5.0
	imageGap     = 4.0

	// Line advance per wrapped line, as a multiple of the font size.
	headingLineFactor = 0.5
	bodyLineFactor    = 0.45
)

var headingSizes = map[int]float64{1: 22, 2: 18, 3: 14, 4: 12}

// cursor is the renderer's vertical write position on the current page.
// It is owned by one renderer and threaded through every element method,
// never captured in a closure.
type cursor struct {
	Y float64
}

type docRenderer struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	theme    schema.DocTheme
	cur      cursor
	pageW    float64
	pageH    float64
	imageSeq int
}

// pageGeometry maps a section orientation onto A4 page dimensions. The
// empty string and anything unrecognized mean portrait.
func pageGeometry(orientation string) (w, h float64, style string) {
	if orientation == "landscape" {
		return pageHeight, pageWidth, "L"
	}
	return pageWidth, pageHeight, "P"
}

func newDocRenderer(theme schema.DocTheme, orientation string) *docRenderer {
	w, h, style := pageGeometry(orientation)
	p := gofpdf.New(style, "mm", "A4", "")
	p.SetAutoPageBreak(false, pageMargin)
	p.AddPage()
	return &docRenderer{
		pdf:   p,
		tr:    p.UnicodeTranslatorFromDescriptor(""),
		theme: theme,
		cur:   cursor{Y: pageMargin},
		pageW: w,
		pageH: h,
	}
}

// contentW is the writable width between the side margins of the
// current page orientation.
func (r *docRenderer) contentW() float64 {
	return r.pageW - 2*pageMargin
}

// Build renders the document schema into PDF bytes.
func Build(doc *schema.Document) ([]byte, error) {
	orientation := ""
	if len(doc.Sections) > 0 {
		orientation = doc.Sections[0].Orientation
	}
	r := newDocRenderer(doc.Theme.WithDefaults(), orientation)

	if doc.Metadata.Title != "" {
		r.renderTitle(&doc.Metadata)
	}
	for i := range doc.Sections {
		r.renderSection(&doc.Sections[i])
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ensure breaks to a new page when height no longer fits above the
// bottom margin, resetting the cursor to the top margin.
func (r *docRenderer) ensure(height float64) {
	if r.cur.Y+height > r.pageH-pageMargin {
		r.pdf.AddPage()
		r.cur.Y = pageMargin
	}
}

func (r *docRenderer) renderTitle(meta *schema.Metadata) {
	pr, pg, pb := hexToRGB(r.theme.PrimaryColor)
	r.pdf.SetFont(r.theme.FontFamily, "B", 26)
	r.pdf.SetTextColor(pr, pg, pb)
	r.ensure(26 * headingLineFactor)
	r.cur.Y += 26 * headingLineFactor
	r.pdf.Text(pageMargin, r.cur.Y, r.tr(meta.Title))
	r.cur.Y += headingGap

	if meta.Author != "" {
		r.pdf.SetFont(r.theme.FontFamily, "", captionFontSize)
		r.pdf.SetTextColor(120, 120, 120)
		r.cur.Y += captionFontSize * bodyLineFactor
		r.pdf.Text(pageMargin, r.cur.Y, r.tr(meta.Author))
		r.cur.Y += paragraphGap
	}
	r.cur.Y += headingGap
}

func (r *docRenderer) renderSection(section *schema.Section) {
	r.applyOrientation(section.Orientation)
	for i := range section.Elements {
		r.renderElement(&section.Elements[i])
	}
}

// applyOrientation starts a fresh page when the section's orientation
// differs from the current page's. Later breaks inside the section keep
// the orientation because gofpdf's AddPage continues the current format.
func (r *docRenderer) applyOrientation(orientation string) {
	w, h, style := pageGeometry(orientation)
	if w == r.pageW {
		return
	}
	r.pageW, r.pageH = w, h
	r.pdf.AddPageFormat(style, gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight})
	r.cur.Y = pageMargin
}

func (r *docRenderer) renderElement(el *schema.Element) {
	switch el.Type {
	case schema.ElementHeading:
		if el.Heading != nil {
			r.renderHeading(el.Heading)
		}
	case schema.ElementParagraph:
		if el.Paragraph != nil {
			r.renderParagraph(el.Paragraph)
		}
	case schema.ElementList:
		if el.List != nil {
			r.renderList(el.List)
		}
	case schema.ElementTable:
		if el.Table != nil {
			r.renderTable(el.Table)
		}
	case schema.ElementImage:
		if el.Image != nil {
			r.renderImage(el.Image)
		}
	case schema.ElementDivider:
		r.renderDivider()
	}
}

func (r *docRenderer) renderHeading(h *schema.Heading) {
	size := headingSizes[h.ClampedLevel()]
	r.pdf.SetFont(r.theme.FontFamily, "B", size)
	pr, pg, pb := hexToRGB(r.theme.PrimaryColor)
	r.pdf.SetTextColor(pr, pg, pb)

	lines := r.pdf.SplitText(r.tr(h.Text), r.contentW())
	lineHeight := size * headingLineFactor
	r.ensure(float64(len(lines))*lineHeight + headingGap)
	for _, line := range lines {
		r.cur.Y += lineHeight
		r.pdf.Text(pageMargin, r.cur.Y, line)
	}
	r.cur.Y += headingGap
}

func (r *docRenderer) renderParagraph(p *schema.Paragraph) {
	// Body text stays black whatever the theme says; only headings carry
	// the primary color.
	r.pdf.SetFont(r.theme.FontFamily, "", bodyFontSize)
	r.pdf.SetTextColor(0, 0, 0)

	text := r.tr(p.PlainText())
	lines := r.pdf.SplitText(text, r.contentW())
	lineHeight := bodyFontSize * bodyLineFactor
	for _, line := range lines {
		r.ensure(lineHeight)
		r.cur.Y += lineHeight
		r.pdf.Text(pageMargin+r.alignOffset(p.Alignment, line), r.cur.Y, line)
	}
	r.cur.Y += paragraphGap
}

func (r *docRenderer) alignOffset(alignment, line string) float64 {
	switch alignment {
	case "center":
		return (r.contentW() - r.pdf.GetStringWidth(line)) / 2
	case "right":
		return r.contentW() - r.pdf.GetStringWidth(line)
	default:
		return 0
	}
}

func (r *docRenderer) renderList(l *schema.List) {
	r.pdf.SetFont(r.theme.FontFamily, "", bodyFontSize)
	r.pdf.SetTextColor(0, 0, 0)
	lineHeight := bodyFontSize * bodyLineFactor

	for i, item := range l.Items {
		prefix := "• "
		if l.Ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		prefix = r.tr(prefix)
		prefixWidth := r.pdf.GetStringWidth(prefix)

		lines := r.pdf.SplitText(r.tr(item), r.contentW()-prefixWidth)
		for j, line := range lines {
			r.ensure(lineHeight)
			r.cur.Y += lineHeight
			if j == 0 {
				r.pdf.Text(pageMargin, r.cur.Y, prefix+line)
			} else {
				// Continuation lines align under the text, not the prefix.
				r.pdf.Text(pageMargin+prefixWidth, r.cur.Y, line)
			}
		}
		r.cur.Y += listItemGap
	}
	r.cur.Y += paragraphGap - listItemGap
}

func (r *docRenderer) renderTable(t *schema.Table) {
	if len(t.Rows) == 0 {
		return
	}
	r.ensure(tableMinHeight)
	finalY := drawTable(r.pdf, r.tr, r.theme, t, r.cur.Y, r.contentW(), r.pageH)
	r.cur.Y = finalY + tableGap
}

func (r *docRenderer) renderImage(img *schema.Image) {
	if img.URL == "" {
		// An unresolved placeholder is not an error, the document renders
		// without it.
		return
	}
	data, mime, err := fetch.Image(img.URL)
	if err != nil {
		return
	}
	format := fetch.Format(mime)
	if format == "" {
		return
	}

	width := r.contentW()
	if img.Width > 0 && img.Width < r.contentW() {
		width = img.Width
	}
	// No real dimensions travel with the schema, so a 4:3 box stands in.
	height := width * 0.75

	r.ensure(height + imageGap)

	r.imageSeq++
	name := fmt.Sprintf("img-%d", r.imageSeq)
	opts := gofpdf.ImageOptions{ImageType: strings.ToUpper(format), ReadDpi: true}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if r.pdf.Err() {
		r.pdf.ClearError()
		return
	}

	x := pageMargin + (r.contentW()-width)/2
	r.pdf.ImageOptions(name, x, r.cur.Y, width, height, false, opts, 0, "")
	r.cur.Y += height + imageGap

	if img.Caption != "" {
		r.pdf.SetFont(r.theme.FontFamily, "I", captionFontSize)
		r.pdf.SetTextColor(100, 100, 100)
		caption := r.tr(img.Caption)
		r.ensure(captionFontSize * bodyLineFactor)
		r.cur.Y += captionFontSize * bodyLineFactor
		cx := pageMargin + (r.contentW()-r.pdf.GetStringWidth(caption))/2
		r.pdf.Text(cx, r.cur.Y, caption)
		r.cur.Y += paragraphGap
	}
}

func (r *docRenderer) renderDivider() {
	r.ensure(2 * dividerGap)
	r.cur.Y += dividerGap
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetLineWidth(0.3)
	r.pdf.Line(pageMargin, r.cur.Y, pageMargin+r.contentW(), r.cur.Y)
	r.cur.Y += dividerGap
}

// hexToRGB parses "#RRGGBB" into components, defaulting to black on
// malformed input.
func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
