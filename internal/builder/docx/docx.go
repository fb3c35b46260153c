// Package docx converts a document schema into a DOCX package.
package docx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/roboco-io/docforge/internal/fetch"
	"github.com/roboco-io/docforge/internal/schema"
)

var headingStyles = map[int]string{1: "Heading1", 2: "Heading2", 3: "Heading3", 4: "Heading4"}

type builder struct {
	doc     *document.Document
	theme   schema.DocTheme
	bullets document.NumberingDefinition
	numbers document.NumberingDefinition
}

// Build renders the document schema into DOCX bytes.
func Build(src *schema.Document) ([]byte, error) {
	doc := document.New()
	theme := src.Theme.WithDefaults()

	doc.CoreProperties.SetTitle(src.Metadata.Title)
	if src.Metadata.Author != "" {
		doc.CoreProperties.SetAuthor(src.Metadata.Author)
	}

	b := &builder{doc: doc, theme: theme}
	b.bullets = newListDefinition(doc, wml.ST_NumberFormatBullet)
	b.numbers = newListDefinition(doc, wml.ST_NumberFormatDecimal)

	// A DOCX carries one body section, so the first landscape request
	// flips the whole document to landscape A4.
	for i := range src.Sections {
		if src.Sections[i].Orientation == "landscape" {
			setPageSizeAndOrientation(doc.BodySection(),
				297*measurement.Millimeter, 210*measurement.Millimeter,
				wml.ST_PageOrientationLandscape)
			break
		}
	}

	if src.Metadata.Title != "" {
		para := doc.AddParagraph()
		para.SetStyle("Title")
		run := para.AddRun()
		run.AddText(src.Metadata.Title)
		run.Properties().SetColor(hexColor(theme.PrimaryColor))
	}

	for i := range src.Sections {
		b.renderSection(&src.Sections[i])
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *builder) renderSection(section *schema.Section) {
	if section.Header != "" {
		hdr := b.doc.AddHeader()
		para := hdr.AddParagraph()
		para.Properties().SetAlignment(wml.ST_JcCenter)
		run := para.AddRun()
		run.AddText(section.Header)
		run.Properties().SetSize(9 * measurement.Point)
		b.doc.BodySection().SetHeader(hdr, wml.ST_HdrFtrDefault)
	}
	if section.Footer != "" {
		ftr := b.doc.AddFooter()
		para := ftr.AddParagraph()
		para.Properties().SetAlignment(wml.ST_JcCenter)
		run := para.AddRun()
		run.AddText(section.Footer)
		run.Properties().SetSize(9 * measurement.Point)
		b.doc.BodySection().SetFooter(ftr, wml.ST_HdrFtrDefault)
	}

	for i := range section.Elements {
		b.renderElement(&section.Elements[i])
	}
}

func (b *builder) renderElement(el *schema.Element) {
	switch el.Type {
	case schema.ElementHeading:
		if el.Heading != nil {
			b.renderHeading(el.Heading)
		}
	case schema.ElementParagraph:
		if el.Paragraph != nil {
			b.renderParagraph(el.Paragraph)
		}
	case schema.ElementList:
		if el.List != nil {
			b.renderList(el.List)
		}
	case schema.ElementTable:
		if el.Table != nil {
			b.renderTable(el.Table)
		}
	case schema.ElementImage:
		if el.Image != nil {
			b.renderImage(el.Image)
		}
	case schema.ElementDivider:
		b.renderDivider()
	}
}

func (b *builder) renderHeading(h *schema.Heading) {
	para := b.doc.AddParagraph()
	para.SetStyle(headingStyles[h.ClampedLevel()])
	run := para.AddRun()
	run.AddText(h.Text)
	run.Properties().SetColor(hexColor(b.theme.PrimaryColor))
}

func (b *builder) renderParagraph(p *schema.Paragraph) {
	para := b.doc.AddParagraph()
	switch p.Alignment {
	case "center":
		para.Properties().SetAlignment(wml.ST_JcCenter)
	case "right":
		para.Properties().SetAlignment(wml.ST_JcRight)
	case "justify":
		para.Properties().SetAlignment(wml.ST_JcBoth)
	}

	if len(p.Runs) == 0 {
		run := para.AddRun()
		run.AddText(p.Text)
		run.Properties().SetFontFamily(b.theme.FontFamily)
		return
	}
	for _, r := range p.Runs {
		run := para.AddRun()
		run.AddText(r.Text)
		props := run.Properties()
		props.SetFontFamily(b.theme.FontFamily)
		if r.Bold {
			props.SetBold(true)
		}
		if r.Italic {
			props.SetItalic(true)
		}
		if r.Underline {
			props.SetUnderline(wml.ST_UnderlineSingle, color.Auto)
		}
		if r.Color != "" {
			props.SetColor(hexColor(r.Color))
		}
		if r.Size > 0 {
			props.SetSize(measurement.Distance(r.Size) * measurement.Point)
		}
	}
}

func (b *builder) renderList(l *schema.List) {
	def := b.bullets
	if l.Ordered {
		def = b.numbers
	}
	for _, item := range l.Items {
		para := b.doc.AddParagraph()
		para.SetNumberingDefinition(def)
		para.SetNumberingLevel(0)
		run := para.AddRun()
		run.AddText(item)
		run.Properties().SetFontFamily(b.theme.FontFamily)
	}
}

func (b *builder) renderTable(t *schema.Table) {
	if len(t.Rows) == 0 {
		return
	}
	table := b.doc.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.LightGray, 0.5*measurement.Point)

	for i, rowData := range t.Rows {
		row := table.AddRow()
		header := i == 0 && t.HasHeader()
		for _, cellText := range rowData {
			cell := row.AddCell()
			if header {
				cell.Properties().SetShading(wml.ST_ShdSolid, hexColor(b.theme.PrimaryColor), color.Auto)
			}
			para := cell.AddParagraph()
			run := para.AddRun()
			run.AddText(cellText)
			run.Properties().SetFontFamily(b.theme.FontFamily)
			if header {
				run.Properties().SetBold(true)
				run.Properties().SetColor(color.White)
			}
		}
	}
	// Spacer so following content does not glue to the table.
	b.doc.AddParagraph()
}

func (b *builder) renderImage(img *schema.Image) {
	if img.URL == "" {
		return
	}
	data, _, err := fetch.Image(img.URL)
	if err != nil {
		return
	}
	ref, err := common.ImageFromBytes(data)
	if err != nil {
		return
	}
	iref, err := b.doc.AddImage(ref)
	if err != nil {
		return
	}

	para := b.doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	run := para.AddRun()
	inline, err := run.AddDrawingInline(iref)
	if err != nil {
		return
	}

	width := measurement.Distance(6.0 * measurement.Inch)
	if img.Width > 0 {
		// Schema widths are millimetres; clamp to the printable area.
		w := measurement.Distance(img.Width) * measurement.Millimeter
		if w < width {
			width = w
		}
	}
	inline.SetSize(width, width*3/4)

	if img.Caption != "" {
		capPara := b.doc.AddParagraph()
		capPara.Properties().SetAlignment(wml.ST_JcCenter)
		capRun := capPara.AddRun()
		capRun.AddText(img.Caption)
		capRun.Properties().SetItalic(true)
		capRun.Properties().SetSize(9 * measurement.Point)
		capRun.Properties().SetColor(hexColor(b.theme.SecondaryColor))
	}
}

func (b *builder) renderDivider() {
	para := b.doc.AddParagraph()
	para.Properties()

	bottom := wml.NewCT_Border()
	bottom.ValAttr = wml.ST_BorderSingle
	sz := uint64(6) // eighths of a point
	bottom.SzAttr = &sz
	space := uint64(1)
	bottom.SpaceAttr = &space

	borders := wml.NewCT_PBdr()
	borders.Bottom = bottom
	para.X().PPr.PBdr = borders
}

// setPageSizeAndOrientation writes the section's page size and
// orientation into its sectPr; the pinned unioffice fork has no
// Section.SetPageSizeAndOrientation helper.
func setPageSizeAndOrientation(s document.Section, w, h measurement.Distance, orientation wml.ST_PageOrientation) {
	sect := s.X()
	if sect.PgSz == nil {
		sect.PgSz = wml.NewCT_PageSz()
	}
	sect.PgSz.OrientAttr = orientation
	sect.PgSz.WAttr = &sharedTypes.ST_TwipsMeasure{
		ST_UnsignedDecimalNumber: unioffice.Uint64(uint64(w / measurement.Twips)),
	}
	sect.PgSz.HAttr = &sharedTypes.ST_TwipsMeasure{
		ST_UnsignedDecimalNumber: unioffice.Uint64(uint64(h / measurement.Twips)),
	}
}

func newListDefinition(doc *document.Document, format wml.ST_NumberFormat) document.NumberingDefinition {
	nd := doc.Numbering.AddDefinition()
	lvl := nd.AddLevel()
	lvl.SetFormat(format)
	lvl.SetAlignment(wml.ST_JcLeft)
	if format == wml.ST_NumberFormatBullet {
		lvl.SetText("•")
	} else {
		lvl.SetText("%1.")
	}
	lvl.Properties().SetLeftIndent(0.25 * measurement.Inch)
	return nd
}

// hexColor converts "#RRGGBB" into a unioffice color, black when
// malformed.
func hexColor(hex string) color.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return color.Black
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGB(r, g, b)
}
