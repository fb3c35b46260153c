package pdf

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/roboco-io/docforge/internal/schema"
)

const (
	tableRowHeight  = 8.0
	tableMinHeight  = tableRowHeight * 2
	tableFontSize   = 10.0
	tableCellPad    = 2.0
	tableMinColFrac = 0.08 // narrowest column as a fraction of content width
)

// drawTable renders a table starting at startY and returns the Y position
// just below the last drawn row. contentW and pageH carry the caller's
// page geometry so landscape sections get the wider grid. The table
// paginates itself: when a row would cross the bottom margin it starts a
// new page and, for header tables, redraws the header row first. The
// caller resumes its cursor from the returned value.
func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, theme schema.DocTheme, t *schema.Table, startY, contentW, pageH float64) float64 {
	widths := columnWidths(pdf, t.Rows, contentW)
	y := startY

	var head []string
	body := t.Rows
	if t.HasHeader() {
		head = t.Rows[0]
		body = t.Rows[1:]
	}

	if head != nil {
		y = drawHeaderRow(pdf, tr, theme, head, widths, y)
	}

	pdf.SetFont(theme.FontFamily, "", tableFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(220, 220, 220)

	for i, row := range body {
		if y+tableRowHeight > pageH-pageMargin {
			pdf.AddPage()
			y = pageMargin
			if head != nil {
				y = drawHeaderRow(pdf, tr, theme, head, widths, y)
				pdf.SetFont(theme.FontFamily, "", tableFontSize)
				pdf.SetTextColor(0, 0, 0)
			}
		}

		if i%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		pdf.SetXY(pageMargin, y)
		for c, w := range widths {
			text := ""
			if c < len(row) {
				text = tr(row[c])
			}
			pdf.CellFormat(w, tableRowHeight, clipCell(pdf, text, w), "1", 0, "L", true, 0, "")
		}
		y += tableRowHeight
	}

	return y
}

func drawHeaderRow(pdf *gofpdf.Fpdf, tr func(string) string, theme schema.DocTheme, head []string, widths []float64, y float64) float64 {
	pr, pg, pb := hexToRGB(theme.PrimaryColor)
	pdf.SetFont(theme.FontFamily, "B", tableFontSize)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(pr, pg, pb)
	pdf.SetDrawColor(220, 220, 220)

	pdf.SetXY(pageMargin, y)
	for c, w := range widths {
		text := ""
		if c < len(head) {
			text = tr(head[c])
		}
		pdf.CellFormat(w, tableRowHeight, clipCell(pdf, text, w), "1", 0, "L", true, 0, "")
	}
	return y + tableRowHeight
}

// columnWidths distributes contentW across columns in proportion to
// the widest cell text each column holds, with a floor so no column
// collapses.
func columnWidths(pdf *gofpdf.Fpdf, rows [][]string, contentW float64) []float64 {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	pdf.SetFont("Helvetica", "", tableFontSize)
	weights := make([]float64, cols)
	total := 0.0
	for c := 0; c < cols; c++ {
		max := contentW * tableMinColFrac
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			if w := pdf.GetStringWidth(row[c]) + 2*tableCellPad; w > max {
				max = w
			}
		}
		weights[c] = max
		total += max
	}

	widths := make([]float64, cols)
	for c := range weights {
		widths[c] = weights[c] / total * contentW
	}
	return widths
}

// clipCell trims text with an ellipsis so it fits a single cell line.
func clipCell(pdf *gofpdf.Fpdf, text string, width float64) string {
	avail := width - 2*tableCellPad
	if pdf.GetStringWidth(text) <= avail {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > avail {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
