// Package xlsx converts a spreadsheet schema into an XLSX workbook.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roboco-io/docforge/internal/schema"
)

const (
	headerFill = "DDEBF7" // light blue
	borderGray = "D3D3D3"

	autoWidthMin     = 10
	autoWidthMax     = 50
	autoWidthPadding = 2
)

// Build renders the spreadsheet schema into a complete XLSX package.
func Build(book *schema.Spreadsheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := book.Sheets
	if len(sheets) == 0 {
		sheets = []schema.Sheet{{Name: "Sheet1"}}
	}

	for i := range sheets {
		sheet := &sheets[i]
		name := sheet.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("add sheet %s: %w", name, err)
			}
		}
		if err := buildSheet(f, name, sheet); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type gridPos struct {
	row int // 1-based
	col int // 1-based
}

func buildSheet(f *excelize.File, name string, sheet *schema.Sheet) error {
	maxWidth := 0
	for _, row := range sheet.Data {
		if len(row) > maxWidth {
			maxWidth = len(row)
		}
	}

	// Styles accumulate in precedence order: per-cell, then header-row,
	// then range overrides. Borders join in the final pass so nothing can
	// override them.
	styles := make(map[gridPos]schema.CellStyle)

	for r, row := range sheet.Data {
		for c := range row {
			cell := &row[c]
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			// A cell with a formula always writes the formula; the cached
			// value is a fallback for formula-free consumers only.
			if cell.Formula != "" {
				formula := strings.TrimPrefix(cell.Formula, "=")
				if err := f.SetCellFormula(name, axis, formula); err != nil {
					return fmt.Errorf("set formula %s: %w", axis, err)
				}
			} else if cell.Value != nil {
				if err := f.SetCellValue(name, axis, cell.Value); err != nil {
					return fmt.Errorf("set value %s: %w", axis, err)
				}
			}
			if cell.Style != nil {
				styles[gridPos{r + 1, c + 1}] = *cell.Style
			}
		}
	}

	// Header styling wins over per-cell styling for the properties it sets.
	if sheet.HeaderRow && len(sheet.Data) > 0 {
		for c := 1; c <= len(sheet.Data[0]); c++ {
			pos := gridPos{1, c}
			merged := styles[pos]
			overlayStyle(&merged, schema.CellStyle{
				Bold:      true,
				Fill:      "#" + headerFill,
				Alignment: "center",
			})
			styles[pos] = merged
		}
	}

	// Range overrides land after row/cell styling, so they take precedence
	// for cells inside the range.
	for _, rs := range sheet.StyleRanges {
		ref := ParseRange(rs.Range)
		for r := ref.StartRow; r <= ref.EndRow; r++ {
			for c := ref.StartCol; c <= ref.EndCol; c++ {
				pos := gridPos{r, c}
				merged := styles[pos]
				overlayStyle(&merged, rs.Style)
				styles[pos] = merged
			}
		}
	}

	if err := applyColumnConfig(f, name, sheet, maxWidth); err != nil {
		return err
	}

	// Final pass: every data cell gets the accumulated style plus the
	// uniform thin border.
	styleIDs := make(map[schema.CellStyle]int)
	for r := 1; r <= len(sheet.Data); r++ {
		for c := 1; c <= maxWidth; c++ {
			s := styles[gridPos{r, c}]
			id, ok := styleIDs[s]
			if !ok {
				var err error
				id, err = f.NewStyle(toExcelizeStyle(s))
				if err != nil {
					return fmt.Errorf("build style: %w", err)
				}
				styleIDs[s] = id
			}
			axis, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(name, axis, axis, id); err != nil {
				return fmt.Errorf("apply style %s: %w", axis, err)
			}
		}
	}

	return applyFreeze(f, name, sheet)
}

// overlayStyle copies the properties src sets onto dst.
func overlayStyle(dst *schema.CellStyle, src schema.CellStyle) {
	if src.Bold {
		dst.Bold = true
	}
	if src.Italic {
		dst.Italic = true
	}
	if src.FontSize != 0 {
		dst.FontSize = src.FontSize
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
	if src.Fill != "" {
		dst.Fill = src.Fill
	}
	if src.Alignment != "" {
		dst.Alignment = src.Alignment
	}
}

func toExcelizeStyle(s schema.CellStyle) *excelize.Style {
	style := &excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: borderGray, Style: 1},
			{Type: "right", Color: borderGray, Style: 1},
			{Type: "top", Color: borderGray, Style: 1},
			{Type: "bottom", Color: borderGray, Style: 1},
		},
	}
	if s.Bold || s.Italic || s.FontSize != 0 || s.Color != "" {
		style.Font = &excelize.Font{
			Bold:   s.Bold,
			Italic: s.Italic,
			Size:   s.FontSize,
			Color:  strings.TrimPrefix(s.Color, "#"),
		}
	}
	if s.Fill != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(s.Fill, "#")},
		}
	}
	if s.Alignment != "" {
		style.Alignment = &excelize.Alignment{Horizontal: s.Alignment, Vertical: "center"}
	}
	return style
}

func applyColumnConfig(f *excelize.File, name string, sheet *schema.Sheet, maxWidth int) error {
	for c := 1; c <= maxWidth; c++ {
		colName, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}

		var cfg *schema.ColumnConfig
		if c-1 < len(sheet.Columns) {
			cfg = &sheet.Columns[c-1]
		}

		width := 0.0
		if cfg != nil && cfg.Width > 0 {
			width = cfg.Width
		} else {
			width = autoWidth(sheet, c-1)
		}
		if err := f.SetColWidth(name, colName, colName, width); err != nil {
			return fmt.Errorf("set width %s: %w", colName, err)
		}

		if cfg != nil && cfg.Hidden {
			if err := f.SetColVisible(name, colName, false); err != nil {
				return fmt.Errorf("hide column %s: %w", colName, err)
			}
		}
	}
	return nil
}

// autoWidth sizes a column from the longest cell text plus padding,
// clamped to a sane range.
func autoWidth(sheet *schema.Sheet, col int) float64 {
	maxLen := 0
	for _, row := range sheet.Data {
		if col >= len(row) {
			continue
		}
		text := cellText(&row[col])
		if len(text) > maxLen {
			maxLen = len(text)
		}
	}
	w := maxLen + autoWidthPadding
	if w < autoWidthMin {
		w = autoWidthMin
	}
	if w > autoWidthMax {
		w = autoWidthMax
	}
	return float64(w)
}

func cellText(c *schema.Cell) string {
	if c.Value == nil {
		return ""
	}
	return fmt.Sprintf("%v", c.Value)
}

func applyFreeze(f *excelize.File, name string, sheet *schema.Sheet) error {
	if sheet.FreezeRow <= 0 && sheet.FreezeColumn <= 0 {
		return nil
	}
	topLeft, err := excelize.CoordinatesToCellName(sheet.FreezeColumn+1, sheet.FreezeRow+1)
	if err != nil {
		return err
	}
	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		XSplit:      sheet.FreezeColumn,
		YSplit:      sheet.FreezeRow,
		TopLeftCell: topLeft,
		ActivePane:  "bottomRight",
	})
}
