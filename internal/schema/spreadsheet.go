package schema

import (
	"bytes"
	"encoding/json"
)

// Spreadsheet represents the semantic model of a workbook.
type Spreadsheet struct {
	Kind     string   `json:"kind"` // always "spreadsheet"
	Metadata Metadata `json:"metadata"`
	Sheets   []Sheet  `json:"sheets"`
}

// Sheet is one worksheet: ordered data rows plus styling configuration.
type Sheet struct {
	Name         string         `json:"name"`
	Data         [][]Cell       `json:"data"`
	HeaderRow    bool           `json:"header_row,omitempty"` // style row 1 as a header
	Columns      []ColumnConfig `json:"columns,omitempty"`
	StyleRanges  []RangeStyle   `json:"style_ranges,omitempty"`
	FreezeRow    int            `json:"freeze_row,omitempty"`
	FreezeColumn int            `json:"freeze_column,omitempty"`
}

// ColumnConfig carries per-column width/visibility overrides. Zero width
// means auto-width.
type ColumnConfig struct {
	Width  float64 `json:"width,omitempty"`
	Hidden bool    `json:"hidden,omitempty"`
}

// RangeStyle applies a style to every cell inside a range ("A1:D5").
// Range styles are applied after per-cell styles and win for the properties
// they set.
type RangeStyle struct {
	Range string    `json:"range"`
	Style CellStyle `json:"style"`
}

// CellStyle is the portable subset of cell formatting the builders honor.
type CellStyle struct {
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`
	Color     string  `json:"color,omitempty"` // font color, hex
	Fill      string  `json:"fill,omitempty"`  // background, hex
	Alignment string  `json:"alignment,omitempty"`
}

// Cell is a single worksheet cell. On the wire it is either a raw scalar
// (string, number, bool, null) or an object carrying an explicit value, an
// optional formula and an optional style. When Formula is set the Value is a
// cached fallback only; builders always prefer the formula.
type Cell struct {
	Value   any        `json:"value,omitempty"`
	Formula string     `json:"formula,omitempty"`
	Style   *CellStyle `json:"style,omitempty"`
}

// IsEmpty reports whether the cell carries neither value nor formula.
func (c *Cell) IsEmpty() bool {
	return c.Value == nil && c.Formula == ""
}

type structuredCell struct {
	Value   any        `json:"value,omitempty"`
	Formula string     `json:"formula,omitempty"`
	Style   *CellStyle `json:"style,omitempty"`
}

// UnmarshalJSON accepts both the raw-scalar and the structured object shape.
func (c *Cell) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var sc structuredCell
		if err := json.Unmarshal(trimmed, &sc); err != nil {
			return err
		}
		c.Value = sc.Value
		c.Formula = sc.Formula
		c.Style = sc.Style
		return nil
	}
	c.Formula = ""
	c.Style = nil
	return json.Unmarshal(trimmed, &c.Value)
}

// MarshalJSON writes the raw-scalar shape when the cell has no formula or
// style, keeping round-tripped schemas compact.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Formula == "" && c.Style == nil {
		return json.Marshal(c.Value)
	}
	return json.Marshal(structuredCell{Value: c.Value, Formula: c.Formula, Style: c.Style})
}

// NewSpreadsheet creates an empty workbook with a single sheet.
func NewSpreadsheet(title string) *Spreadsheet {
	return &Spreadsheet{
		Kind:     KindSpreadsheet,
		Metadata: Metadata{Title: title},
		Sheets:   []Sheet{{Name: "Sheet1", Data: make([][]Cell, 0)}},
	}
}

// AddRow appends a row of raw values to the sheet.
func (s *Sheet) AddRow(values ...any) {
	row := make([]Cell, 0, len(values))
	for _, v := range values {
		row = append(row, Cell{Value: v})
	}
	s.Data = append(s.Data, row)
}
