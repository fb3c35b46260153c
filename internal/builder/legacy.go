package builder

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/roboco-io/docforge/internal/schema"
)

// SpreadsheetFromCSV adapts raw CSV text into a one-sheet spreadsheet
// schema. The first row is treated as a header row.
func SpreadsheetFromCSV(data, sheetName string) (*schema.Spreadsheet, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	rows := make([][]schema.Cell, 0, len(records))
	for _, record := range records {
		row := make([]schema.Cell, 0, len(record))
		for _, field := range record {
			row = append(row, schema.Cell{Value: field})
		}
		rows = append(rows, row)
	}

	return &schema.Spreadsheet{
		Kind: schema.KindSpreadsheet,
		Sheets: []schema.Sheet{{
			Name:      sheetName,
			Data:      rows,
			HeaderRow: len(rows) > 1,
		}},
	}, nil
}

// legacyDeck recognizes the old loose deck shape: a map with a title and
// a slides array whose bullets are plain strings. Returns nil when the
// input does not look like that shape.
func legacyDeck(input any) *schema.Presentation {
	m, ok := input.(map[string]any)
	if !ok {
		return nil
	}
	rawSlides, ok := m["slides"].([]any)
	if !ok {
		return nil
	}

	deck := schema.NewPresentation(stringField(m, "title"))
	for i, rawSlide := range rawSlides {
		sm, ok := rawSlide.(map[string]any)
		if !ok {
			continue
		}
		slide := schema.Slide{
			Layout:   schema.LayoutTitleContent,
			Title:    stringField(sm, "title"),
			Subtitle: stringField(sm, "subtitle"),
			Content:  stringField(sm, "content"),
			Notes:    stringField(sm, "notes"),
		}
		if i == 0 && len(sm) <= 2 && slide.Title != "" {
			slide.Layout = schema.LayoutTitle
		}
		if rawBullets, ok := sm["bullets"].([]any); ok {
			for _, rb := range rawBullets {
				if text, ok := rb.(string); ok {
					slide.Bullets = append(slide.Bullets, schema.Bullet{Text: text})
				}
			}
		}
		deck.AddSlide(slide)
	}
	if len(deck.Slides) == 0 {
		return nil
	}
	return deck
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
