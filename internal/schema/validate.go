package schema

// Schema kind discriminants.
const (
	KindDocument     = "document"
	KindPresentation = "presentation"
	KindSpreadsheet  = "spreadsheet"
)

// Validation here is intentionally shallow: it checks that the top-level
// shape is present (kind tag, metadata, content collection) and nothing
// more. It exists to prevent crashes on obviously malformed input, not to
// enforce business rules; an empty table or a slide with no title passes.

// ValidateDocument reports whether d is structurally a document schema.
func ValidateDocument(d *Document) bool {
	if d == nil {
		return false
	}
	if d.Kind != "" && d.Kind != KindDocument {
		return false
	}
	return d.Sections != nil
}

// ValidatePresentation reports whether p is structurally a presentation
// schema.
func ValidatePresentation(p *Presentation) bool {
	if p == nil {
		return false
	}
	if p.Kind != "" && p.Kind != KindPresentation {
		return false
	}
	return p.Slides != nil
}

// ValidateSpreadsheet reports whether s is structurally a spreadsheet
// schema.
func ValidateSpreadsheet(s *Spreadsheet) bool {
	if s == nil {
		return false
	}
	if s.Kind != "" && s.Kind != KindSpreadsheet {
		return false
	}
	return s.Sheets != nil
}

// DetectKind inspects a loose decoded JSON object and returns the schema
// kind it claims, or "" when it is not schema-shaped. Legacy objects without
// a kind tag are classified by their content collection.
func DetectKind(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	switch m["kind"] {
	case KindDocument, KindPresentation, KindSpreadsheet:
		return m["kind"].(string)
	}
	if _, ok := m["sections"]; ok {
		return KindDocument
	}
	if _, ok := m["slides"]; ok {
		return KindPresentation
	}
	if _, ok := m["sheets"]; ok {
		return KindSpreadsheet
	}
	return ""
}
