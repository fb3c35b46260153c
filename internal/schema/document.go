// Package schema defines the format-agnostic semantic models for documents,
// presentations and spreadsheets. Schemas are the input to every format
// builder and carry no behavior beyond validation, merge and structural
// helpers.
package schema

import "strings"

// Document represents the semantic model of a word-processor document.
type Document struct {
	Kind     string    `json:"kind"` // always "document"
	Metadata Metadata  `json:"metadata"`
	Theme    DocTheme  `json:"theme"`
	Sections []Section `json:"sections"`
}

// Metadata contains document metadata shared by all schema kinds.
type Metadata struct {
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// DocTheme contains document-wide typography and brand colors.
type DocTheme struct {
	FontFamily     string  `json:"font_family,omitempty"`
	FontSize       float64 `json:"font_size,omitempty"` // body size in points
	HeadingFont    string  `json:"heading_font,omitempty"`
	PrimaryColor   string  `json:"primary_color,omitempty"`   // hex, e.g. "#1A73E8"
	SecondaryColor string  `json:"secondary_color,omitempty"` // hex
}

// Section is an ordered group of elements with optional page furniture.
type Section struct {
	Header      string    `json:"header,omitempty"`
	Footer      string    `json:"footer,omitempty"`
	Orientation string    `json:"orientation,omitempty"` // "portrait" (default) or "landscape"
	Elements    []Element `json:"elements"`
}

// ElementType discriminates the element union.
type ElementType string

const (
	ElementParagraph ElementType = "paragraph"
	ElementHeading   ElementType = "heading"
	ElementList      ElementType = "list"
	ElementTable     ElementType = "table"
	ElementDivider   ElementType = "divider"
	ElementImage     ElementType = "image"
)

// Element is a tagged union over the document element kinds. Exactly one
// payload pointer matching Type is non-nil.
type Element struct {
	Type      ElementType `json:"type"`
	Paragraph *Paragraph  `json:"paragraph,omitempty"`
	Heading   *Heading    `json:"heading,omitempty"`
	List      *List       `json:"list,omitempty"`
	Table     *Table      `json:"table,omitempty"`
	Image     *Image      `json:"image,omitempty"`
}

// Paragraph is body text, either plain or as styled runs. When Runs is
// non-empty it takes precedence over Text.
type Paragraph struct {
	Text      string `json:"text,omitempty"`
	Runs      []Run  `json:"runs,omitempty"`
	Alignment string `json:"alignment,omitempty"` // left, center, right, justify
}

// Run is a styled span of paragraph text.
type Run struct {
	Text      string  `json:"text"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Color     string  `json:"color,omitempty"` // hex
	Size      float64 `json:"size,omitempty"`  // points
}

// PlainText flattens the paragraph to unstyled text, joining runs when
// present.
func (p *Paragraph) PlainText() string {
	if len(p.Runs) == 0 {
		return p.Text
	}
	var b strings.Builder
	for _, run := range p.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Heading is a section heading, levels 1-4.
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// ClampedLevel returns the heading level forced into the 1-4 range.
func (h *Heading) ClampedLevel() int {
	if h.Level < 1 {
		return 1
	}
	if h.Level > 4 {
		return 4
	}
	return h.Level
}

// List is a flat bullet or numbered list.
type List struct {
	Ordered bool     `json:"ordered"`
	Items   []string `json:"items"`
}

// Table holds rows of plain-text cells. HeaderRow nil is treated as true:
// the first row renders as a header unless explicitly disabled.
type Table struct {
	Rows      [][]string `json:"rows"`
	HeaderRow *bool      `json:"header_row,omitempty"`
	Style     string     `json:"style,omitempty"` // builder-specific variant hint
}

// HasHeader reports whether the first row should render as a header row.
func (t *Table) HasHeader() bool {
	return t.HeaderRow == nil || *t.HeaderRow
}

// Image references a picture either by resolved URL or by a generation
// prompt awaiting the image resolution pass. At any stable point exactly one
// of URL and AIPrompt is set.
type Image struct {
	URL      string  `json:"url,omitempty"`
	AIPrompt string  `json:"ai_prompt,omitempty"`
	Width    float64 `json:"width,omitempty"` // display width in mm, 0 = content width
	Caption  string  `json:"caption,omitempty"`
}

// Pending reports whether the image still awaits generation.
func (img *Image) Pending() bool {
	return img.URL == "" && img.AIPrompt != ""
}

// NewDocument creates an empty document with one section.
func NewDocument(title string) *Document {
	return &Document{
		Kind:     KindDocument,
		Metadata: Metadata{Title: title},
		Theme:    DefaultDocTheme(),
		Sections: []Section{{Elements: make([]Element, 0)}},
	}
}

// DefaultDocTheme returns the baseline document theme.
func DefaultDocTheme() DocTheme {
	return DocTheme{
		FontFamily:     "Helvetica",
		FontSize:       11,
		HeadingFont:    "Helvetica",
		PrimaryColor:   "#1F4E79",
		SecondaryColor: "#666666",
	}
}

// WithDefaults fills unset theme fields from the default theme, so
// builders can rely on every field being usable.
func (t DocTheme) WithDefaults() DocTheme {
	def := DefaultDocTheme()
	if t.FontFamily == "" {
		t.FontFamily = def.FontFamily
	}
	if t.FontSize == 0 {
		t.FontSize = def.FontSize
	}
	if t.HeadingFont == "" {
		t.HeadingFont = def.HeadingFont
	}
	if t.PrimaryColor == "" {
		t.PrimaryColor = def.PrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = def.SecondaryColor
	}
	return t
}

// AddParagraph appends a plain-text paragraph element.
func (s *Section) AddParagraph(text string) {
	s.Elements = append(s.Elements, Element{
		Type:      ElementParagraph,
		Paragraph: &Paragraph{Text: text},
	})
}

// AddHeading appends a heading element. Levels are clamped to 1-4.
func (s *Section) AddHeading(text string, level int) {
	if level < 1 {
		level = 1
	}
	if level > 4 {
		level = 4
	}
	s.Elements = append(s.Elements, Element{
		Type:    ElementHeading,
		Heading: &Heading{Text: text, Level: level},
	})
}

// AddList appends a list element.
func (s *Section) AddList(ordered bool, items ...string) {
	s.Elements = append(s.Elements, Element{
		Type: ElementList,
		List: &List{Ordered: ordered, Items: items},
	})
}

// AddTable appends a table element.
func (s *Section) AddTable(t *Table) {
	s.Elements = append(s.Elements, Element{Type: ElementTable, Table: t})
}

// AddDivider appends a horizontal rule element.
func (s *Section) AddDivider() {
	s.Elements = append(s.Elements, Element{Type: ElementDivider})
}

// AddImage appends an image element.
func (s *Section) AddImage(img *Image) {
	s.Elements = append(s.Elements, Element{Type: ElementImage, Image: img})
}
