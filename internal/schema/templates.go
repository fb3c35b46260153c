package schema

import "sort"

// Starter templates are seed schemas handed to callers for editing. They
// participate in no runtime behavior: getters return deep copies so edits
// never leak back into the library.

var documentTemplates = map[string]*Document{
	"report": {
		Kind:     KindDocument,
		Metadata: Metadata{Title: "Quarterly Report", Subject: "Business report"},
		Theme:    DefaultDocTheme(),
		Sections: []Section{{
			Header: "Quarterly Report",
			Footer: "Confidential",
			Elements: []Element{
				{Type: ElementHeading, Heading: &Heading{Text: "Executive Summary", Level: 1}},
				{Type: ElementParagraph, Paragraph: &Paragraph{Text: "Summarize the quarter's performance, key wins and risks in two or three sentences."}},
				{Type: ElementHeading, Heading: &Heading{Text: "Key Metrics", Level: 2}},
				{Type: ElementTable, Table: &Table{Rows: [][]string{
					{"Metric", "Target", "Actual"},
					{"Revenue", "$0", "$0"},
					{"New customers", "0", "0"},
				}}},
				{Type: ElementDivider},
				{Type: ElementHeading, Heading: &Heading{Text: "Next Steps", Level: 2}},
				{Type: ElementList, List: &List{Ordered: true, Items: []string{
					"Review results with leadership",
					"Adjust targets for next quarter",
				}}},
			},
		}},
	},
	"invoice": {
		Kind:     KindDocument,
		Metadata: Metadata{Title: "Invoice", Subject: "Invoice"},
		Theme:    DefaultDocTheme(),
		Sections: []Section{{
			Elements: []Element{
				{Type: ElementHeading, Heading: &Heading{Text: "Invoice #0001", Level: 1}},
				{Type: ElementParagraph, Paragraph: &Paragraph{Text: "Billed to: Client Name\nDue date: on receipt"}},
				{Type: ElementTable, Table: &Table{Rows: [][]string{
					{"Description", "Qty", "Rate", "Amount"},
					{"Consulting", "1", "$100.00", "$100.00"},
				}}},
				{Type: ElementParagraph, Paragraph: &Paragraph{Text: "Total due: $100.00", Alignment: "right"}},
			},
		}},
	},
	"resume": {
		Kind:     KindDocument,
		Metadata: Metadata{Title: "Resume"},
		Theme:    DefaultDocTheme(),
		Sections: []Section{{
			Elements: []Element{
				{Type: ElementHeading, Heading: &Heading{Text: "Your Name", Level: 1}},
				{Type: ElementParagraph, Paragraph: &Paragraph{Text: "email@example.com | city, country", Alignment: "center"}},
				{Type: ElementHeading, Heading: &Heading{Text: "Experience", Level: 2}},
				{Type: ElementList, List: &List{Items: []string{
					"Role, Company (2020-present)",
					"Role, Company (2017-2020)",
				}}},
				{Type: ElementHeading, Heading: &Heading{Text: "Education", Level: 2}},
				{Type: ElementParagraph, Paragraph: &Paragraph{Text: "Degree, Institution"}},
			},
		}},
	},
	"meeting_notes": {
		Kind:     KindDocument,
		Metadata: Metadata{Title: "Meeting Notes"},
		Theme:    DefaultDocTheme(),
		Sections: []Section{{
			Elements: []Element{
				{Type: ElementHeading, Heading: &Heading{Text: "Meeting Notes", Level: 1}},
				{Type: ElementParagraph, Paragraph: &Paragraph{Text: "Date: \nAttendees: "}},
				{Type: ElementHeading, Heading: &Heading{Text: "Agenda", Level: 2}},
				{Type: ElementList, List: &List{Ordered: true, Items: []string{"Topic one", "Topic two"}}},
				{Type: ElementHeading, Heading: &Heading{Text: "Action Items", Level: 2}},
				{Type: ElementList, List: &List{Items: []string{"Owner - action"}}},
			},
		}},
	},
}

var presentationTemplates = map[string]*Presentation{
	"pitch_deck": {
		Kind:     KindPresentation,
		Metadata: Metadata{Title: "Pitch Deck"},
		Theme:    DefaultSlideTheme(),
		Slides: []Slide{
			{Layout: LayoutTitle, Title: "Company Name", Subtitle: "One-line value proposition"},
			{Layout: LayoutTitleContent, Title: "The Problem", Bullets: []Bullet{
				{Text: "Pain point one"},
				{Text: "Pain point two"},
			}},
			{Layout: LayoutTitleContent, Title: "Our Solution", Bullets: []Bullet{
				{Text: "What we build"},
				{Text: "Why it wins", Level: 1},
			}},
			{Layout: LayoutComparison, Title: "Us vs. Them",
				LeftTitle:    "Us",
				RightTitle:   "Them",
				LeftBullets:  []Bullet{{Text: "Fast"}, {Text: "Simple"}},
				RightBullets: []Bullet{{Text: "Slow"}, {Text: "Complex"}}},
			{Layout: LayoutQuote, Quote: "This changed how we work.", QuoteAuthor: "Early customer"},
		},
	},
	"project_update": {
		Kind:     KindPresentation,
		Metadata: Metadata{Title: "Project Update"},
		Theme:    DefaultSlideTheme(),
		Slides: []Slide{
			{Layout: LayoutTitle, Title: "Project Update", Subtitle: "Status as of this week"},
			{Layout: LayoutSectionHeader, Title: "Progress"},
			{Layout: LayoutTwoColumn, Title: "Done / Next",
				LeftBullets:  []Bullet{{Text: "Shipped feature A"}},
				RightBullets: []Bullet{{Text: "Start feature B"}}},
		},
	},
}

var spreadsheetTemplates = map[string]*Spreadsheet{
	"budget": {
		Kind:     KindSpreadsheet,
		Metadata: Metadata{Title: "Budget"},
		Sheets: []Sheet{{
			Name:      "Budget",
			HeaderRow: true,
			FreezeRow: 1,
			Data: [][]Cell{
				{{Value: "Category"}, {Value: "Planned"}, {Value: "Actual"}, {Value: "Difference"}},
				{{Value: "Rent"}, {Value: 1200}, {Value: 1200}, {Formula: "=C2-B2"}},
				{{Value: "Groceries"}, {Value: 400}, {Value: 385}, {Formula: "=C3-B3"}},
				{{Value: "Total"}, {Formula: "=SUM(B2:B3)"}, {Formula: "=SUM(C2:C3)"}, {Formula: "=C4-B4"}},
			},
		}},
	},
	"project_tracker": {
		Kind:     KindSpreadsheet,
		Metadata: Metadata{Title: "Project Tracker"},
		Sheets: []Sheet{{
			Name:         "Tasks",
			HeaderRow:    true,
			FreezeRow:    1,
			FreezeColumn: 1,
			Data: [][]Cell{
				{{Value: "Task"}, {Value: "Owner"}, {Value: "Status"}, {Value: "Due"}},
				{{Value: "Kickoff"}, {Value: ""}, {Value: "Done"}, {Value: ""}},
				{{Value: "First milestone"}, {Value: ""}, {Value: "In progress"}, {Value: ""}},
			},
		}},
	},
}

// DocumentTemplate returns a deep copy of the named starter document.
func DocumentTemplate(name string) (*Document, bool) {
	t, ok := documentTemplates[name]
	if !ok {
		return nil, false
	}
	out, err := CloneDocument(t)
	if err != nil {
		return nil, false
	}
	return out, true
}

// PresentationTemplate returns a deep copy of the named starter deck.
func PresentationTemplate(name string) (*Presentation, bool) {
	t, ok := presentationTemplates[name]
	if !ok {
		return nil, false
	}
	out, err := ClonePresentation(t)
	if err != nil {
		return nil, false
	}
	return out, true
}

// SpreadsheetTemplate returns a deep copy of the named starter workbook.
func SpreadsheetTemplate(name string) (*Spreadsheet, bool) {
	t, ok := spreadsheetTemplates[name]
	if !ok {
		return nil, false
	}
	out, err := CloneSpreadsheet(t)
	if err != nil {
		return nil, false
	}
	return out, true
}

// TemplateNames returns the sorted template names for a schema kind.
func TemplateNames(kind string) []string {
	var names []string
	switch kind {
	case KindDocument:
		for name := range documentTemplates {
			names = append(names, name)
		}
	case KindPresentation:
		for name := range presentationTemplates {
			names = append(names, name)
		}
	case KindSpreadsheet:
		for name := range spreadsheetTemplates {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
