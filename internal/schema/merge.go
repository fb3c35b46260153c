package schema

// Merge follows a deliberate asymmetry: metadata and theme are merged
// key-by-key (edits there are usually partial), while content collections
// (sections, slides, sheets) are replaced wholesale when provided (content
// edits are usually a full rewrite). The original is never mutated.

// MetadataPatch holds partial metadata changes. Nil fields keep the
// original value.
type MetadataPatch struct {
	Title   *string `json:"title,omitempty"`
	Author  *string `json:"author,omitempty"`
	Subject *string `json:"subject,omitempty"`
}

// DocThemePatch holds partial document theme changes.
type DocThemePatch struct {
	FontFamily     *string  `json:"font_family,omitempty"`
	FontSize       *float64 `json:"font_size,omitempty"`
	HeadingFont    *string  `json:"heading_font,omitempty"`
	PrimaryColor   *string  `json:"primary_color,omitempty"`
	SecondaryColor *string  `json:"secondary_color,omitempty"`
}

// SlideThemePatch holds partial presentation theme changes.
type SlideThemePatch struct {
	PrimaryColor    *string `json:"primary_color,omitempty"`
	SecondaryColor  *string `json:"secondary_color,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
	TextColor       *string `json:"text_color,omitempty"`
	HeadingFont     *string `json:"heading_font,omitempty"`
	BodyFont        *string `json:"body_font,omitempty"`
}

// DocumentPatch describes changes applied by MergeDocument.
type DocumentPatch struct {
	Metadata *MetadataPatch `json:"metadata,omitempty"`
	Theme    *DocThemePatch `json:"theme,omitempty"`
	Sections []Section      `json:"sections,omitempty"`
}

// PresentationPatch describes changes applied by MergePresentation.
type PresentationPatch struct {
	Metadata *MetadataPatch   `json:"metadata,omitempty"`
	Theme    *SlideThemePatch `json:"theme,omitempty"`
	Slides   []Slide          `json:"slides,omitempty"`
}

// SpreadsheetPatch describes changes applied by MergeSpreadsheet.
type SpreadsheetPatch struct {
	Metadata *MetadataPatch `json:"metadata,omitempty"`
	Sheets   []Sheet        `json:"sheets,omitempty"`
}

func mergeMetadata(dst *Metadata, p *MetadataPatch) {
	if p == nil {
		return
	}
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Author != nil {
		dst.Author = *p.Author
	}
	if p.Subject != nil {
		dst.Subject = *p.Subject
	}
}

// MergeDocument returns a new document with the patch applied.
func MergeDocument(original *Document, patch *DocumentPatch) (*Document, error) {
	out, err := CloneDocument(original)
	if err != nil {
		return nil, err
	}
	if patch == nil {
		return out, nil
	}
	mergeMetadata(&out.Metadata, patch.Metadata)
	if t := patch.Theme; t != nil {
		if t.FontFamily != nil {
			out.Theme.FontFamily = *t.FontFamily
		}
		if t.FontSize != nil {
			out.Theme.FontSize = *t.FontSize
		}
		if t.HeadingFont != nil {
			out.Theme.HeadingFont = *t.HeadingFont
		}
		if t.PrimaryColor != nil {
			out.Theme.PrimaryColor = *t.PrimaryColor
		}
		if t.SecondaryColor != nil {
			out.Theme.SecondaryColor = *t.SecondaryColor
		}
	}
	if patch.Sections != nil {
		out.Sections = patch.Sections
	}
	return out, nil
}

// MergePresentation returns a new presentation with the patch applied.
func MergePresentation(original *Presentation, patch *PresentationPatch) (*Presentation, error) {
	out, err := ClonePresentation(original)
	if err != nil {
		return nil, err
	}
	if patch == nil {
		return out, nil
	}
	mergeMetadata(&out.Metadata, patch.Metadata)
	if t := patch.Theme; t != nil {
		if t.PrimaryColor != nil {
			out.Theme.PrimaryColor = *t.PrimaryColor
		}
		if t.SecondaryColor != nil {
			out.Theme.SecondaryColor = *t.SecondaryColor
		}
		if t.BackgroundColor != nil {
			out.Theme.BackgroundColor = *t.BackgroundColor
		}
		if t.TextColor != nil {
			out.Theme.TextColor = *t.TextColor
		}
		if t.HeadingFont != nil {
			out.Theme.HeadingFont = *t.HeadingFont
		}
		if t.BodyFont != nil {
			out.Theme.BodyFont = *t.BodyFont
		}
	}
	if patch.Slides != nil {
		out.Slides = patch.Slides
	}
	return out, nil
}

// MergeSpreadsheet returns a new spreadsheet with the patch applied.
func MergeSpreadsheet(original *Spreadsheet, patch *SpreadsheetPatch) (*Spreadsheet, error) {
	out, err := CloneSpreadsheet(original)
	if err != nil {
		return nil, err
	}
	if patch == nil {
		return out, nil
	}
	mergeMetadata(&out.Metadata, patch.Metadata)
	if patch.Sheets != nil {
		out.Sheets = patch.Sheets
	}
	return out, nil
}
