package schema

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Deep clones back the copy-on-write contract: merge and the image
// resolution pass always work on a fresh copy so callers can hold the
// original unchanged.

// CloneDocument returns a deep copy of d.
func CloneDocument(d *Document) (*Document, error) {
	out := &Document{}
	if err := deepcopy.Copy(out, d); err != nil {
		return nil, fmt.Errorf("clone document: %w", err)
	}
	return out, nil
}

// ClonePresentation returns a deep copy of p.
func ClonePresentation(p *Presentation) (*Presentation, error) {
	out := &Presentation{}
	if err := deepcopy.Copy(out, p); err != nil {
		return nil, fmt.Errorf("clone presentation: %w", err)
	}
	return out, nil
}

// CloneSpreadsheet returns a deep copy of s.
func CloneSpreadsheet(s *Spreadsheet) (*Spreadsheet, error) {
	out := &Spreadsheet{}
	if err := deepcopy.Copy(out, s); err != nil {
		return nil, fmt.Errorf("clone spreadsheet: %w", err)
	}
	return out, nil
}
