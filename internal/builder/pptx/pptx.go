// Package pptx converts a presentation schema into a PPTX package. The
// package is assembled directly as an OPC zip: every XML part is
// generated here rather than patched into a binary template, so the
// output carries the deck's theme colors and fonts.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/roboco-io/docforge/internal/fetch"
	"github.com/roboco-io/docforge/internal/schema"
)

type slideMedia struct {
	data []byte
	ext  string
}

// Build renders the presentation schema into PPTX bytes.
func Build(deck *schema.Presentation) ([]byte, error) {
	slideCount := len(deck.Slides)

	// Fetch slide images up front; a failed or pending image drops off
	// its slide rather than failing the build.
	media := make(map[int]slideMedia, slideCount)
	var notes []int
	for i := range deck.Slides {
		slide := &deck.Slides[i]
		if slide.Notes != "" {
			notes = append(notes, i+1)
		}
		if slide.Image == nil || slide.Image.URL == "" {
			continue
		}
		data, mime, err := fetch.Image(slide.Image.URL)
		if err != nil {
			continue
		}
		ext := fetch.Format(mime)
		if ext == "" {
			continue
		}
		media[i+1] = slideMedia{data: data, ext: ext}
	}
	hasNotes := len(notes) > 0

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	type part struct {
		name    string
		content string
	}
	parts := []part{
		{"[Content_Types].xml", contentTypesXML(slideCount, notes)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML(deck.Metadata.Title, deck.Metadata.Author)},
		{"docProps/app.xml", appPropsXML(slideCount)},
		{"ppt/presentation.xml", presentationXML(slideCount, hasNotes)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(slideCount, hasNotes)},
		{"ppt/presProps.xml", presPropsXML()},
		{"ppt/viewProps.xml", viewPropsXML()},
		{"ppt/theme/theme1.xml", themeXML(deck.Theme.PrimaryColor, deck.Theme.TextColor, deck.Theme.HeadingFont, deck.Theme.BodyFont)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML(deck.Theme.BackgroundColor)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML()},
	}
	if hasNotes {
		parts = append(parts,
			part{"ppt/theme/theme2.xml", themeXML(deck.Theme.PrimaryColor, deck.Theme.TextColor, deck.Theme.HeadingFont, deck.Theme.BodyFont)},
			part{"ppt/notesMasters/notesMaster1.xml", notesMasterXML()},
			part{"ppt/notesMasters/_rels/notesMaster1.xml.rels", notesMasterRelsXML()},
		)
	}

	for _, part := range parts {
		if err := writeZipText(w, part.name, part.content); err != nil {
			w.Close()
			return nil, err
		}
	}

	for i := range deck.Slides {
		slide := &deck.Slides[i]
		n := i + 1

		imageRelID := ""
		imageTarget := ""
		if m, ok := media[n]; ok {
			imageRelID = "rId2"
			mediaName := fmt.Sprintf("ppt/media/image%d.%s", n, m.ext)
			imageTarget = fmt.Sprintf("../media/image%d.%s", n, m.ext)
			if err := writeZipBytes(w, mediaName, m.data); err != nil {
				w.Close()
				return nil, err
			}
		}

		if err := writeZipText(w, fmt.Sprintf("ppt/slides/slide%d.xml", n), buildSlideXML(slide, deck.Theme, imageRelID)); err != nil {
			w.Close()
			return nil, err
		}
		if err := writeZipText(w, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML(imageTarget, slide.Notes != "", n)); err != nil {
			w.Close()
			return nil, err
		}

		if slide.Notes != "" {
			if err := writeZipText(w, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), notesSlideXML(slide.Notes)); err != nil {
				w.Close()
				return nil, err
			}
			if err := writeZipText(w, fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), notesSlideRelsXML(n)); err != nil {
				w.Close()
				return nil, err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close pptx package: %w", err)
	}
	return buf.Bytes(), nil
}

func writeZipText(w *zip.Writer, name, content string) error {
	f, err := w.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}

func writeZipBytes(w *zip.Writer, name string, payload []byte) error {
	f, err := w.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := f.Write(payload); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}
