package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/roboco-io/docforge/internal/schema"
)

// Landscape A4 dimensions for the deck renderer.
const (
	deckPageWidth  = 297.0
	deckPageHeight = 210.0
	deckMargin     = 18.0
	deckWidth      = deckPageWidth - 2*deckMargin

	deckTitleSize    = 30.0
	deckSubtitleSize = 16.0
	deckHeadingSize  = 22.0
	deckBulletSize   = 13.0
	deckIndentStep   = 8.0
	deckBulletGap    = 3.0
)

// BuildFromDeck renders a presentation as a landscape PDF, one page per
// slide. This legacy path keeps its own layout code instead of going
// through the document renderer: title slides center their text, content
// slides stack a heading, an underline separator and indented bullets,
// and every page carries a page-number footer.
func BuildFromDeck(deck *schema.Presentation) ([]byte, error) {
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetAutoPageBreak(false, deckMargin)
	tr := p.UnicodeTranslatorFromDescriptor("")

	p.SetFooterFunc(func() {
		p.SetFont("Helvetica", "", 9)
		p.SetTextColor(150, 150, 150)
		footer := fmt.Sprintf("%d", p.PageNo())
		p.Text(deckPageWidth-deckMargin-p.GetStringWidth(footer), deckPageHeight-8, footer)
	})

	pr, pg, pb := hexToRGB(deck.Theme.PrimaryColor)

	for i := range deck.Slides {
		slide := &deck.Slides[i]
		p.AddPage()

		switch slide.Layout {
		case schema.LayoutTitle, schema.LayoutSectionHeader:
			renderDeckTitleSlide(p, tr, slide, pr, pg, pb)
		default:
			renderDeckContentSlide(p, tr, slide, pr, pg, pb)
		}
	}
	if len(deck.Slides) == 0 {
		p.AddPage()
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderDeckTitleSlide(p *gofpdf.Fpdf, tr func(string) string, slide *schema.Slide, pr, pg, pb int) {
	p.SetFont("Helvetica", "B", deckTitleSize)
	p.SetTextColor(pr, pg, pb)
	title := tr(slide.Title)
	y := deckPageHeight/2 - 5
	p.Text((deckPageWidth-p.GetStringWidth(title))/2, y, title)

	if slide.Subtitle != "" {
		p.SetFont("Helvetica", "", deckSubtitleSize)
		p.SetTextColor(100, 100, 100)
		sub := tr(slide.Subtitle)
		p.Text((deckPageWidth-p.GetStringWidth(sub))/2, y+14, sub)
	}
}

func renderDeckContentSlide(p *gofpdf.Fpdf, tr func(string) string, slide *schema.Slide, pr, pg, pb int) {
	y := deckMargin + 10

	if slide.Title != "" {
		p.SetFont("Helvetica", "B", deckHeadingSize)
		p.SetTextColor(pr, pg, pb)
		p.Text(deckMargin, y, tr(slide.Title))
		y += 4
		p.SetDrawColor(pr, pg, pb)
		p.SetLineWidth(0.6)
		p.Line(deckMargin, y, deckPageWidth-deckMargin, y)
		y += 10
	}

	p.SetTextColor(50, 50, 50)
	for _, bullet := range deckBullets(slide) {
		level := bullet.Level
		if level > 1 {
			level = 1
		}
		size := deckBulletSize - float64(level)*2
		p.SetFont("Helvetica", "", size)

		glyph := "• "
		if level > 0 {
			glyph = "- "
		}
		indent := deckMargin + float64(level)*deckIndentStep
		prefix := tr(glyph)
		prefixWidth := p.GetStringWidth(prefix)

		lines := p.SplitText(tr(bullet.Text), deckWidth-float64(level)*deckIndentStep-prefixWidth)
		for j, line := range lines {
			if y > deckPageHeight-deckMargin {
				break
			}
			y += size * bodyLineFactor
			if j == 0 {
				p.Text(indent, y, prefix+line)
			} else {
				p.Text(indent+prefixWidth, y, line)
			}
		}
		y += deckBulletGap
	}

	if slide.Content != "" {
		p.SetFont("Helvetica", "", deckBulletSize)
		for _, line := range p.SplitText(tr(slide.Content), deckWidth) {
			if y > deckPageHeight-deckMargin {
				break
			}
			y += deckBulletSize * bodyLineFactor
			p.Text(deckMargin, y, line)
		}
	}
}

// deckBullets flattens a slide's bullet sources into a single list: the
// main bullets first, then the two-column lists in left/right order.
func deckBullets(slide *schema.Slide) []schema.Bullet {
	out := make([]schema.Bullet, 0, len(slide.Bullets)+len(slide.LeftBullets)+len(slide.RightBullets))
	out = append(out, slide.Bullets...)
	out = append(out, slide.LeftBullets...)
	out = append(out, slide.RightBullets...)
	return out
}
