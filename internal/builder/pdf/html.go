package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"
)

// Per-tag presentation for the legacy HTML path. These values are fixed
// and independent of any document theme.
type tagStyle struct {
	size   float64
	style  string // gofpdf style string: "", "B", "I"
	r      int
	g      int
	b      int
	gap    float64
	factor float64
}

var htmlTagStyles = map[string]tagStyle{
	"h1": {size: 20, style: "B", r: 31, g: 78, b: 121, gap: 5, factor: headingLineFactor},
	"h2": {size: 16, style: "B", r: 31, g: 78, b: 121, gap: 4, factor: headingLineFactor},
	"h3": {size: 13, style: "B", r: 60, g: 60, b: 60, gap: 3, factor: headingLineFactor},
	"h4": {size: 12, style: "B", r: 60, g: 60, b: 60, gap: 3, factor: headingLineFactor},
	"p":  {size: 11, style: "", r: 0, g: 0, b: 0, gap: 3, factor: bodyLineFactor},
	"li": {size: 11, style: "", r: 0, g: 0, b: 0, gap: 1.5, factor: bodyLineFactor},
}

type htmlRenderer struct {
	pdf       *gofpdf.Fpdf
	tr        func(string) string
	cur       cursor
	listDepth int
	listIndex int // current item number inside an <ol>, 0 for <ul>
}

// BuildFromHTML renders raw HTML markup into a PDF. This is a legacy
// compatibility path that walks the markup tree directly with its own
// hard-coded styling; it does not go through the document schema.
func BuildFromHTML(markup, title string) ([]byte, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetAutoPageBreak(false, pageMargin)
	p.AddPage()
	r := &htmlRenderer{
		pdf: p,
		tr:  p.UnicodeTranslatorFromDescriptor(""),
		cur: cursor{Y: pageMargin},
	}

	if title != "" {
		r.writeBlock(title, tagStyle{size: 24, style: "B", r: 31, g: 78, b: 121, gap: 6, factor: headingLineFactor}, 0, "")
	}
	r.walk(root)

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *htmlRenderer) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "h1", "h2", "h3", "h4", "p":
			r.writeBlock(nodeText(n), htmlTagStyles[n.Data], 0, "")
			return
		case "ul":
			r.listDepth++
			prev := r.listIndex
			r.listIndex = 0
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				r.walk(c)
			}
			r.listIndex = prev
			r.listDepth--
			r.cur.Y += 2
			return
		case "ol":
			r.listDepth++
			prev := r.listIndex
			r.listIndex = 1
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				r.walk(c)
			}
			r.listIndex = prev
			r.listDepth--
			r.cur.Y += 2
			return
		case "li":
			prefix := "• "
			if r.listIndex > 0 {
				prefix = fmt.Sprintf("%d. ", r.listIndex)
				r.listIndex++
			}
			indent := float64(r.listDepth-1) * 6
			r.writeBlock(nodeText(n), htmlTagStyles["li"], indent, prefix)
			return
		case "hr":
			r.ensure(2 * dividerGap)
			r.cur.Y += dividerGap
			r.pdf.SetDrawColor(200, 200, 200)
			r.pdf.SetLineWidth(0.3)
			r.pdf.Line(pageMargin, r.cur.Y, pageMargin+contentWidth, r.cur.Y)
			r.cur.Y += dividerGap
			return
		case "br":
			r.cur.Y += htmlTagStyles["p"].size * bodyLineFactor
			return
		case "script", "style", "head":
			return
		}
	}
	// Unknown tags contribute nothing themselves; their children still
	// render.
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

func (r *htmlRenderer) ensure(height float64) {
	if r.cur.Y+height > pageHeight-pageMargin {
		r.pdf.AddPage()
		r.cur.Y = pageMargin
	}
}

func (r *htmlRenderer) writeBlock(text string, ts tagStyle, indent float64, prefix string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	r.pdf.SetFont("Helvetica", ts.style, ts.size)
	r.pdf.SetTextColor(ts.r, ts.g, ts.b)

	x := pageMargin + indent
	prefixWidth := 0.0
	if prefix != "" {
		prefix = r.tr(prefix)
		prefixWidth = r.pdf.GetStringWidth(prefix)
	}

	lines := r.pdf.SplitText(r.tr(text), contentWidth-indent-prefixWidth)
	lineHeight := ts.size * ts.factor
	for i, line := range lines {
		r.ensure(lineHeight)
		r.cur.Y += lineHeight
		if i == 0 && prefix != "" {
			r.pdf.Text(x, r.cur.Y, prefix+line)
		} else {
			r.pdf.Text(x+prefixWidth, r.cur.Y, line)
		}
	}
	r.cur.Y += ts.gap
}

// nodeText concatenates all text nodes beneath n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
