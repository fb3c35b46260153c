package docx

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"github.com/roboco-io/docforge/internal/schema"
)

var htmlTagPattern = regexp.MustCompile(`<[a-zA-Z][^>]*>`)

// FromLegacy adapts a legacy markup string into a document schema.
// Strings containing HTML tags are parsed as HTML; anything else is
// treated as markdown and converted first. The result renders through
// the regular schema path, so legacy callers get the same output
// pipeline as schema callers.
func FromLegacy(markup, title string) (*schema.Document, error) {
	if !htmlTagPattern.MatchString(markup) {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(markup), &buf); err != nil {
			return nil, fmt.Errorf("convert markdown: %w", err)
		}
		markup = buf.String()
	}
	return FromHTML(markup, title)
}

// FromHTML converts an HTML fragment or page into a document schema.
// Unknown tags contribute their children; structural tags map onto
// schema elements.
func FromHTML(markup, title string) (*schema.Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := schema.NewDocument(title)
	sec := &doc.Sections[0]
	walkHTML(root, sec)
	return doc, nil
}

func walkHTML(n *html.Node, sec *schema.Section) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			sec.AddHeading(textContent(n), level)
			return
		case "p":
			if text := textContent(n); text != "" {
				sec.AddParagraph(text)
			}
			return
		case "ul":
			sec.AddList(false, listItems(n)...)
			return
		case "ol":
			sec.AddList(true, listItems(n)...)
			return
		case "table":
			if rows := tableRows(n); len(rows) > 0 {
				sec.AddTable(&schema.Table{Rows: rows})
			}
			return
		case "hr":
			sec.AddDivider()
			return
		case "img":
			if src := attr(n, "src"); src != "" {
				sec.AddImage(&schema.Image{URL: src, Caption: attr(n, "alt")})
			}
			return
		case "script", "style", "head":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(c, sec)
	}
}

func listItems(n *html.Node) []string {
	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			if text := textContent(c); text != "" {
				items = append(items, text)
			}
		}
	}
	return items
}

func tableRows(n *html.Node) [][]string {
	var rows [][]string
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var row []string
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, textContent(c))
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return rows
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
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
