package pptx

import (
	"fmt"
	"strings"

	"github.com/roboco-io/docforge/internal/schema"
)

// emuRect is an absolute slide rectangle in EMU.
type emuRect struct {
	x, y, cx, cy int
}

// Fixed coordinate templates per layout. Content either fits these boxes
// or overflows; there is no dynamic slide layout.
var (
	titleRect    = emuRect{838200, 2130425, 10515600, 1325563}
	subtitleRect = emuRect{838200, 3602038, 10515600, 1500188}

	sectionTitleRect = emuRect{838200, 2768600, 10515600, 1325563}

	contentTitleRect = emuRect{838200, 365125, 10515600, 1325563}
	contentBodyRect  = emuRect{838200, 1825625, 10515600, 4351338}

	leftTitleRect  = emuRect{838200, 1825625, 5181600, 639763}
	rightTitleRect = emuRect{6172200, 1825625, 5181600, 639763}
	leftBodyRect   = emuRect{838200, 2540000, 5181600, 3636963}
	rightBodyRect  = emuRect{6172200, 2540000, 5181600, 3636963}

	quoteRect       = emuRect{1524000, 2286000, 9144000, 1828800}
	quoteAuthorRect = emuRect{1524000, 4343400, 9144000, 685800}

	halfBodyTextRect = emuRect{838200, 1825625, 5181600, 4351338}
)

// imageRects maps the image position enum onto its fixed placement;
// "full" fills the slide and ignores any requested size.
var imageRects = map[schema.ImagePosition]emuRect{
	schema.ImageLeft:   {838200, 1825625, 5181600, 4351338},
	schema.ImageRight:  {6172200, 1825625, 5181600, 4351338},
	schema.ImageCenter: {3048000, 1825625, 6096000, 4351338},
	schema.ImageFull:   {0, 0, slideCX, slideCY},
}

const (
	titleSize       = 4000 // hundredths of a point
	subtitleSize    = 2000
	sectionSize     = 3200
	headingSize     = 2800
	columnTitleSize = 2000
	bulletSize      = 1800
	contentSize     = 1800
	quoteSize       = 2400
	authorSize      = 1600
)

// buildSlideXML renders one slide part. imageRelID is the relationship id
// of the slide's image, or "" when the slide has none.
func buildSlideXML(slide *schema.Slide, theme schema.SlideTheme, imageRelID string) string {
	var shapes strings.Builder
	sb := shapeBuilder{theme: theme, out: &shapes, nextID: 2}

	switch slide.Layout {
	case schema.LayoutTitle:
		sb.textBox(titleRect, sb.para("ctr", 0, "", sb.run(slide.Title, titleSize, true, false, theme.PrimaryColor, theme.HeadingFont)))
		if slide.Subtitle != "" {
			sb.textBox(subtitleRect, sb.para("ctr", 0, "", sb.run(slide.Subtitle, subtitleSize, false, false, theme.SecondaryColor, theme.BodyFont)))
		}
	case schema.LayoutSectionHeader:
		sb.textBox(sectionTitleRect, sb.para("l", 0, "", sb.run(slide.Title, sectionSize, true, false, theme.PrimaryColor, theme.HeadingFont)))
		if slide.Subtitle != "" {
			sb.textBox(subtitleRect, sb.para("l", 0, "", sb.run(slide.Subtitle, subtitleSize, false, false, theme.SecondaryColor, theme.BodyFont)))
		}
	case schema.LayoutTwoColumn, schema.LayoutComparison:
		sb.heading(slide.Title)
		sb.columnTitle(leftTitleRect, slide.LeftTitle)
		sb.columnTitle(rightTitleRect, slide.RightTitle)
		sb.bulletBox(leftBodyRect, slide.LeftBullets)
		sb.bulletBox(rightBodyRect, slide.RightBullets)
	case schema.LayoutImageFocus:
		sb.heading(slide.Title)
		if len(slide.Bullets) > 0 {
			sb.bulletBox(halfBodyTextRect, slide.Bullets)
		}
	case schema.LayoutQuote:
		sb.textBox(quoteRect, sb.para("ctr", 0, "", sb.run("“"+slide.Quote+"”", quoteSize, false, true, theme.TextColor, theme.BodyFont)))
		if slide.QuoteAuthor != "" {
			sb.textBox(quoteAuthorRect, sb.para("ctr", 0, "", sb.run("— "+slide.QuoteAuthor, authorSize, false, false, theme.SecondaryColor, theme.BodyFont)))
		}
	case schema.LayoutBlank:
		// nothing placed
	default: // title_content
		sb.heading(slide.Title)
		if len(slide.Bullets) > 0 {
			sb.bulletBox(contentBodyRect, slide.Bullets)
		} else if slide.Content != "" {
			sb.textBox(contentBodyRect, sb.para("l", 0, "", sb.run(slide.Content, contentSize, false, false, theme.TextColor, theme.BodyFont)))
		}
	}

	if imageRelID != "" && slide.Image != nil {
		rect := imageRects[schema.ImageCenter]
		if r, ok := imageRects[slide.Image.Position]; ok {
			rect = r
		}
		sb.picture(imageRelID, rect)
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld>`)
	if slide.BackgroundColor != "" {
		b.WriteString(`<p:bg><p:bgPr><a:solidFill><a:srgbClr val="` + stripHash(slide.BackgroundColor, "FFFFFF") + `"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`)
	}
	b.WriteString(`<p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	b.WriteString(shapes.String())
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func slideRelsXML(imageTarget string, hasNotes bool, slideNumber int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if imageTarget != "" {
		b.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="` + imageTarget + `"/>`)
	}
	if hasNotes {
		fmt.Fprintf(&b, `<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide%d.xml"/>`, slideNumber)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

type shapeBuilder struct {
	theme  schema.SlideTheme
	out    *strings.Builder
	nextID int
}

func (sb *shapeBuilder) heading(title string) {
	if title == "" {
		return
	}
	sb.textBox(contentTitleRect, sb.para("l", 0, "", sb.run(title, headingSize, true, false, sb.theme.PrimaryColor, sb.theme.HeadingFont)))
}

func (sb *shapeBuilder) columnTitle(rect emuRect, title string) {
	if title == "" {
		return
	}
	sb.textBox(rect, sb.para("l", 0, "", sb.run(title, columnTitleSize, true, false, sb.theme.SecondaryColor, sb.theme.HeadingFont)))
}

// bulletBox renders a bullet list into one text box. Each bullet's indent
// level maps directly to a paragraph nesting level; per-bullet style
// overrides fall back to theme defaults.
func (sb *shapeBuilder) bulletBox(rect emuRect, bullets []schema.Bullet) {
	if len(bullets) == 0 {
		return
	}
	paras := make([]string, 0, len(bullets))
	for _, bullet := range bullets {
		size := bulletSize
		bold, italic := false, false
		color := sb.theme.TextColor
		if bullet.Style != nil {
			if bullet.Style.Size > 0 {
				size = int(bullet.Style.Size * 100)
			}
			bold = bullet.Style.Bold
			italic = bullet.Style.Italic
			if bullet.Style.Color != "" {
				color = bullet.Style.Color
			}
		}
		run := sb.run(bullet.Text, size, bold, italic, color, sb.theme.BodyFont)
		paras = append(paras, sb.para("l", bullet.Level, "•", run))
	}
	sb.textBox(rect, paras...)
}

func (sb *shapeBuilder) run(text string, size int, bold, italic bool, color, font string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<a:r><a:rPr lang="en-US" sz="%d"`, size)
	if bold {
		b.WriteString(` b="1"`)
	}
	if italic {
		b.WriteString(` i="1"`)
	}
	b.WriteString(` dirty="0">`)
	b.WriteString(`<a:solidFill><a:srgbClr val="` + stripHash(color, "333333") + `"/></a:solidFill>`)
	if font != "" {
		b.WriteString(`<a:latin typeface="` + esc(font) + `"/>`)
	}
	b.WriteString(`</a:rPr><a:t>` + esc(text) + `</a:t></a:r>`)
	return b.String()
}

// para wraps runs in a paragraph. bulletChar "" disables the bullet
// glyph; level indents by 457200 EMU per step.
func (sb *shapeBuilder) para(align string, level int, bulletChar, runs string) string {
	var b strings.Builder
	b.WriteString(`<a:p><a:pPr`)
	if level > 0 {
		fmt.Fprintf(&b, ` lvl="%d"`, level)
	}
	if align != "" && align != "l" {
		fmt.Fprintf(&b, ` algn="%s"`, align)
	}
	if bulletChar != "" {
		fmt.Fprintf(&b, ` marL="%d" indent="-285750"`, 342900+level*457200)
	}
	b.WriteString(`>`)
	if bulletChar != "" {
		b.WriteString(`<a:buChar char="` + esc(bulletChar) + `"/>`)
	}
	b.WriteString(`</a:pPr>`)
	b.WriteString(runs)
	b.WriteString(`</a:p>`)
	return b.String()
}

func (sb *shapeBuilder) textBox(rect emuRect, paragraphs ...string) {
	id := sb.nextID
	sb.nextID++
	fmt.Fprintf(sb.out, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	fmt.Fprintf(sb.out, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, rect.x, rect.y, rect.cx, rect.cy)
	sb.out.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, p := range paragraphs {
		sb.out.WriteString(p)
	}
	sb.out.WriteString(`</p:txBody></p:sp>`)
}

func (sb *shapeBuilder) picture(relID string, rect emuRect) {
	id := sb.nextID
	sb.nextID++
	fmt.Fprintf(sb.out, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, id, id)
	sb.out.WriteString(`<p:blipFill><a:blip r:embed="` + relID + `"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`)
	fmt.Fprintf(sb.out, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, rect.x, rect.y, rect.cx, rect.cy)
	sb.out.WriteString(`</p:pic>`)
}
